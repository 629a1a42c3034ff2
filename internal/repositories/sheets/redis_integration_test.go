//go:build integration
// +build integration

package sheets_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pf2e-sheet/internal/repositories/sheets"
	"github.com/KirkDiggler/pf2e-sheet/internal/testutils"
)

func TestRedisRepository_Integration(t *testing.T) {
	client := testutils.CreateTestRedisClientOrSkip(t)

	suite.Run(t, &RepositoryContractSuite{
		newRepo: func(t *testing.T, clock sheets.TimeProvider) sheets.Repository {
			require.NoError(t, client.FlushDB(context.Background()).Err())
			return sheets.NewRedisRepository(&sheets.RedisRepoConfig{
				Client:       client,
				TimeProvider: clock,
			})
		},
	})
}
