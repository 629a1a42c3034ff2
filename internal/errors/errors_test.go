package errors_test

import (
	"errors"
	"fmt"
	"testing"

	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_PreservesCodeAndMeta(t *testing.T) {
	base := dnderr.NotFoundf("sheet %s not found", "abc").WithMeta("sheet_id", "abc")

	wrapped := dnderr.Wrap(base, "failed to load sheet")
	require.NotNil(t, wrapped)

	assert.Equal(t, dnderr.CodeNotFound, wrapped.Code)
	assert.Equal(t, "abc", wrapped.Meta["sheet_id"])
	assert.True(t, dnderr.IsNotFound(wrapped))
	assert.Equal(t, "failed to load sheet: sheet abc not found", wrapped.Error())

	// meta is copied, not shared
	wrapped.WithMeta("extra", 1)
	_, leaked := base.Meta["extra"]
	assert.False(t, leaked)
}

func TestWrap_PlainErrorIsUnknown(t *testing.T) {
	wrapped := dnderr.Wrap(errors.New("boom"), "context")
	assert.Equal(t, dnderr.CodeUnknown, dnderr.GetCode(wrapped))
	assert.Nil(t, dnderr.Wrap(nil, "nothing"))
}

func TestWrap_FindsCodeInsideJoinedErrors(t *testing.T) {
	joined := errors.Join(
		fmt.Errorf("target a: %w", dnderr.Conflictf("stale")),
		errors.New("target b failed"),
	)

	wrapped := dnderr.Wrap(joined, "apply damage")
	assert.True(t, dnderr.IsConflict(wrapped))
}

func TestWrapWithCode(t *testing.T) {
	wrapped := dnderr.WrapWithCode(dnderr.InvalidArgument("bad"), dnderr.CodeInternal, "remapped")
	assert.True(t, dnderr.IsInternal(wrapped))
	assert.Nil(t, dnderr.WrapWithCode(nil, dnderr.CodeInternal, "x"))
}

func TestGetMeta_NonCodedError(t *testing.T) {
	assert.Nil(t, dnderr.GetMeta(errors.New("plain")))
}
