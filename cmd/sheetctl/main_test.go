package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	mockdice "github.com/KirkDiggler/pf2e-sheet/internal/dice/mock"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
	"github.com/KirkDiggler/pf2e-sheet/internal/repositories/encounters"
	"github.com/KirkDiggler/pf2e-sheet/internal/services"
	sheetService "github.com/KirkDiggler/pf2e-sheet/internal/services/sheet"
	"github.com/KirkDiggler/pf2e-sheet/internal/testutils"
)

type SheetctlTestSuite struct {
	suite.Suite
	ctx        context.Context
	roller     *mockdice.ManualMockRoller
	encounters encounters.Repository
	provider   *services.Provider
	out        *bytes.Buffer
	kyra       *sheet.Sheet
}

func (s *SheetctlTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.roller = mockdice.NewManualMockRoller()
	s.encounters = encounters.NewInMemoryRepository()
	s.provider = services.NewProvider(&services.ProviderConfig{
		EncounterRepository: s.encounters,
		Roller:              s.roller,
	})
	s.out = &bytes.Buffer{}

	var err error
	s.kyra, err = s.provider.SheetService.Create(s.ctx, &sheetService.CreateInput{
		OwnerID: "player-1",
		Base:    testutils.CreateTestCharacterSheet("", "player-1", "Kyra"),
	})
	s.Require().NoError(err)
}

func (s *SheetctlTestSuite) TestShow() {
	s.Require().NoError(run(s.ctx, s.provider, []string{"show", s.kyra.ID}, s.out))

	var shown sheet.Sheet
	s.Require().NoError(json.Unmarshal(s.out.Bytes(), &shown))
	s.Equal("Kyra", shown.Name)
	s.Equal(12, shown.Skills["acrobatics"].Computed.Total)
}

func (s *SheetctlTestSuite) TestRollSave() {
	s.roller.SetNextRoll(10)

	s.Require().NoError(run(s.ctx, s.provider, []string{"roll", s.kyra.ID, "save", "reflex"}, s.out))
	s.Contains(s.out.String(), "Reflex Save Check")
	s.Contains(s.out.String(), "= 24")
}

func (s *SheetctlTestSuite) TestRollUnknownFamily() {
	err := run(s.ctx, s.provider, []string{"roll", s.kyra.ID, "spell", "fireball"}, s.out)
	s.ErrorContains(err, "unknown roll family")
}

func (s *SheetctlTestSuite) TestDamage() {
	s.Require().NoError(run(s.ctx, s.provider, []string{"damage", "10", "double", s.kyra.ID}, s.out))
	s.Equal("Applied 20 to 1 sheet(s)\n", s.out.String())

	got, err := s.provider.SheetService.Get(s.ctx, s.kyra.ID)
	s.Require().NoError(err)
	s.Equal(40, got.HitPoints.Value.Int())
}

func (s *SheetctlTestSuite) TestDamage_BadArgs() {
	s.Error(run(s.ctx, s.provider, []string{"damage", "ten", "normal", s.kyra.ID}, s.out))
	s.Error(run(s.ctx, s.provider, []string{"damage", "10", "triple", s.kyra.ID}, s.out))
	s.Error(run(s.ctx, s.provider, []string{"damage", "10"}, s.out))
}

func (s *SheetctlTestSuite) TestInitiative() {
	enc := testutils.CreateTestEncounter("enc-1", "channel-1", map[string]string{"tok-kyra": s.kyra.ID})
	s.Require().NoError(s.encounters.Create(s.ctx, enc))

	s.Require().NoError(run(s.ctx, s.provider, []string{"initiative", "enc-1", "19", "tok-kyra"}, s.out))

	got, err := s.encounters.Get(s.ctx, "enc-1")
	s.Require().NoError(err)
	combatant := got.CombatantByToken("tok-kyra")
	s.Require().NotNil(combatant)
	s.Require().NotNil(combatant.Initiative)
	s.Equal(19, *combatant.Initiative)
}

func (s *SheetctlTestSuite) TestUnknownCommand() {
	s.ErrorContains(run(s.ctx, s.provider, []string{"explode"}, s.out), "unknown command")
	s.Error(run(s.ctx, s.provider, nil, s.out))
}

func TestSheetctlSuite(t *testing.T) {
	suite.Run(t, new(SheetctlTestSuite))
}

func TestImportSheet(t *testing.T) {
	ctx := context.Background()
	provider := services.NewProvider(&services.ProviderConfig{})

	data, err := json.Marshal(testutils.CreateTestNPCSheet("", "", "Goblin"))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "goblin.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	out := &bytes.Buffer{}
	require.NoError(t, run(ctx, provider, []string{"import", "gm", path}, out))
	assert.Contains(t, out.String(), "Imported Goblin as ")

	owned, err := provider.SheetService.ListByOwner(ctx, "gm")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "Goblin", owned[0].Name)
}
