package encounter_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/combat"
	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
	"github.com/KirkDiggler/pf2e-sheet/internal/repositories/encounters"
	"github.com/KirkDiggler/pf2e-sheet/internal/services/encounter"
	mocksheet "github.com/KirkDiggler/pf2e-sheet/internal/services/sheet/mock"
	"github.com/KirkDiggler/pf2e-sheet/internal/testutils"
	mockuuid "github.com/KirkDiggler/pf2e-sheet/internal/uuid/mocks"
)

type ServiceTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	repo    encounters.Repository
	sheets  *mocksheet.MockService
	uuidGen *mockuuid.MockGenerator
	svc     encounter.Service
	ctx     context.Context
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = encounters.NewInMemoryRepository()
	s.sheets = mocksheet.NewMockService(s.ctrl)
	s.uuidGen = mockuuid.NewMockGenerator(s.ctrl)
	s.ctx = context.Background()

	s.svc = encounter.NewService(&encounter.ServiceConfig{
		Repository:    s.repo,
		SheetService:  s.sheets,
		UUIDGenerator: s.uuidGen,
	})
}

func (s *ServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) create() *combat.Encounter {
	s.uuidGen.EXPECT().New().Return("enc-1")
	enc, err := s.svc.CreateEncounter(s.ctx, &encounter.CreateEncounterInput{
		ChannelID: "channel-1",
		Name:      "Goblin Ambush",
		UserID:    "gm",
	})
	s.Require().NoError(err)
	return enc
}

func (s *ServiceTestSuite) add(sheetID, tokenID, combatantID string) *combat.Combatant {
	if tokenID == "" {
		s.uuidGen.EXPECT().New().Return("token-" + combatantID)
	}
	s.uuidGen.EXPECT().New().Return(combatantID)

	c, err := s.svc.AddCombatant(s.ctx, "enc-1", "gm", &encounter.AddCombatantInput{SheetID: sheetID, TokenID: tokenID})
	s.Require().NoError(err)
	return c
}

func (s *ServiceTestSuite) TestCreateEncounter() {
	enc := s.create()
	s.Equal("enc-1", enc.ID)
	s.Equal(combat.EncounterStatusSetup, enc.Status)

	active, err := s.svc.GetActiveEncounter(s.ctx, "channel-1")
	s.Require().NoError(err)
	s.Equal("enc-1", active.ID)
}

func (s *ServiceTestSuite) TestCreateEncounter_ChannelBusy() {
	s.create()

	_, err := s.svc.CreateEncounter(s.ctx, &encounter.CreateEncounterInput{ChannelID: "channel-1", UserID: "gm"})
	s.True(dnderr.IsAlreadyExists(err))
	s.Equal("enc-1", dnderr.GetMeta(err)["encounter_id"])
}

func (s *ServiceTestSuite) TestCreateEncounter_Validation() {
	_, err := s.svc.CreateEncounter(s.ctx, &encounter.CreateEncounterInput{UserID: "gm"})
	s.True(dnderr.IsInvalidArgument(err))

	_, err = s.svc.CreateEncounter(s.ctx, &encounter.CreateEncounterInput{ChannelID: "c"})
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *ServiceTestSuite) TestAddCombatant_NumbersRepeatedSheets() {
	s.create()
	goblin := testutils.CreateTestNPCSheet("sheet-goblin", "gm", "Goblin")
	s.sheets.EXPECT().Get(gomock.Any(), "sheet-goblin").Return(goblin, nil).Times(2)

	first := s.add("sheet-goblin", "token-1", "c-1")
	second := s.add("sheet-goblin", "", "c-2")

	s.Equal("Goblin", first.Name)
	s.Equal("Goblin 2", second.Name)
	s.Equal(combat.CombatantTypeMonster, second.Type)
	s.Equal("token-c-2", second.TokenID)

	found, err := s.repo.FindCombatantByToken(s.ctx, "enc-1", "token-c-2")
	s.Require().NoError(err)
	s.Equal("c-2", found.ID)
}

func (s *ServiceTestSuite) TestAddCombatant_DuplicateToken() {
	s.create()
	kyra := testutils.CreateTestCharacterSheet("sheet-kyra", "p1", "Kyra")
	s.sheets.EXPECT().Get(gomock.Any(), "sheet-kyra").Return(kyra, nil).Times(2)

	c := s.add("sheet-kyra", "token-1", "c-1")
	s.Equal(combat.CombatantTypePlayer, c.Type)

	_, err := s.svc.AddCombatant(s.ctx, "enc-1", "gm", &encounter.AddCombatantInput{SheetID: "sheet-kyra", TokenID: "token-1"})
	s.True(dnderr.IsAlreadyExists(err))
}

func (s *ServiceTestSuite) TestAddCombatant_UnknownSheet() {
	s.create()
	s.sheets.EXPECT().Get(gomock.Any(), "nope").Return(nil, dnderr.NotFoundf("sheet with ID 'nope' not found"))

	_, err := s.svc.AddCombatant(s.ctx, "enc-1", "gm", &encounter.AddCombatantInput{SheetID: "nope"})
	s.True(dnderr.IsNotFound(err))
}

func (s *ServiceTestSuite) TestOnlyTheGMCanChangeTheEncounter() {
	s.create()

	_, err := s.svc.AddCombatant(s.ctx, "enc-1", "player", &encounter.AddCombatantInput{SheetID: "x"})
	s.True(dnderr.IsPermissionDenied(err))
	_, err = s.svc.StartEncounter(s.ctx, "enc-1", "player")
	s.True(dnderr.IsPermissionDenied(err))
	s.True(dnderr.IsPermissionDenied(s.svc.EndEncounter(s.ctx, "enc-1", "player")))
}

func (s *ServiceTestSuite) TestStartRequiresInitiative() {
	s.create()
	goblin := testutils.CreateTestNPCSheet("sheet-goblin", "gm", "Goblin")
	kyra := testutils.CreateTestCharacterSheet("sheet-kyra", "p1", "Kyra")
	s.sheets.EXPECT().Get(gomock.Any(), "sheet-goblin").Return(goblin, nil)
	s.sheets.EXPECT().Get(gomock.Any(), "sheet-kyra").Return(kyra, nil)

	s.add("sheet-goblin", "token-g", "c-g")
	s.add("sheet-kyra", "token-k", "c-k")

	_, err := s.svc.StartEncounter(s.ctx, "enc-1", "gm")
	s.True(dnderr.IsInvalidArgument(err))
	s.ElementsMatch([]string{"Goblin", "Kyra"}, dnderr.GetMeta(err)["missing_initiative"])

	s.Require().NoError(s.repo.SetInitiative(s.ctx, "enc-1", "c-g", 15))
	s.Require().NoError(s.repo.SetInitiative(s.ctx, "enc-1", "c-k", 15))

	started, err := s.svc.StartEncounter(s.ctx, "enc-1", "gm")
	s.Require().NoError(err)
	s.Equal(combat.EncounterStatusActive, started.Status)
	// monsters win initiative ties
	s.Equal([]string{"c-g", "c-k"}, started.TurnOrder)
	s.Equal("c-g", started.Current().ID)

	next, err := s.svc.NextTurn(s.ctx, "enc-1", "gm")
	s.Require().NoError(err)
	s.Equal("c-k", next.Current().ID)

	next, err = s.svc.NextTurn(s.ctx, "enc-1", "gm")
	s.Require().NoError(err)
	s.Equal(2, next.Round)
	s.Equal("c-g", next.Current().ID)
}

func (s *ServiceTestSuite) TestRemoveCombatant() {
	s.create()
	goblin := testutils.CreateTestNPCSheet("sheet-goblin", "gm", "Goblin")
	s.sheets.EXPECT().Get(gomock.Any(), "sheet-goblin").Return(goblin, nil)
	s.add("sheet-goblin", "token-g", "c-g")

	s.Require().NoError(s.svc.RemoveCombatant(s.ctx, "enc-1", "c-g", "gm"))
	s.True(dnderr.IsNotFound(s.svc.RemoveCombatant(s.ctx, "enc-1", "c-g", "gm")))

	got, err := s.svc.GetEncounter(s.ctx, "enc-1")
	s.Require().NoError(err)
	s.Empty(got.Combatants)
}

func (s *ServiceTestSuite) TestEndEncounter_FreesChannel() {
	s.create()
	s.Require().NoError(s.svc.EndEncounter(s.ctx, "enc-1", "gm"))

	_, err := s.svc.GetActiveEncounter(s.ctx, "channel-1")
	s.True(dnderr.IsNotFound(err))

	_, err = s.svc.NextTurn(s.ctx, "enc-1", "gm")
	s.True(dnderr.IsInvalidArgument(err))

	_, err = s.svc.AddCombatant(s.ctx, "enc-1", "gm", &encounter.AddCombatantInput{SheetID: "x"})
	s.True(dnderr.IsInvalidArgument(err))
}
