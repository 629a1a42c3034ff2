package outcome_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/pf2e-sheet/internal/dice"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
	"github.com/KirkDiggler/pf2e-sheet/internal/repositories/encounters"
	mockencrepo "github.com/KirkDiggler/pf2e-sheet/internal/repositories/encounters/mock"
	"github.com/KirkDiggler/pf2e-sheet/internal/repositories/sheets"
	mocksheets "github.com/KirkDiggler/pf2e-sheet/internal/repositories/sheets/mock"
	"github.com/KirkDiggler/pf2e-sheet/internal/services/outcome"
	"github.com/KirkDiggler/pf2e-sheet/internal/testutils"
)

type ServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	sheets     sheets.Repository
	encounters encounters.Repository
	svc        outcome.Service
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.sheets = sheets.NewInMemoryRepository()
	s.encounters = encounters.NewInMemoryRepository()
	s.svc = outcome.NewService(&outcome.ServiceConfig{
		SheetRepository:     s.sheets,
		EncounterRepository: s.encounters,
	})
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) storeSheet(id string, hp sheet.HitPoints) {
	sh := testutils.CreateTestNPCSheet(id, "gm-1", "Goblin "+id)
	sh.HitPoints = hp
	s.Require().NoError(s.sheets.Create(s.ctx, sh))
}

func (s *ServiceTestSuite) hitPoints(id string) sheet.HitPoints {
	sh, err := s.sheets.Get(s.ctx, id)
	s.Require().NoError(err)
	return sh.HitPoints
}

func (s *ServiceTestSuite) TestApplyDamage() {
	tests := []struct {
		name       string
		hp         sheet.HitPoints
		total      int
		multiplier float64
		want       sheet.HitPoints
	}{
		{name: "temp absorbs first", hp: sheet.HitPoints{Value: 20, Temp: 5, Max: 30}, total: 8, multiplier: 1, want: sheet.HitPoints{Value: 17, Temp: 0, Max: 30}},
		{name: "temp covers everything", hp: sheet.HitPoints{Value: 20, Temp: 10, Max: 30}, total: 4, multiplier: 1, want: sheet.HitPoints{Value: 20, Temp: 6, Max: 30}},
		{name: "double", hp: sheet.HitPoints{Value: 20, Max: 30}, total: 7, multiplier: 2, want: sheet.HitPoints{Value: 6, Max: 30}},
		{name: "half floors", hp: sheet.HitPoints{Value: 20, Max: 30}, total: 7, multiplier: 0.5, want: sheet.HitPoints{Value: 17, Max: 30}},
		{name: "clamps at zero", hp: sheet.HitPoints{Value: 5, Max: 30}, total: 50, multiplier: 1, want: sheet.HitPoints{Value: 0, Max: 30}},
		{name: "heal leaves temp alone", hp: sheet.HitPoints{Value: 10, Temp: 3, Max: 30}, total: 6, multiplier: -1, want: sheet.HitPoints{Value: 16, Temp: 3, Max: 30}},
		{name: "heal clamps at max", hp: sheet.HitPoints{Value: 28, Max: 30}, total: 6, multiplier: -1, want: sheet.HitPoints{Value: 30, Max: 30}},
		{name: "value above max is clamped", hp: sheet.HitPoints{Value: 100, Max: 20}, total: 0, multiplier: 1, want: sheet.HitPoints{Value: 20, Max: 20}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.storeSheet("goblin", tt.hp)

			err := s.svc.ApplyDamage(s.ctx, &dice.Outcome{Total: tt.total}, tt.multiplier, []string{"goblin"})
			s.Require().NoError(err)
			s.Equal(tt.want, s.hitPoints("goblin"))
		})
	}
}

func (s *ServiceTestSuite) TestApplyDamage_EveryTargetGetsTheSameValue() {
	s.storeSheet("a", sheet.HitPoints{Value: 20, Temp: 2, Max: 20})
	s.storeSheet("b", sheet.HitPoints{Value: 10, Max: 10})
	s.storeSheet("c", sheet.HitPoints{Value: 3, Max: 12})

	err := s.svc.ApplyDamage(s.ctx, &dice.Outcome{Total: 5}, outcome.MultiplierNormal, []string{"a", "b", "c", "a"})
	s.Require().NoError(err)

	s.Equal(sheet.HitPoints{Value: 17, Temp: 0, Max: 20}, s.hitPoints("a"))
	s.Equal(sheet.HitPoints{Value: 5, Max: 10}, s.hitPoints("b"))
	s.Equal(sheet.HitPoints{Value: 0, Max: 12}, s.hitPoints("c"))
}

func (s *ServiceTestSuite) TestApplyDamage_PartialFailure() {
	s.storeSheet("a", sheet.HitPoints{Value: 20, Max: 20})
	s.storeSheet("c", sheet.HitPoints{Value: 20, Max: 20})

	err := s.svc.ApplyDamage(s.ctx, &dice.Outcome{Total: 4}, 1, []string{"a", "missing", "c"})
	s.Require().Error(err)

	// the failure names the target and keeps its code
	s.True(dnderr.IsNotFound(err))
	s.Equal([]string{"missing"}, dnderr.GetMeta(err)["failed_targets"])
	var targetErr *outcome.TargetError
	s.Require().True(errors.As(err, &targetErr))
	s.Equal("missing", targetErr.Target)

	// the other targets were still updated
	s.Equal(sheet.Number(16), s.hitPoints("a").Value)
	s.Equal(sheet.Number(16), s.hitPoints("c").Value)
}

func (s *ServiceTestSuite) TestApplyDamage_NoTargets() {
	s.NoError(s.svc.ApplyDamage(s.ctx, &dice.Outcome{Total: 4}, 1, nil))
}

func (s *ServiceTestSuite) TestApplyDamage_NilOutcome() {
	err := s.svc.ApplyDamage(s.ctx, nil, 1, []string{"a"})
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *ServiceTestSuite) TestSetInitiative() {
	enc := testutils.CreateTestEncounter("enc-1", "channel-1", map[string]string{
		"token-a": "goblin",
		"token-b": "goblin",
		"token-c": "kyra",
	})
	s.Require().NoError(s.encounters.Create(s.ctx, enc))

	err := s.svc.SetInitiative(s.ctx, &dice.Outcome{Total: 18}, "enc-1", []string{"token-a", "token-b"})
	s.Require().NoError(err)

	got, err := s.encounters.Get(s.ctx, "enc-1")
	s.Require().NoError(err)
	s.Equal(18, *got.Combatants["combatant-token-a"].Initiative)
	s.Equal(18, *got.Combatants["combatant-token-b"].Initiative)
	s.False(got.Combatants["combatant-token-c"].HasInitiative())
}

func (s *ServiceTestSuite) TestSetInitiative_TokenWithoutCombatant() {
	enc := testutils.CreateTestEncounter("enc-1", "channel-1", map[string]string{"token-a": "goblin"})
	s.Require().NoError(s.encounters.Create(s.ctx, enc))

	err := s.svc.SetInitiative(s.ctx, &dice.Outcome{Total: 11}, "enc-1", []string{"token-a", "token-z"})
	s.Require().Error(err)
	s.True(dnderr.IsNotFound(err))
	s.Equal([]string{"token-z"}, dnderr.GetMeta(err)["failed_targets"])

	got, err := s.encounters.Get(s.ctx, "enc-1")
	s.Require().NoError(err)
	s.Equal(11, *got.Combatants["combatant-token-a"].Initiative)
}

func (s *ServiceTestSuite) TestSetInitiative_Validation() {
	s.True(dnderr.IsInvalidArgument(s.svc.SetInitiative(s.ctx, nil, "enc-1", []string{"t"})))
	s.True(dnderr.IsInvalidArgument(s.svc.SetInitiative(s.ctx, &dice.Outcome{}, "", []string{"t"})))
}

func TestApplyDamage_StoreFailureIsReportedPerTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	sheetRepo := mocksheets.NewMockRepository(ctrl)
	encRepo := mockencrepo.NewMockRepository(ctrl)

	svc := outcome.NewService(&outcome.ServiceConfig{
		SheetRepository:     sheetRepo,
		EncounterRepository: encRepo,
	})

	ok := testutils.CreateTestNPCSheet("ok", "gm", "Ok")
	broken := testutils.CreateTestNPCSheet("broken", "gm", "Broken")

	sheetRepo.EXPECT().Get(gomock.Any(), "ok").Return(ok, nil)
	sheetRepo.EXPECT().Get(gomock.Any(), "broken").Return(broken, nil)
	// 10 damage against 5 temp and 45 hp
	sheetRepo.EXPECT().
		UpdateFields(gomock.Any(), "ok", map[string]any{"hit_points.temp": 0, "hit_points.value": 40}).
		Return(nil)
	sheetRepo.EXPECT().
		UpdateFields(gomock.Any(), "broken", gomock.Any()).
		Return(dnderr.Conflictf("sheet broken changed during update"))

	err := svc.ApplyDamage(context.Background(), &dice.Outcome{Total: 10}, 1, []string{"ok", "broken"})
	require.Error(t, err)
	assert.True(t, dnderr.IsConflict(err))
	assert.Equal(t, []string{"broken"}, dnderr.GetMeta(err)["failed_targets"])
}

func TestSetInitiative_WritesCombatantID(t *testing.T) {
	ctrl := gomock.NewController(t)
	sheetRepo := mocksheets.NewMockRepository(ctrl)
	encRepo := mockencrepo.NewMockRepository(ctrl)

	svc := outcome.NewService(&outcome.ServiceConfig{
		SheetRepository:     sheetRepo,
		EncounterRepository: encRepo,
	})

	encRepo.EXPECT().FindCombatantByToken(gomock.Any(), "enc-1", "token-a").
		Return(testutils.CreateTestEncounter("enc-1", "c", map[string]string{"token-a": "s"}).Combatants["combatant-token-a"], nil)
	encRepo.EXPECT().SetInitiative(gomock.Any(), "enc-1", "combatant-token-a", 23).Return(nil)

	err := svc.SetInitiative(context.Background(), &dice.Outcome{Total: 23}, "enc-1", []string{"token-a"})
	require.NoError(t, err)
}

func TestNewService_RequiresRepositories(t *testing.T) {
	ctrl := gomock.NewController(t)

	assert.Panics(t, func() {
		outcome.NewService(&outcome.ServiceConfig{SheetRepository: mocksheets.NewMockRepository(ctrl)})
	})
	assert.Panics(t, func() {
		outcome.NewService(&outcome.ServiceConfig{EncounterRepository: mockencrepo.NewMockRepository(ctrl)})
	})
}
