package roll_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/pf2e-sheet/internal/dice"
	mockdice "github.com/KirkDiggler/pf2e-sheet/internal/dice/mock"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
	"github.com/KirkDiggler/pf2e-sheet/internal/services/roll"
	"github.com/KirkDiggler/pf2e-sheet/internal/testutils"
)

type ServiceTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	checkRoller *mockdice.MockCheckRoller
	svc         roll.Service
	ctx         context.Context

	character *sheet.Sheet
	npc       *sheet.Sheet
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.checkRoller = mockdice.NewMockCheckRoller(s.ctrl)
	s.ctx = context.Background()
	s.svc = roll.NewService(&roll.ServiceConfig{CheckRoller: s.checkRoller})

	s.character = testutils.CreateTestCharacterSheet("sheet-kyra", "owner-1", "Kyra")
	s.npc = testutils.CreateTestNPCSheet("sheet-goblin", "gm-1", "Goblin Boss")
}

func (s *ServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

// expectCheck asserts the request sent to the roller and echoes it back as an outcome
func (s *ServiceTestSuite) expectCheck(title string, mod int, speaker dice.Speaker) {
	s.checkRoller.EXPECT().
		RollCheck(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *dice.CheckRequest) (*dice.Outcome, error) {
			s.Equal([]string{"@mod"}, req.Parts)
			s.Equal(map[string]int{"mod": mod}, req.Data)
			s.Equal(title, req.Title)
			s.Equal(speaker, req.Speaker)
			return &dice.Outcome{Total: 10 + mod, Natural: 10, Title: req.Title, Speaker: req.Speaker}, nil
		})
}

func (s *ServiceTestSuite) kyra() dice.Speaker {
	return dice.Speaker{SheetID: "sheet-kyra", Name: "Kyra"}
}

func (s *ServiceTestSuite) TestRollSkill() {
	// dex +4, master at level 5 (11), item 1, armor check penalty -1
	s.expectCheck("Master Stealth Skill Check", 15, s.kyra())

	outcome, err := s.svc.RollSkill(s.ctx, s.character, "stealth")
	s.Require().NoError(err)
	s.Equal(25, outcome.Total)
}

func (s *ServiceTestSuite) TestRollSkill_UntrainedSeededSkill() {
	s.expectCheck("Untrained Arcana Skill Check", 1, s.kyra())

	_, err := s.svc.RollSkill(s.ctx, s.character, "arcana")
	s.NoError(err)
}

func (s *ServiceTestSuite) TestRollSkill_Unknown() {
	_, err := s.svc.RollSkill(s.ctx, s.character, "basket-weaving")
	s.True(dnderr.IsNotFound(err))
	s.Equal("basket-weaving", dnderr.GetMeta(err)["skill"])
	s.Equal("sheet-kyra", dnderr.GetMeta(err)["sheet_id"])
}

func (s *ServiceTestSuite) TestRollLoreSkill() {
	// int +1, trained at level 5 (7)
	s.expectCheck("Underworld Lore Skill Check", 8, s.kyra())

	_, err := s.svc.RollLoreSkill(s.ctx, s.character, "lore-underworld")
	s.NoError(err)
}

func (s *ServiceTestSuite) TestRollLoreSkill_NPCUsesFlatModifier() {
	s.expectCheck("Warfare Lore Skill Check", 9, dice.Speaker{SheetID: "sheet-goblin", Name: "Goblin Boss"})

	_, err := s.svc.RollLoreSkill(s.ctx, s.npc, "Warfare Lore")
	s.NoError(err)
}

func (s *ServiceTestSuite) TestRollLoreSkill_Unknown() {
	_, err := s.svc.RollLoreSkill(s.ctx, s.character, "Sailing Lore")
	s.True(dnderr.IsNotFound(err))
}

func (s *ServiceTestSuite) TestRollSave() {
	// dex +4, expert at level 5 (9), item 1
	s.expectCheck("Reflex Save Check", 14, s.kyra())

	_, err := s.svc.RollSave(s.ctx, s.character, "reflex")
	s.NoError(err)

	_, err = s.svc.RollSave(s.ctx, s.character, "sanity")
	s.True(dnderr.IsNotFound(err))
}

func (s *ServiceTestSuite) TestRollSave_NPCUsesFlatModifier() {
	goblin := dice.Speaker{SheetID: "sheet-goblin", Name: "Goblin Boss"}

	s.expectCheck("Fortitude Save Check", 11, goblin)
	_, err := s.svc.RollSave(s.ctx, s.npc, "fortitude")
	s.NoError(err)

	s.expectCheck("Will Save Check", 5, goblin)
	_, err = s.svc.RollSave(s.ctx, s.npc, "will")
	s.NoError(err)
}

func (s *ServiceTestSuite) TestRollSave_NPCWithoutAuthoredSaves() {
	s.npc.Saves = nil

	s.expectCheck("Reflex Save Check", 0, dice.Speaker{SheetID: "sheet-goblin", Name: "Goblin Boss"})
	_, err := s.svc.RollSave(s.ctx, s.npc, "reflex")
	s.NoError(err)
}

func (s *ServiceTestSuite) TestRollAbility() {
	s.expectCheck("Dexterity Check", 4, s.kyra())
	_, err := s.svc.RollAbility(s.ctx, s.character, "dex")
	s.NoError(err)

	s.expectCheck("Charisma Check", -1, s.kyra())
	_, err = s.svc.RollAbility(s.ctx, s.character, "Charisma")
	s.NoError(err)

	_, err = s.svc.RollAbility(s.ctx, s.character, "luck")
	s.True(dnderr.IsNotFound(err))
}

func (s *ServiceTestSuite) TestRollAbility_UnauthoredIsZero() {
	s.expectCheck("Constitution Check", 0, dice.Speaker{SheetID: "sheet-goblin", Name: "Goblin Boss"})

	_, err := s.svc.RollAbility(s.ctx, s.npc, "con")
	s.NoError(err)
}

func (s *ServiceTestSuite) TestRollAttribute_Perception() {
	// wis +1, expert at level 5 (9)
	s.expectCheck("Perception Skill Check", 10, s.kyra())

	_, err := s.svc.RollAttribute(s.ctx, s.character, "perception")
	s.NoError(err)
}

func (s *ServiceTestSuite) TestRollAttribute_NPCPerception() {
	s.expectCheck("Perception Skill Check", 6, dice.Speaker{SheetID: "sheet-goblin", Name: "Goblin Boss"})

	_, err := s.svc.RollAttribute(s.ctx, s.npc, "perception")
	s.NoError(err)

	s.npc.Perception = nil
	s.expectCheck("Perception Skill Check", 0, dice.Speaker{SheetID: "sheet-goblin", Name: "Goblin Boss"})

	_, err = s.svc.RollAttribute(s.ctx, s.npc, "perception")
	s.NoError(err)
}

func (s *ServiceTestSuite) TestRollAttribute_SpellAttack() {
	s.expectCheck("Spell Attack Skill Check", 11, dice.Speaker{SheetID: "sheet-goblin", Name: "Goblin Boss"})

	_, err := s.svc.RollAttribute(s.ctx, s.npc, "spell-attack")
	s.NoError(err)

	// characters have no authored spell DC
	_, err = s.svc.RollAttribute(s.ctx, s.character, "spell-attack")
	s.True(dnderr.IsNotFound(err))
}

func (s *ServiceTestSuite) TestRoll_DoesNotMutateSheet() {
	s.expectCheck("Master Stealth Skill Check", 15, s.kyra())

	_, err := s.svc.RollSkill(s.ctx, s.character, "stealth")
	s.Require().NoError(err)
	s.Equal(sheet.Computed{}, s.character.Skills["stealth"].Computed)
}

func (s *ServiceTestSuite) TestRoll_RollerErrorPropagates() {
	s.checkRoller.EXPECT().
		RollCheck(gomock.Any(), gomock.Any()).
		Return(nil, dnderr.InvalidArgumentf("unsupported formula term %q", "x"))

	_, err := s.svc.RollSave(s.ctx, s.character, "will")
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *ServiceTestSuite) TestRoll_NilSheet() {
	_, err := s.svc.RollSkill(s.ctx, nil, "stealth")
	s.True(dnderr.IsInvalidArgument(err))

	_, err = s.svc.RollDamage(s.ctx, nil, "1d6")
	s.True(dnderr.IsInvalidArgument(err))
}

func TestRollDamage(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{4, 6})
	svc := roll.NewService(&roll.ServiceConfig{Roller: roller})
	goblin := testutils.CreateTestNPCSheet("sheet-goblin", "gm-1", "Goblin Boss")

	outcome, err := svc.RollDamage(context.Background(), goblin, "2d6+3")
	require.NoError(t, err)
	assert.Equal(t, 13, outcome.Total)
	assert.Equal(t, "Damage Roll", outcome.Title)
	assert.Equal(t, "sheet-goblin", outcome.Speaker.SheetID)

	_, err = svc.RollDamage(context.Background(), goblin, "2d6*3")
	assert.True(t, dnderr.IsInvalidArgument(err))
}
