package calculators_test

import (
	"testing"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/rulebook/pf2e"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/rulebook/pf2e/calculators"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/shared"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type EngineTestSuite struct {
	suite.Suite
	engine *calculators.Engine
}

func (s *EngineTestSuite) SetupTest() {
	s.engine = calculators.NewEngine(nil)
}

func (s *EngineTestSuite) character() *sheet.Sheet {
	return &sheet.Sheet{
		ID:         "char-1",
		Kind:       shared.SheetKindCharacter,
		Level:      2,
		Experience: sheet.Experience{Value: 425},
		Abilities: map[shared.Attribute]*sheet.AbilityScore{
			shared.AttributeStrength:     {Score: 18, Modifier: 99},
			shared.AttributeDexterity:    {Score: 14},
			shared.AttributeConstitution: {Score: 12},
			shared.AttributeIntelligence: {Score: 7},
			shared.AttributeWisdom:       {Score: 10},
			shared.AttributeCharisma:     {Score: 9},
		},
		Saves: map[string]*sheet.Statistic{
			pf2e.SaveReflex: {Rank: 2, ItemBonus: 1},
		},
		Skills: map[string]*sheet.Statistic{
			"athletics": {Rank: 1},
			"arcana":    {Rank: 1, UsesArmorPenalty: true},
		},
		Martial: map[string]*sheet.Statistic{
			"light": {Rank: 1},
		},
		Perception: &sheet.Statistic{Rank: 1},
		Lore:       []*sheet.LoreSkill{{ID: "lore-1", Name: "Sailing Lore", Rank: 1, Modifier: 30}},
		ArmorClass: sheet.ArmorClass{Value: 17, CheckPenalty: -1},
		Traits: map[shared.TraitCategory]*sheet.Trait{
			shared.TraitLanguages: {Value: sheet.LegacyValue("Common, Elven")},
		},
	}
}

func (s *EngineTestSuite) TestRecompute_Character() {
	stored := s.character()

	derived := s.engine.Recompute(stored)
	s.Require().NotNil(derived)

	s.Equal(sheet.Number(4), derived.Abilities[shared.AttributeStrength].Modifier)
	s.Equal(sheet.Number(-2), derived.Abilities[shared.AttributeIntelligence].Modifier)
	s.Equal(sheet.Number(-1), derived.Abilities[shared.AttributeCharisma].Modifier)

	s.Equal(1000, derived.Experience.Max)
	s.Equal(43.0, derived.Experience.Percent)

	reflex := derived.Saves[pf2e.SaveReflex]
	s.Equal(shared.AttributeDexterity, reflex.Ability)
	s.Equal(2+6+1, reflex.Computed.Total)
	s.Equal("dex modifier(2) + proficiency(6) + item bonus(1)", reflex.Computed.Breakdown)

	// every save is seeded even when never authored
	s.Require().Contains(derived.Saves, pf2e.SaveFortitude)
	s.Equal("con modifier(1) + proficiency(0) + item bonus(0)", derived.Saves[pf2e.SaveFortitude].Computed.Breakdown)
	s.Len(derived.Saves, 3)

	athletics := derived.Skills["athletics"]
	s.Equal("Athletics", athletics.Label)
	s.True(athletics.UsesArmorPenalty)
	s.Equal(4+4-1, athletics.Computed.Total)

	// the rulebook decides which skills take the armor penalty
	arcana := derived.Skills["arcana"]
	s.False(arcana.UsesArmorPenalty)
	s.Equal(-2+4, arcana.Computed.Total)
	s.Len(derived.Skills, len(pf2e.DefaultRules().Skills))

	s.Equal("proficiency(4)", derived.Martial["light"].Computed.Breakdown)
	s.Equal(0, derived.Martial["heavy"].Computed.Total)

	s.Equal(shared.AttributeWisdom, derived.Perception.Ability)
	s.Equal(0+4, derived.Perception.Computed.Total)

	s.Equal(-2+4, derived.Lore[0].Computed.Total)

	s.Equal([]string{"common", "elven"}, derived.Traits[shared.TraitLanguages].Value.List)
	s.Len(derived.Traits, len(shared.TraitCategories))
}

func (s *EngineTestSuite) TestRecompute_DoesNotMutateInput() {
	stored := s.character()

	_ = s.engine.Recompute(stored)

	s.Equal(sheet.Number(99), stored.Abilities[shared.AttributeStrength].Modifier)
	s.Nil(stored.Saves[pf2e.SaveFortitude])
	s.Equal(sheet.Computed{}, stored.Skills["athletics"].Computed)
	s.False(stored.Traits[shared.TraitLanguages].Value.IsList)
	s.Equal(0, stored.Experience.Max)
}

func (s *EngineTestSuite) TestRecompute_NPC() {
	stored := &sheet.Sheet{
		ID:   "npc-1",
		Kind: shared.SheetKindNPC,
		Abilities: map[shared.Attribute]*sheet.AbilityScore{
			shared.AttributeStrength:     {Score: 3, Modifier: 4},
			shared.AttributeIntelligence: {Modifier: -1},
			shared.AttributeWisdom:       {},
		},
		Lore:    []*sheet.LoreSkill{{ID: "lore-1", Name: "Underworld Lore", Rank: 4, ItemBonus: 3, Modifier: 11}},
		SpellDC: &sheet.SpellDC{DC: 24},
		Saves: map[string]*sheet.Statistic{
			pf2e.SaveFortitude: {Rank: 3, Modifier: 12},
		},
		Perception: &sheet.Statistic{Modifier: 7},
		Skills: map[string]*sheet.Statistic{
			"athletics": {Rank: 2, Modifier: 9},
		},
		Traits: map[shared.TraitCategory]*sheet.Trait{
			shared.TraitDamageImmunity: {Value: sheet.LegacyValue("fire")},
		},
	}

	derived := s.engine.Recompute(stored)

	s.Equal(sheet.Number(18), derived.Abilities[shared.AttributeStrength].Score)
	s.Equal(sheet.Number(8), derived.Abilities[shared.AttributeIntelligence].Score)
	s.Equal(sheet.Number(10), derived.Abilities[shared.AttributeWisdom].Score)

	s.Equal(14, derived.SpellDC.AttackBonus)
	s.Equal(11, derived.Lore[0].Computed.Total)
	s.Equal("modifier(11)", derived.Lore[0].Computed.Breakdown)

	// npc statistics are authored flat modifiers, never the proficiency formula
	s.Equal(sheet.Computed{Total: 12, Breakdown: "modifier(12)"}, derived.Saves[pf2e.SaveFortitude].Computed)
	s.Equal(sheet.Computed{Total: 0, Breakdown: "modifier(0)"}, derived.Saves[pf2e.SaveWill].Computed)
	s.Len(derived.Saves, 3)
	s.Equal(sheet.Computed{Total: 7, Breakdown: "modifier(7)"}, derived.Perception.Computed)
	s.Equal("Perception", derived.Perception.Label)
	s.Equal(sheet.Computed{Total: 9, Breakdown: "modifier(9)"}, derived.Skills["athletics"].Computed)
	s.Len(derived.Skills, 1)

	s.Equal([]string{"fire"}, derived.Traits[shared.TraitDamageImmunity].Value.List)
}

func (s *EngineTestSuite) TestRecompute_UnknownKindOnlyResolvesAbilities() {
	stored := &sheet.Sheet{
		Kind: shared.SheetKind("hazard"),
		Abilities: map[shared.Attribute]*sheet.AbilityScore{
			shared.AttributeDexterity: {Score: 16},
		},
	}

	derived := s.engine.Recompute(stored)

	s.Equal(sheet.Number(3), derived.Abilities[shared.AttributeDexterity].Modifier)
	s.Nil(derived.Saves)
	s.Nil(derived.Perception)
	s.Len(derived.Traits, len(shared.TraitCategories))
}

func (s *EngineTestSuite) TestRecompute_Nil() {
	s.Nil(s.engine.Recompute(nil))
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func TestExperiencePercent(t *testing.T) {
	engine := calculators.NewEngine(nil)

	tests := []struct {
		value    sheet.Number
		expected float64
	}{
		{value: 0, expected: 0},
		{value: 4, expected: 0},
		{value: 5, expected: 1},
		{value: 500, expected: 50},
		{value: 994, expected: 99},
		{value: 996, expected: 99.5},
		{value: 1500, expected: 99.5},
	}

	for _, tt := range tests {
		derived := engine.Recompute(&sheet.Sheet{Kind: shared.SheetKindCharacter, Experience: sheet.Experience{Value: tt.value}})
		assert.Equal(t, tt.expected, derived.Experience.Percent, "xp %d", tt.value)
	}
}

func TestNewEngine_CustomRules(t *testing.T) {
	rules := &pf2e.Rules{
		Saves:             []pf2e.StatisticDefinition{{Key: "grit", Label: "Grit", Ability: shared.AttributeConstitution}},
		PerceptionAbility: shared.AttributeIntelligence,
		LoreAbility:       shared.AttributeWisdom,
	}
	engine := calculators.NewEngine(&calculators.EngineConfig{Rules: rules, Choices: pf2e.ChoiceTable{}})

	derived := engine.Recompute(&sheet.Sheet{
		Kind: shared.SheetKindCharacter,
		Abilities: map[shared.Attribute]*sheet.AbilityScore{
			shared.AttributeConstitution: {Score: 14},
			shared.AttributeWisdom:       {Score: 16},
		},
		Lore:   []*sheet.LoreSkill{{Name: "Farming Lore"}},
		Traits: map[shared.TraitCategory]*sheet.Trait{shared.TraitLanguages: {Value: sheet.LegacyValue("Common")}},
	})

	require.Contains(t, derived.Saves, "grit")
	assert.Equal(t, 2, derived.Saves["grit"].Computed.Total)
	assert.Equal(t, shared.AttributeIntelligence, derived.Perception.Ability)
	assert.Equal(t, 3, derived.Lore[0].Computed.Total)
	assert.Same(t, rules, engine.Rules())
	// an empty choice table recognizes nothing
	assert.Empty(t, derived.Traits[shared.TraitLanguages].Value.List)
}
