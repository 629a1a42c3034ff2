package calculators

import (
	"math"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/rulebook/pf2e"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/shared"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
)

const (
	experienceMax        = 1000
	experiencePercentCap = 99.5
)

// variant is the per-kind half of a recompute
type variant interface {
	resolveAbilities(s *sheet.Sheet)
	compose(s *sheet.Sheet, rules *pf2e.Rules)
}

func variantFor(kind shared.SheetKind) variant {
	switch kind {
	case shared.SheetKindCharacter:
		return characterVariant{}
	case shared.SheetKindNPC:
		return npcVariant{}
	default:
		// unknown kinds still get score-driven modifiers but no derived fields
		return unknownVariant{}
	}
}

type characterVariant struct{}

func (characterVariant) resolveAbilities(s *sheet.Sheet) {
	resolveCharacterAbilities(s)
}

func (characterVariant) compose(s *sheet.Sheet, rules *pf2e.Rules) {
	s.Experience.Max = experienceMax
	s.Experience.Percent = experiencePercent(s.Experience.Value.Int())

	var keys []string

	s.Saves, keys = seedStatistics(s.Saves, rules.Saves)
	for _, key := range keys {
		save := s.Saves[key]
		save.Computed = ComposeCheck(s, save)
	}

	s.Martial, keys = seedStatistics(s.Martial, rules.Martial)
	for _, key := range keys {
		martial := s.Martial[key]
		martial.Computed = ComposeMartial(s, martial)
	}

	seedPerception(s, rules)
	s.Perception.Computed = ComposeCheck(s, s.Perception)

	s.Skills, keys = seedStatistics(s.Skills, rules.Skills)
	for _, key := range keys {
		skill := s.Skills[key]
		skill.Computed = ComposeSkill(s, skill)
	}

	composeLore(s, rules)
}

type npcVariant struct{}

func (npcVariant) resolveAbilities(s *sheet.Sheet) {
	resolveNPCAbilities(s)
}

// npc saves, perception and skills are authored as flat modifiers; only the
// save family and perception are seeded so every npc can roll them
func (npcVariant) compose(s *sheet.Sheet, rules *pf2e.Rules) {
	var keys []string

	s.Saves, keys = seedStatistics(s.Saves, rules.Saves)
	for _, key := range keys {
		save := s.Saves[key]
		save.Computed = ComposeFlat(save.Modifier)
	}

	seedPerception(s, rules)
	s.Perception.Computed = ComposeFlat(s.Perception.Modifier)

	for _, skill := range s.Skills {
		if skill != nil {
			skill.Computed = ComposeFlat(skill.Modifier)
		}
	}

	if s.SpellDC != nil {
		s.SpellDC.AttackBonus = SpellAttackBonus(s.SpellDC.DC.Int())
	}
	composeLore(s, rules)
}

type unknownVariant struct{}

func (unknownVariant) resolveAbilities(s *sheet.Sheet) {
	resolveCharacterAbilities(s)
}

func (unknownVariant) compose(*sheet.Sheet, *pf2e.Rules) {}

func seedPerception(s *sheet.Sheet, rules *pf2e.Rules) {
	if s.Perception == nil {
		s.Perception = &sheet.Statistic{}
	}
	if s.Perception.Ability == shared.AttributeNone {
		s.Perception.Ability = rules.PerceptionAbility
	}
	if s.Perception.Label == "" {
		s.Perception.Label = pf2e.Label(pf2e.AttributePerception)
	}
}

func composeLore(s *sheet.Sheet, rules *pf2e.Rules) {
	for _, lore := range s.Lore {
		if lore == nil {
			continue
		}
		lore.Computed = ComposeLore(s, lore, rules.LoreAbility)
	}
}

// experiencePercent rounds half up like the sheet progress bar always has
func experiencePercent(value int) float64 {
	pct := math.Floor(float64(value)*100/experienceMax + 0.5)
	return math.Min(pct, experiencePercentCap)
}
