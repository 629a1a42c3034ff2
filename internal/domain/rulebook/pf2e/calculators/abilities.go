package calculators

import (
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
)

// AbilityModifier returns floor((score-10)/2), flooring negative scores too
func AbilityModifier(score int) int {
	diff := score - 10
	if diff < 0 {
		return -((-diff + 1) / 2)
	}
	return diff / 2
}

// AbilityScoreFromModifier inverts the modifier for authored monster abilities
func AbilityScoreFromModifier(modifier int) int {
	return modifier*2 + 10
}

// resolveCharacterAbilities derives every modifier from its score
func resolveCharacterAbilities(s *sheet.Sheet) {
	for _, ability := range s.Abilities {
		if ability == nil {
			continue
		}
		ability.Modifier = sheet.Number(AbilityModifier(ability.Score.Int()))
	}
}

// resolveNPCAbilities back-derives scores from the authored modifiers
func resolveNPCAbilities(s *sheet.Sheet) {
	for _, ability := range s.Abilities {
		if ability == nil {
			continue
		}
		ability.Score = sheet.Number(AbilityScoreFromModifier(ability.Modifier.Int()))
	}
}
