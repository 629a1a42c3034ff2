package encounters

import (
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/combat"
	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
)

func validateEncounter(encounter *combat.Encounter) error {
	if encounter == nil {
		return dnderr.InvalidArgument("encounter cannot be nil")
	}
	if encounter.ID == "" {
		return dnderr.InvalidArgument("encounter ID is required")
	}
	seen := make(map[string]bool, len(encounter.Combatants))
	for _, c := range encounter.Combatants {
		if c.TokenID == "" {
			return dnderr.InvalidArgumentf("combatant %s has no token", c.ID)
		}
		if seen[c.TokenID] {
			return dnderr.InvalidArgumentf("token %s is placed twice", c.TokenID).
				WithMeta("token_id", c.TokenID)
		}
		seen[c.TokenID] = true
	}
	return nil
}

func encounterNotFound(id string) *dnderr.Error {
	return dnderr.NotFoundf("encounter with ID '%s' not found", id).
		WithMeta("encounter_id", id)
}

func tokenNotFound(encounterID, tokenID string) *dnderr.Error {
	return dnderr.NotFoundf("no combatant for token '%s'", tokenID).
		WithMeta("encounter_id", encounterID).
		WithMeta("token_id", tokenID)
}

func combatantNotFound(encounterID, combatantID string) *dnderr.Error {
	return dnderr.NotFoundf("combatant '%s' not found", combatantID).
		WithMeta("encounter_id", encounterID).
		WithMeta("combatant_id", combatantID)
}
