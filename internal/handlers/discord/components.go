package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/rulebook/pf2e/calculators"
	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
	"github.com/KirkDiggler/pf2e-sheet/internal/services/outcome"
)

var damageMultipliers = map[string]float64{
	actionDamage: outcome.MultiplierNormal,
	actionDouble: outcome.MultiplierDouble,
	actionHalf:   outcome.MultiplierHalf,
	actionHeal:   outcome.MultiplierHeal,
}

func (h *Handler) handleOutcomeButton(ctx context.Context, req *request, action, data string) (*discordgo.InteractionResponseData, error) {
	state, err := DecodeOutcomeState(data)
	if err != nil {
		return nil, dnderr.InvalidArgument("this roll can no longer be applied").
			WithMeta("action", action)
	}

	targets, err := h.targets.Get(ctx, req.UserID)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to load targets")
	}
	if len(targets) == 0 {
		return nil, dnderr.InvalidArgument("no targets set, use /target set first")
	}

	rolled := state.Outcome()

	if action == actionInitiative {
		active, err := h.services.EncounterService.GetActiveEncounter(ctx, req.ChannelID)
		if err != nil {
			return nil, err
		}
		if err := h.services.OutcomeService.SetInitiative(ctx, rolled, active.ID, targets); err != nil {
			return nil, err
		}
		return ephemeral(fmt.Sprintf("Initiative **%d** set for %s", rolled.Total, formatTargets(targets))), nil
	}

	multiplier, ok := damageMultipliers[action]
	if !ok {
		return nil, dnderr.NotFoundf("unknown outcome action %q", action)
	}

	sheetIDs := h.resolveSheets(ctx, req.ChannelID, targets)
	if err := h.services.OutcomeService.ApplyDamage(ctx, rolled, multiplier, sheetIDs); err != nil {
		return nil, err
	}

	value := calculators.DamageValue(rolled.Total, multiplier)
	if value < 0 {
		return ephemeral(fmt.Sprintf("Healed **%d** on %s", -value, formatTargets(targets))), nil
	}
	return ephemeral(fmt.Sprintf("Applied **%d** damage to %s", value, formatTargets(targets))), nil
}

// resolveSheets maps token ids placed in the channel's encounter to their
// sheets. Anything else is taken as a sheet id.
func (h *Handler) resolveSheets(ctx context.Context, channelID string, targets []string) []string {
	active, err := h.services.EncounterService.GetActiveEncounter(ctx, channelID)
	if err != nil {
		if !dnderr.IsNotFound(err) {
			log.Printf("Failed to load active encounter for channel %s: %v", channelID, err)
		}
		return targets
	}

	out := make([]string, len(targets))
	for i, target := range targets {
		out[i] = target
		if combatant := active.CombatantByToken(target); combatant != nil {
			out[i] = combatant.SheetID
		}
	}
	return out
}
