package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/combat"
	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
	encounterService "github.com/KirkDiggler/pf2e-sheet/internal/services/encounter"
)

func (h *Handler) handleEncounter(ctx context.Context, req *request, sub *discordgo.ApplicationCommandInteractionDataOption) (*discordgo.InteractionResponseData, error) {
	encounters := h.services.EncounterService

	if sub.Name == "create" {
		created, err := encounters.CreateEncounter(ctx, &encounterService.CreateEncounterInput{
			ChannelID: req.ChannelID,
			Name:      stringOption(sub.Options, "name"),
			UserID:    req.UserID,
		})
		if err != nil {
			return nil, err
		}
		return encounterResponse(fmt.Sprintf("Opened **%s**. Add tokens with `/encounter add`.", created.Name), created), nil
	}

	active, err := encounters.GetActiveEncounter(ctx, req.ChannelID)
	if err != nil {
		return nil, err
	}

	switch sub.Name {
	case "add":
		combatant, err := encounters.AddCombatant(ctx, active.ID, req.UserID, &encounterService.AddCombatantInput{
			SheetID: stringOption(sub.Options, "sheet"),
			TokenID: stringOption(sub.Options, "token"),
			Name:    stringOption(sub.Options, "name"),
		})
		if err != nil {
			return nil, err
		}
		return ephemeral(fmt.Sprintf("Added **%s** as token `%s`", combatant.Name, combatant.TokenID)), nil

	case "remove":
		token := stringOption(sub.Options, "token")
		combatant := active.CombatantByToken(token)
		if combatant == nil {
			return nil, dnderr.NotFoundf("no combatant with token %s", token).
				WithMeta("encounter_id", active.ID)
		}
		if err := encounters.RemoveCombatant(ctx, active.ID, combatant.ID, req.UserID); err != nil {
			return nil, err
		}
		return ephemeral(fmt.Sprintf("Removed **%s**", combatant.Name)), nil

	case "start":
		started, err := encounters.StartEncounter(ctx, active.ID, req.UserID)
		if err != nil {
			return nil, err
		}
		return encounterResponse("Combat begins!", started), nil

	case "next":
		advanced, err := encounters.NextTurn(ctx, active.ID, req.UserID)
		if err != nil {
			return nil, err
		}
		return encounterResponse("", advanced), nil

	case "show":
		return encounterResponse("", active), nil

	case "end":
		if err := encounters.EndEncounter(ctx, active.ID, req.UserID); err != nil {
			return nil, err
		}
		return &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("**%s** has ended.", active.Name),
		}, nil

	default:
		return nil, dnderr.NotFoundf("unknown subcommand /%s %s", commandEncounter, sub.Name)
	}
}

func encounterResponse(content string, encounter *combat.Encounter) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: content,
		Embeds:  []*discordgo.MessageEmbed{buildEncounterEmbed(encounter)},
	}
}
