package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/pf2e-sheet/internal/dice"
	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
)

func (h *Handler) handleRoll(ctx context.Context, _ *request, sub *discordgo.ApplicationCommandInteractionDataOption) (*discordgo.InteractionResponseData, error) {
	roller, err := h.services.SheetService.Get(ctx, stringOption(sub.Options, "sheet"))
	if err != nil {
		return nil, err
	}
	key := stringOption(sub.Options, "key")

	rolls := h.services.RollService
	var outcome *dice.Outcome
	switch sub.Name {
	case "skill":
		outcome, err = rolls.RollSkill(ctx, roller, key)
	case "lore":
		outcome, err = rolls.RollLoreSkill(ctx, roller, key)
	case "save":
		outcome, err = rolls.RollSave(ctx, roller, key)
	case "ability":
		outcome, err = rolls.RollAbility(ctx, roller, key)
	case "attribute":
		outcome, err = rolls.RollAttribute(ctx, roller, key)
	case "damage":
		outcome, err = rolls.RollDamage(ctx, roller, key)
	default:
		return nil, dnderr.NotFoundf("unknown subcommand /%s %s", commandRoll, sub.Name)
	}
	if err != nil {
		return nil, err
	}

	components, err := outcomeButtons(outcome)
	if err != nil {
		return nil, err
	}

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{buildOutcomeEmbed(outcome)},
		Components: components,
	}, nil
}

// outcomeButtons lets whoever rolled push the result onto their targets
func outcomeButtons(outcome *dice.Outcome) ([]discordgo.MessageComponent, error) {
	state, err := NewOutcomeState(outcome).Encode()
	if err != nil {
		return nil, err
	}

	button := func(label, action string, style discordgo.ButtonStyle) discordgo.MessageComponent {
		return discordgo.Button{
			Label:    label,
			Style:    style,
			CustomID: buildCustomID(contextOutcome, action, state),
		}
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			button("Damage ×1", actionDamage, discordgo.DangerButton),
			button("Damage ×2", actionDouble, discordgo.DangerButton),
			button("Damage ×½", actionHalf, discordgo.DangerButton),
			button("Heal", actionHeal, discordgo.SuccessButton),
			button("Initiative", actionInitiative, discordgo.PrimaryButton),
		}},
	}, nil
}
