package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
)

func (h *Handler) handleTarget(ctx context.Context, req *request, sub *discordgo.ApplicationCommandInteractionDataOption) (*discordgo.InteractionResponseData, error) {
	switch sub.Name {
	case "set":
		targets := parseTargets(stringOption(sub.Options, "ids"))
		if len(targets) == 0 {
			return nil, dnderr.InvalidArgument("at least one token or sheet ID is required")
		}
		if err := h.targets.Set(ctx, req.UserID, targets); err != nil {
			return nil, dnderr.Wrap(err, "failed to save targets")
		}
		return ephemeral(fmt.Sprintf("Targeting %s", formatTargets(targets))), nil

	case "show":
		targets, err := h.targets.Get(ctx, req.UserID)
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to load targets")
		}
		if len(targets) == 0 {
			return ephemeral("No targets set. Use `/target set`."), nil
		}
		return ephemeral(fmt.Sprintf("Targeting %s", formatTargets(targets))), nil

	case "clear":
		if err := h.targets.Clear(ctx, req.UserID); err != nil {
			return nil, dnderr.Wrap(err, "failed to clear targets")
		}
		return ephemeral("Targets cleared"), nil

	default:
		return nil, dnderr.NotFoundf("unknown subcommand /%s %s", commandTarget, sub.Name)
	}
}

func formatTargets(targets []string) string {
	quoted := make([]string, len(targets))
	for i, t := range targets {
		quoted[i] = "`" + t + "`"
	}
	return strings.Join(quoted, ", ")
}
