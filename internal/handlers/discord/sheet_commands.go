package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/tidwall/gjson"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/shared"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
	sheetService "github.com/KirkDiggler/pf2e-sheet/internal/services/sheet"
)

func (h *Handler) handleSheet(ctx context.Context, req *request, sub *discordgo.ApplicationCommandInteractionDataOption) (*discordgo.InteractionResponseData, error) {
	opts := sub.Options

	switch sub.Name {
	case "create":
		created, err := h.services.SheetService.Create(ctx, &sheetService.CreateInput{
			OwnerID: req.UserID,
			Name:    stringOption(opts, "name"),
			Kind:    shared.SheetKind(stringOption(opts, "kind")),
		})
		if err != nil {
			return nil, err
		}
		return &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Created **%s** (`%s`)", created.Name, created.ID),
			Embeds:  []*discordgo.MessageEmbed{buildSheetEmbed(created)},
		}, nil

	case "show":
		found, err := h.services.SheetService.Get(ctx, stringOption(opts, "sheet"))
		if err != nil {
			return nil, err
		}
		return &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{buildSheetEmbed(found)},
		}, nil

	case "list":
		owned, err := h.services.SheetService.ListByOwner(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		return ephemeral(formatSheetList(owned)), nil

	case "set":
		id := stringOption(opts, "sheet")
		if _, err := h.ownedSheet(ctx, req, id); err != nil {
			return nil, err
		}
		path := stringOption(opts, "path")
		updated, err := h.services.SheetService.UpdateBase(ctx, id, map[string]any{
			path: parseFieldValue(stringOption(opts, "value")),
		})
		if err != nil {
			return nil, err
		}
		return &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Updated `%s` on **%s**", path, updated.Name),
			Embeds:  []*discordgo.MessageEmbed{buildSheetEmbed(updated)},
			Flags:   discordgo.MessageFlagsEphemeral,
		}, nil

	case "lore":
		id := stringOption(opts, "sheet")
		if _, err := h.ownedSheet(ctx, req, id); err != nil {
			return nil, err
		}
		name := stringOption(opts, "name")
		updated, err := h.services.SheetService.AddLore(ctx, id, name, int(intOption(opts, "rank")))
		if err != nil {
			return nil, err
		}
		return ephemeral(fmt.Sprintf("Added %s to **%s**", name, updated.Name)), nil

	case "delete":
		id := stringOption(opts, "sheet")
		owned, err := h.ownedSheet(ctx, req, id)
		if err != nil {
			return nil, err
		}
		if err := h.services.SheetService.Delete(ctx, id); err != nil {
			return nil, err
		}
		return ephemeral(fmt.Sprintf("Deleted **%s**", owned.Name)), nil

	default:
		return nil, dnderr.NotFoundf("unknown subcommand /%s %s", commandSheet, sub.Name)
	}
}

// ownedSheet loads a sheet the caller is allowed to edit
func (h *Handler) ownedSheet(ctx context.Context, req *request, id string) (*sheet.Sheet, error) {
	found, err := h.services.SheetService.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if found.OwnerID != req.UserID {
		return nil, dnderr.PermissionDenied("only the sheet owner can change it").
			WithMeta("sheet_id", id).
			WithMeta("user_id", req.UserID)
	}
	return found, nil
}

// parseFieldValue reads JSON literals (numbers, booleans, arrays) and keeps
// anything else as a plain string
func parseFieldValue(raw string) any {
	raw = strings.TrimSpace(raw)
	if raw != "" && gjson.Valid(raw) {
		return gjson.Parse(raw).Value()
	}
	return raw
}

func formatSheetList(sheets []*sheet.Sheet) string {
	if len(sheets) == 0 {
		return "You have no sheets yet. Create one with `/sheet create`."
	}

	var b strings.Builder
	b.WriteString("**Your sheets**\n")
	for _, s := range sheets {
		fmt.Fprintf(&b, "• %s (%s, level %d) `%s`\n", s.Name, kindLabel(s.Kind), s.Level.Int(), s.ID)
	}
	return b.String()
}
