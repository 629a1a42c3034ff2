package discord

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
	"github.com/KirkDiggler/pf2e-sheet/internal/services"
)

// Handler handles all Discord interactions
type Handler struct {
	services *services.Provider
	targets  TargetStore
}

// HandlerConfig holds configuration for the handler
type HandlerConfig struct {
	ServiceProvider *services.Provider
	Targets         TargetStore
}

// request is who asked and where
type request struct {
	UserID    string
	ChannelID string
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg == nil || cfg.ServiceProvider == nil {
		panic("service provider is required")
	}

	targets := cfg.Targets
	if targets == nil {
		targets = NewInMemoryTargetStore()
	}

	return &Handler{
		services: cfg.ServiceProvider,
		targets:  targets,
	}
}

// RegisterCommands registers all slash commands with Discord
func (h *Handler) RegisterCommands(s *discordgo.Session, appID, guildID string) error {
	registered, err := s.ApplicationCommandBulkOverwrite(appID, guildID, Commands())
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	for _, cmd := range registered {
		log.Printf("Registered command: /%s", cmd.Name)
	}
	return nil
}

// HandleInteraction handles all Discord interactions
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	req := newRequest(i)

	var (
		data *discordgo.InteractionResponseData
		err  error
		name string
	)

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		command := i.ApplicationCommandData()
		name = "/" + command.Name
		data, err = h.runCommand(ctx, req, command.Name, command.Options)
	case discordgo.InteractionMessageComponent:
		name = i.MessageComponentData().CustomID
		data, err = h.runComponent(ctx, req, name)
	default:
		return
	}

	if err != nil {
		log.Printf("Failed to handle %s for user %s: %v", name, req.UserID, err)
		respondWithError(s, i, userMessage(err))
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Printf("Failed to respond to %s: %v", name, err)
	}
}

func newRequest(i *discordgo.InteractionCreate) *request {
	req := &request{ChannelID: i.ChannelID}
	switch {
	case i.Member != nil && i.Member.User != nil:
		req.UserID = i.Member.User.ID
	case i.User != nil:
		req.UserID = i.User.ID
	}
	return req
}

func (h *Handler) runCommand(ctx context.Context, req *request, name string, options []*discordgo.ApplicationCommandInteractionDataOption) (*discordgo.InteractionResponseData, error) {
	sub := subcommand(options)
	if sub == nil {
		return nil, dnderr.InvalidArgumentf("/%s needs a subcommand", name)
	}

	switch name {
	case commandSheet:
		return h.handleSheet(ctx, req, sub)
	case commandRoll:
		return h.handleRoll(ctx, req, sub)
	case commandTarget:
		return h.handleTarget(ctx, req, sub)
	case commandEncounter:
		return h.handleEncounter(ctx, req, sub)
	default:
		return nil, dnderr.NotFoundf("unknown command /%s", name)
	}
}

func (h *Handler) runComponent(ctx context.Context, req *request, customID string) (*discordgo.InteractionResponseData, error) {
	scope, action, data := splitCustomID(customID)
	switch scope {
	case contextOutcome:
		return h.handleOutcomeButton(ctx, req, action, data)
	default:
		return nil, dnderr.NotFoundf("unknown component %q", customID)
	}
}

// userMessage turns a service error into something worth showing in chat
func userMessage(err error) string {
	msg := err.Error()
	switch dnderr.GetCode(err) {
	case dnderr.CodeNotFound:
		msg = "Not found: " + msg
	case dnderr.CodePermissionDenied:
		msg = "Not allowed: " + msg
	case dnderr.CodeInvalidArgument, dnderr.CodeValidation, dnderr.CodeAlreadyExists:
	default:
		msg = "Something went wrong: " + msg
	}

	if failed, ok := dnderr.GetMeta(err)["failed_targets"].([]string); ok && len(failed) > 0 {
		msg += "\nFailed targets: " + strings.Join(failed, ", ")
	}
	return msg
}

func ephemeral(content string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	}
}
