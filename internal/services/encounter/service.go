package encounter

//go:generate mockgen -destination=mock/mock_service.go -package=mockencounter -source=service.go

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/combat"
	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
	"github.com/KirkDiggler/pf2e-sheet/internal/repositories/encounters"
	sheetService "github.com/KirkDiggler/pf2e-sheet/internal/services/sheet"
	"github.com/KirkDiggler/pf2e-sheet/internal/uuid"
)

// Service defines the encounter service interface
type Service interface {
	// CreateEncounter opens an encounter in a channel
	CreateEncounter(ctx context.Context, input *CreateEncounterInput) (*combat.Encounter, error)

	// GetEncounter retrieves an encounter by ID
	GetEncounter(ctx context.Context, encounterID string) (*combat.Encounter, error)

	// GetActiveEncounter retrieves the encounter running in a channel
	GetActiveEncounter(ctx context.Context, channelID string) (*combat.Encounter, error)

	// AddCombatant places a token for a sheet
	AddCombatant(ctx context.Context, encounterID, userID string, input *AddCombatantInput) (*combat.Combatant, error)

	// RemoveCombatant removes a combatant from an encounter
	RemoveCombatant(ctx context.Context, encounterID, combatantID, userID string) error

	// StartEncounter begins combat once everyone has initiative
	StartEncounter(ctx context.Context, encounterID, userID string) (*combat.Encounter, error)

	// NextTurn advances to the next turn
	NextTurn(ctx context.Context, encounterID, userID string) (*combat.Encounter, error)

	// EndEncounter ends the encounter
	EndEncounter(ctx context.Context, encounterID, userID string) error
}

// CreateEncounterInput contains data for creating an encounter
type CreateEncounterInput struct {
	ChannelID string
	Name      string
	UserID    string
}

// AddCombatantInput places a sheet. TokenID is generated when empty and Name
// defaults to the sheet name, numbered when the sheet is already placed.
type AddCombatantInput struct {
	SheetID string
	TokenID string
	Name    string
}

type service struct {
	repository    encounters.Repository
	sheetService  sheetService.Service
	uuidGenerator uuid.Generator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    encounters.Repository
	SheetService  sheetService.Service
	UUIDGenerator uuid.Generator
}

// NewService creates a new encounter service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.SheetService == nil {
		panic("sheet service is required")
	}

	svc := &service{
		repository:    cfg.Repository,
		sheetService:  cfg.SheetService,
		uuidGenerator: cfg.UUIDGenerator,
	}

	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

func (s *service) CreateEncounter(ctx context.Context, input *CreateEncounterInput) (*combat.Encounter, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	if input.ChannelID == "" {
		return nil, dnderr.InvalidArgument("channel ID is required")
	}
	if input.UserID == "" {
		return nil, dnderr.InvalidArgument("user ID is required")
	}

	existing, err := s.repository.GetActiveByChannel(ctx, input.ChannelID)
	if err != nil && !dnderr.IsNotFound(err) {
		return nil, dnderr.Wrap(err, "failed to check active encounter")
	}
	if existing != nil {
		return nil, dnderr.AlreadyExistsf("channel already has an active encounter: %s", existing.Name).
			WithMeta("encounter_id", existing.ID)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "Encounter"
	}

	encounter := combat.NewEncounter(s.uuidGenerator.New(), input.ChannelID, name, input.UserID)
	if err := s.repository.Create(ctx, encounter); err != nil {
		return nil, dnderr.Wrap(err, "failed to create encounter")
	}

	log.Printf("Created encounter %s (%s) in channel %s", encounter.Name, encounter.ID, encounter.ChannelID)
	return encounter, nil
}

func (s *service) GetEncounter(ctx context.Context, encounterID string) (*combat.Encounter, error) {
	if encounterID == "" {
		return nil, dnderr.InvalidArgument("encounter ID is required")
	}

	encounter, err := s.repository.Get(ctx, encounterID)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to get encounter")
	}
	return encounter, nil
}

func (s *service) GetActiveEncounter(ctx context.Context, channelID string) (*combat.Encounter, error) {
	if channelID == "" {
		return nil, dnderr.InvalidArgument("channel ID is required")
	}

	encounter, err := s.repository.GetActiveByChannel(ctx, channelID)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to get active encounter")
	}
	return encounter, nil
}

func (s *service) AddCombatant(ctx context.Context, encounterID, userID string, input *AddCombatantInput) (*combat.Combatant, error) {
	if input == nil || input.SheetID == "" {
		return nil, dnderr.InvalidArgument("sheet ID is required")
	}

	encounter, err := s.owned(ctx, encounterID, userID)
	if err != nil {
		return nil, err
	}
	if encounter.Status == combat.EncounterStatusCompleted {
		return nil, dnderr.InvalidArgument("encounter has already ended")
	}

	placed, err := s.sheetService.Get(ctx, input.SheetID)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to get sheet")
	}

	tokenID := input.TokenID
	if tokenID == "" {
		tokenID = s.uuidGenerator.New()
	}
	if encounter.CombatantByToken(tokenID) != nil {
		return nil, dnderr.AlreadyExistsf("token %s is already placed", tokenID).
			WithMeta("token_id", tokenID)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = placed.Name
		if n := countSheet(encounter, placed.ID); n > 0 {
			name = fmt.Sprintf("%s %d", placed.Name, n+1)
		}
	}

	combatantType := combat.CombatantTypePlayer
	if placed.Kind.IsNPC() {
		combatantType = combat.CombatantTypeMonster
	}

	combatant := &combat.Combatant{
		ID:      s.uuidGenerator.New(),
		TokenID: tokenID,
		SheetID: placed.ID,
		Name:    name,
		Type:    combatantType,
	}
	encounter.AddCombatant(combatant)
	if encounter.Status == combat.EncounterStatusActive {
		// late arrivals act last until initiative is rolled for them
		encounter.TurnOrder = append(encounter.TurnOrder, combatant.ID)
	}

	if err := s.repository.Update(ctx, encounter); err != nil {
		return nil, dnderr.Wrap(err, "failed to update encounter")
	}

	return combatant, nil
}

func (s *service) RemoveCombatant(ctx context.Context, encounterID, combatantID, userID string) error {
	encounter, err := s.owned(ctx, encounterID, userID)
	if err != nil {
		return err
	}

	if _, exists := encounter.Combatants[combatantID]; !exists {
		return dnderr.NotFoundf("combatant '%s' not found", combatantID).
			WithMeta("combatant_id", combatantID)
	}

	encounter.RemoveCombatant(combatantID)

	if err := s.repository.Update(ctx, encounter); err != nil {
		return dnderr.Wrap(err, "failed to update encounter")
	}
	return nil
}

func (s *service) StartEncounter(ctx context.Context, encounterID, userID string) (*combat.Encounter, error) {
	encounter, err := s.owned(ctx, encounterID, userID)
	if err != nil {
		return nil, err
	}

	if !encounter.Start() {
		var waiting []string
		for _, c := range encounter.Combatants {
			if !c.HasInitiative() {
				waiting = append(waiting, c.Name)
			}
		}
		return nil, dnderr.InvalidArgument("encounter cannot be started").
			WithMeta("status", string(encounter.Status)).
			WithMeta("missing_initiative", waiting)
	}

	if err := s.repository.Update(ctx, encounter); err != nil {
		return nil, dnderr.Wrap(err, "failed to update encounter")
	}
	return encounter, nil
}

func (s *service) NextTurn(ctx context.Context, encounterID, userID string) (*combat.Encounter, error) {
	encounter, err := s.owned(ctx, encounterID, userID)
	if err != nil {
		return nil, err
	}
	if encounter.Status != combat.EncounterStatusActive {
		return nil, dnderr.InvalidArgument("encounter is not active")
	}

	encounter.NextTurn()

	if err := s.repository.Update(ctx, encounter); err != nil {
		return nil, dnderr.Wrap(err, "failed to update encounter")
	}
	return encounter, nil
}

func (s *service) EndEncounter(ctx context.Context, encounterID, userID string) error {
	encounter, err := s.owned(ctx, encounterID, userID)
	if err != nil {
		return err
	}

	encounter.End()

	if err := s.repository.Update(ctx, encounter); err != nil {
		return dnderr.Wrap(err, "failed to update encounter")
	}

	log.Printf("Ended encounter %s after %d rounds", encounter.ID, encounter.Round)
	return nil
}

// owned loads an encounter the user is allowed to run
func (s *service) owned(ctx context.Context, encounterID, userID string) (*combat.Encounter, error) {
	encounter, err := s.GetEncounter(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	if encounter.CreatedBy != userID {
		return nil, dnderr.PermissionDenied("only the GM who opened the encounter can change it").
			WithMeta("encounter_id", encounterID)
	}
	return encounter, nil
}

func countSheet(encounter *combat.Encounter, sheetID string) int {
	n := 0
	for _, c := range encounter.Combatants {
		if c.SheetID == sheetID {
			n++
		}
	}
	return n
}
