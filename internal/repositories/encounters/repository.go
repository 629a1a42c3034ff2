package encounters

//go:generate mockgen -destination=mock/mock_repository.go -package=mockencrepo -source=repository.go

import (
	"context"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/combat"
)

// Repository defines the interface for encounter storage operations
type Repository interface {
	// Create stores a new encounter
	Create(ctx context.Context, encounter *combat.Encounter) error

	// Get retrieves an encounter by ID
	Get(ctx context.Context, id string) (*combat.Encounter, error)

	// Update replaces an existing encounter and its combatants
	Update(ctx context.Context, encounter *combat.Encounter) error

	// Delete removes an encounter
	Delete(ctx context.Context, id string) error

	// GetActiveByChannel retrieves the encounter currently running in a channel
	GetActiveByChannel(ctx context.Context, channelID string) (*combat.Encounter, error)

	// FindCombatantByToken resolves a token to its combatant
	FindCombatantByToken(ctx context.Context, encounterID, tokenID string) (*combat.Combatant, error)

	// SetInitiative writes one combatant's initiative without touching the rest
	SetInitiative(ctx context.Context, encounterID, combatantID string, initiative int) error
}
