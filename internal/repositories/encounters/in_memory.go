package encounters

import (
	"context"
	"sync"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/combat"
	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
)

type inMemoryRepository struct {
	mu         sync.RWMutex
	encounters map[string]*combat.Encounter
	byChannel  map[string]string // channelID -> active encounter ID
}

// NewInMemoryRepository creates a new in-memory encounter repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		encounters: make(map[string]*combat.Encounter),
		byChannel:  make(map[string]string),
	}
}

// Create stores a new encounter
func (r *inMemoryRepository) Create(ctx context.Context, encounter *combat.Encounter) error {
	if err := validateEncounter(encounter); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.encounters[encounter.ID]; exists {
		return dnderr.AlreadyExistsf("encounter with ID '%s' already exists", encounter.ID).
			WithMeta("encounter_id", encounter.ID)
	}

	r.store(encounter)
	return nil
}

// Get retrieves an encounter by ID
func (r *inMemoryRepository) Get(ctx context.Context, id string) (*combat.Encounter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	encounter, err := r.get(id)
	if err != nil {
		return nil, err
	}

	return encounter.Clone(), nil
}

// Update replaces an existing encounter
func (r *inMemoryRepository) Update(ctx context.Context, encounter *combat.Encounter) error {
	if err := validateEncounter(encounter); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.get(encounter.ID); err != nil {
		return err
	}

	r.store(encounter)
	return nil
}

// Delete removes an encounter
func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	encounter, err := r.get(id)
	if err != nil {
		return err
	}

	delete(r.encounters, id)
	if r.byChannel[encounter.ChannelID] == id {
		delete(r.byChannel, encounter.ChannelID)
	}

	return nil
}

// GetActiveByChannel retrieves the encounter currently running in a channel
func (r *inMemoryRepository) GetActiveByChannel(ctx context.Context, channelID string) (*combat.Encounter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byChannel[channelID]
	if !exists {
		return nil, dnderr.NotFoundf("no active encounter in channel '%s'", channelID).
			WithMeta("channel_id", channelID)
	}

	encounter, err := r.get(id)
	if err != nil {
		return nil, err
	}

	return encounter.Clone(), nil
}

// FindCombatantByToken resolves a token to its combatant
func (r *inMemoryRepository) FindCombatantByToken(ctx context.Context, encounterID, tokenID string) (*combat.Combatant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	encounter, err := r.get(encounterID)
	if err != nil {
		return nil, err
	}

	combatant := encounter.CombatantByToken(tokenID)
	if combatant == nil {
		return nil, tokenNotFound(encounterID, tokenID)
	}

	return encounter.Clone().Combatants[combatant.ID], nil
}

// SetInitiative writes one combatant's initiative
func (r *inMemoryRepository) SetInitiative(ctx context.Context, encounterID, combatantID string, initiative int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	encounter, err := r.get(encounterID)
	if err != nil {
		return err
	}

	combatant, exists := encounter.Combatants[combatantID]
	if !exists {
		return combatantNotFound(encounterID, combatantID)
	}

	combatant.Initiative = &initiative
	return nil
}

// get must be called with the lock held
func (r *inMemoryRepository) get(id string) (*combat.Encounter, error) {
	encounter, exists := r.encounters[id]
	if !exists {
		return nil, encounterNotFound(id)
	}
	return encounter, nil
}

// store must be called with the write lock held
func (r *inMemoryRepository) store(encounter *combat.Encounter) {
	r.encounters[encounter.ID] = encounter.Clone()

	if encounter.Status == combat.EncounterStatusCompleted {
		if r.byChannel[encounter.ChannelID] == encounter.ID {
			delete(r.byChannel, encounter.ChannelID)
		}
		return
	}
	if encounter.ChannelID != "" {
		r.byChannel[encounter.ChannelID] = encounter.ID
	}
}
