package encounters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/combat"
	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
)

// encounterData is the encounter document without its combatants
type encounterData struct {
	ID        string                 `json:"id"`
	ChannelID string                 `json:"channel_id"`
	Name      string                 `json:"name"`
	Status    combat.EncounterStatus `json:"status"`
	Round     int                    `json:"round"`
	Turn      int                    `json:"turn"`
	TurnOrder []string               `json:"turn_order"`
	CreatedBy string                 `json:"created_by"`
	CreatedAt time.Time              `json:"created_at"`
}

// combatantData is a combatant without initiative, which lives in a sorted set
type combatantData struct {
	ID      string               `json:"id"`
	TokenID string               `json:"token_id"`
	SheetID string               `json:"sheet_id"`
	Name    string               `json:"name"`
	Type    combat.CombatantType `json:"type"`
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

type redisRepo struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a Redis-backed encounter repository.
//
// Layout per encounter:
//
//	encounter:<id>             JSON document
//	encounter:<id>:combatants  hash combatant ID -> JSON
//	encounter:<id>:tokens      hash token ID -> combatant ID
//	encounter:<id>:initiative  sorted set combatant ID scored by initiative
//	channel:<id>:encounter     active encounter ID
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	return &redisRepo{client: cfg.Client}
}

// NewRedis creates a new Redis-backed encounter repository
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func encounterKey(id string) string {
	return fmt.Sprintf("encounter:%s", id)
}

func combatantsKey(id string) string {
	return fmt.Sprintf("encounter:%s:combatants", id)
}

func tokensKey(id string) string {
	return fmt.Sprintf("encounter:%s:tokens", id)
}

func initiativeKey(id string) string {
	return fmt.Sprintf("encounter:%s:initiative", id)
}

func channelKey(channelID string) string {
	return fmt.Sprintf("channel:%s:encounter", channelID)
}

// Create stores a new encounter
func (r *redisRepo) Create(ctx context.Context, encounter *combat.Encounter) error {
	if err := validateEncounter(encounter); err != nil {
		return err
	}

	exists, err := r.client.Exists(ctx, encounterKey(encounter.ID)).Result()
	if err != nil {
		return dnderr.Wrap(err, "failed to check encounter existence")
	}
	if exists > 0 {
		return dnderr.AlreadyExistsf("encounter with ID '%s' already exists", encounter.ID).
			WithMeta("encounter_id", encounter.ID)
	}

	return r.write(ctx, encounter, "failed to create encounter")
}

// Get retrieves an encounter by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*combat.Encounter, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("encounter ID is required")
	}

	pipe := r.client.Pipeline()
	docCmd := pipe.Get(ctx, encounterKey(id))
	combatantsCmd := pipe.HGetAll(ctx, combatantsKey(id))
	initiativeCmd := pipe.ZRangeWithScores(ctx, initiativeKey(id), 0, -1)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, dnderr.Wrapf(err, "failed to get encounter %s", id)
	}

	doc, err := docCmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, encounterNotFound(id)
	}
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get encounter %s", id)
	}

	var data encounterData
	if err := json.Unmarshal(doc, &data); err != nil {
		return nil, dnderr.Wrap(err, "failed to unmarshal encounter")
	}

	encounter := fromEncounterData(&data)
	for _, raw := range combatantsCmd.Val() {
		var c combatantData
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, dnderr.Wrap(err, "failed to unmarshal combatant")
		}
		encounter.AddCombatant(fromCombatantData(&c))
	}
	for _, z := range initiativeCmd.Val() {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		if c, exists := encounter.Combatants[member]; exists {
			initiative := int(z.Score)
			c.Initiative = &initiative
		}
	}

	return encounter, nil
}

// Update replaces an existing encounter and its combatants
func (r *redisRepo) Update(ctx context.Context, encounter *combat.Encounter) error {
	if err := validateEncounter(encounter); err != nil {
		return err
	}

	exists, err := r.client.Exists(ctx, encounterKey(encounter.ID)).Result()
	if err != nil {
		return dnderr.Wrap(err, "failed to check encounter existence")
	}
	if exists == 0 {
		return encounterNotFound(encounter.ID)
	}

	return r.write(ctx, encounter, "failed to update encounter")
}

// Delete removes an encounter
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	encounter, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	active, err := r.client.Get(ctx, channelKey(encounter.ChannelID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return dnderr.Wrap(err, "failed to read channel encounter")
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, encounterKey(id), combatantsKey(id), tokensKey(id), initiativeKey(id))
		if active == id {
			pipe.Del(ctx, channelKey(encounter.ChannelID))
		}
		return nil
	})
	if err != nil {
		return dnderr.Wrapf(err, "failed to delete encounter %s", id)
	}

	return nil
}

// GetActiveByChannel retrieves the encounter currently running in a channel
func (r *redisRepo) GetActiveByChannel(ctx context.Context, channelID string) (*combat.Encounter, error) {
	id, err := r.client.Get(ctx, channelKey(channelID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, dnderr.NotFoundf("no active encounter in channel '%s'", channelID).
			WithMeta("channel_id", channelID)
	}
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to read channel encounter")
	}

	return r.Get(ctx, id)
}

// FindCombatantByToken resolves a token through the token index
func (r *redisRepo) FindCombatantByToken(ctx context.Context, encounterID, tokenID string) (*combat.Combatant, error) {
	combatantID, err := r.client.HGet(ctx, tokensKey(encounterID), tokenID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, tokenNotFound(encounterID, tokenID)
	}
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to resolve token %s", tokenID)
	}

	raw, err := r.client.HGet(ctx, combatantsKey(encounterID), combatantID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, combatantNotFound(encounterID, combatantID)
	}
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get combatant %s", combatantID)
	}

	var data combatantData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, dnderr.Wrap(err, "failed to unmarshal combatant")
	}
	combatant := fromCombatantData(&data)

	score, err := r.client.ZScore(ctx, initiativeKey(encounterID), combatantID).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, dnderr.Wrapf(err, "failed to get initiative for %s", combatantID)
	}
	if err == nil {
		initiative := int(score)
		combatant.Initiative = &initiative
	}

	return combatant, nil
}

// SetInitiative writes one member of the initiative sorted set. Targets never
// share a member so concurrent writers do not conflict.
func (r *redisRepo) SetInitiative(ctx context.Context, encounterID, combatantID string, initiative int) error {
	exists, err := r.client.HExists(ctx, combatantsKey(encounterID), combatantID).Result()
	if err != nil {
		return dnderr.Wrapf(err, "failed to check combatant %s", combatantID)
	}
	if !exists {
		return combatantNotFound(encounterID, combatantID)
	}

	err = r.client.ZAdd(ctx, initiativeKey(encounterID), redis.Z{
		Score:  float64(initiative),
		Member: combatantID,
	}).Err()
	if err != nil {
		return dnderr.Wrapf(err, "failed to set initiative for %s", combatantID)
	}

	return nil
}

// write replaces every key of an encounter in one MULTI/EXEC
func (r *redisRepo) write(ctx context.Context, encounter *combat.Encounter, msg string) error {
	doc, err := json.Marshal(toEncounterData(encounter))
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal encounter")
	}

	combatants := make(map[string]any, len(encounter.Combatants))
	tokens := make(map[string]any, len(encounter.Combatants))
	var scores []redis.Z
	for id, c := range encounter.Combatants {
		raw, err := json.Marshal(toCombatantData(c))
		if err != nil {
			return dnderr.Wrap(err, "failed to marshal combatant")
		}
		combatants[id] = string(raw)
		tokens[c.TokenID] = id
		if c.HasInitiative() {
			scores = append(scores, redis.Z{Score: float64(*c.Initiative), Member: id})
		}
	}

	id := encounter.ID
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, encounterKey(id), string(doc), 0)
		pipe.Del(ctx, combatantsKey(id), tokensKey(id), initiativeKey(id))
		if len(combatants) > 0 {
			pipe.HSet(ctx, combatantsKey(id), combatants)
			pipe.HSet(ctx, tokensKey(id), tokens)
		}
		if len(scores) > 0 {
			pipe.ZAdd(ctx, initiativeKey(id), scores...)
		}
		if encounter.ChannelID != "" {
			if encounter.Status == combat.EncounterStatusCompleted {
				pipe.Del(ctx, channelKey(encounter.ChannelID))
			} else {
				pipe.Set(ctx, channelKey(encounter.ChannelID), id, 0)
			}
		}
		return nil
	})
	if err != nil {
		return dnderr.Wrap(err, msg)
	}

	return nil
}

func toEncounterData(e *combat.Encounter) *encounterData {
	return &encounterData{
		ID:        e.ID,
		ChannelID: e.ChannelID,
		Name:      e.Name,
		Status:    e.Status,
		Round:     e.Round,
		Turn:      e.Turn,
		TurnOrder: e.TurnOrder,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
	}
}

func fromEncounterData(d *encounterData) *combat.Encounter {
	turnOrder := d.TurnOrder
	if turnOrder == nil {
		turnOrder = []string{}
	}
	return &combat.Encounter{
		ID:         d.ID,
		ChannelID:  d.ChannelID,
		Name:       d.Name,
		Status:     d.Status,
		Round:      d.Round,
		Turn:       d.Turn,
		Combatants: make(map[string]*combat.Combatant),
		TurnOrder:  turnOrder,
		CreatedBy:  d.CreatedBy,
		CreatedAt:  d.CreatedAt,
	}
}

func toCombatantData(c *combat.Combatant) *combatantData {
	return &combatantData{
		ID:      c.ID,
		TokenID: c.TokenID,
		SheetID: c.SheetID,
		Name:    c.Name,
		Type:    c.Type,
	}
}

func fromCombatantData(d *combatantData) *combat.Combatant {
	return &combat.Combatant{
		ID:      d.ID,
		TokenID: d.TokenID,
		SheetID: d.SheetID,
		Name:    d.Name,
		Type:    d.Type,
	}
}
