package sheets

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
)

// maxUpdateAttempts bounds optimistic retries when a watched sheet changes mid update
const maxUpdateAttempts = 3

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider
}

type redisRepo struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
}

// NewRedisRepository creates a new Redis-backed sheet repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = utcClock{}
	}

	return &redisRepo{
		client:       cfg.Client,
		timeProvider: timeProvider,
	}
}

func sheetKey(id string) string {
	return fmt.Sprintf("sheet:%s", id)
}

func ownerSheetsKey(ownerID string) string {
	return fmt.Sprintf("owner:%s:sheets", ownerID)
}

// Create stores a new sheet
func (r *redisRepo) Create(ctx context.Context, s *sheet.Sheet) error {
	if err := validateSheet(s); err != nil {
		return err
	}

	exists, err := r.client.Exists(ctx, sheetKey(s.ID)).Result()
	if err != nil {
		return dnderr.Wrap(err, "failed to check sheet existence")
	}
	if exists > 0 {
		return dnderr.AlreadyExistsf("sheet with ID '%s' already exists", s.ID).
			WithMeta("sheet_id", s.ID)
	}

	now := r.timeProvider.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	return r.set(ctx, s, "failed to create sheet")
}

// Get retrieves a sheet by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*sheet.Sheet, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("sheet ID is required")
	}

	data, err := r.client.Get(ctx, sheetKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, dnderr.NotFoundf("sheet with ID '%s' not found", id).
			WithMeta("sheet_id", id)
	}
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get sheet %s", id)
	}

	return decodeSheet(data)
}

// GetByOwner retrieves all sheets for a specific owner, skipping index
// entries whose sheet no longer exists
func (r *redisRepo) GetByOwner(ctx context.Context, ownerID string) ([]*sheet.Sheet, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	ids, err := r.client.SMembers(ctx, ownerSheetsKey(ownerID)).Result()
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list sheet IDs")
	}
	sort.Strings(ids)

	loaded := make([]*sheet.Sheet, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			s, err := r.Get(ctx, id)
			if dnderr.IsNotFound(err) {
				return nil
			}
			if err != nil {
				return err
			}
			loaded[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*sheet.Sheet, 0, len(loaded))
	for _, s := range loaded {
		if s != nil {
			result = append(result, s)
		}
	}

	return result, nil
}

// Update replaces a stored sheet read at s.Revision. The owner index follows
// an owner change.
func (r *redisRepo) Update(ctx context.Context, s *sheet.Sheet) error {
	if err := validateSheet(s); err != nil {
		return err
	}

	key := sheetKey(s.ID)
	expected := s.Revision
	txf := func(tx *redis.Tx) error {
		stored, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return dnderr.NotFoundf("sheet with ID '%s' not found", s.ID).
				WithMeta("sheet_id", s.ID)
		}
		if err != nil {
			return dnderr.Wrapf(err, "failed to get sheet %s", s.ID)
		}
		if err := checkRevision(stored, s.ID, expected); err != nil {
			return err
		}
		previousOwner := gjson.GetBytes(stored, fieldOwnerID).String()

		s.UpdatedAt = r.timeProvider.Now()
		s.Revision = expected + 1
		data, err := encodeSheet(s)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, string(data), 0)
			if previousOwner != s.OwnerID {
				pipe.SRem(ctx, ownerSheetsKey(previousOwner), s.ID)
			}
			pipe.SAdd(ctx, ownerSheetsKey(s.OwnerID), s.ID)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		s.Revision = expected
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return dnderr.Wrapf(err, "failed to update sheet %s", s.ID)
	}

	return dnderr.Conflictf("sheet %s changed during update", s.ID).
		WithMeta("sheet_id", s.ID)
}

// UpdateFields rewrites individual fields under WATCH so a concurrent writer
// never has its change silently overwritten
func (r *redisRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if id == "" {
		return dnderr.InvalidArgument("sheet ID is required")
	}

	key := sheetKey(id)
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return dnderr.NotFoundf("sheet with ID '%s' not found", id).
				WithMeta("sheet_id", id)
		}
		if err != nil {
			return dnderr.Wrapf(err, "failed to get sheet %s", id)
		}

		updated, err := ApplyFields(data, fields, r.timeProvider.Now())
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, string(updated), 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return dnderr.Wrapf(err, "failed to update sheet %s", id)
	}

	return dnderr.Conflictf("sheet %s changed during update", id).
		WithMeta("sheet_id", id)
}

// Delete removes a sheet and its owner index entry
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	s, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, sheetKey(id))
	pipe.SRem(ctx, ownerSheetsKey(s.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Wrapf(err, "failed to delete sheet %s", id)
	}

	return nil
}

func (r *redisRepo) set(ctx context.Context, s *sheet.Sheet, msg string) error {
	data, err := encodeSheet(s)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, sheetKey(s.ID), string(data), 0)
	pipe.SAdd(ctx, ownerSheetsKey(s.OwnerID), s.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Wrap(err, msg)
	}

	return nil
}

func validateSheet(s *sheet.Sheet) error {
	if s == nil {
		return dnderr.InvalidArgument("sheet cannot be nil")
	}
	if s.ID == "" {
		return dnderr.InvalidArgument("sheet ID is required")
	}
	if s.OwnerID == "" {
		return dnderr.InvalidArgument("sheet owner ID is required")
	}
	return nil
}
