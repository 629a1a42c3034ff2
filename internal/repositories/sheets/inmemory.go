package sheets

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
)

// InMemoryRepository keeps encoded sheet documents in a map.
// Useful for testing and development
type InMemoryRepository struct {
	mu           sync.RWMutex
	docs         map[string][]byte
	owners       map[string]string
	timeProvider TimeProvider
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return NewInMemoryRepositoryWithClock(utcClock{})
}

// NewInMemoryRepositoryWithClock creates an in-memory repository stamped by timeProvider
func NewInMemoryRepositoryWithClock(timeProvider TimeProvider) *InMemoryRepository {
	return &InMemoryRepository{
		docs:         make(map[string][]byte),
		owners:       make(map[string]string),
		timeProvider: timeProvider,
	}
}

// Create stores a new sheet
func (r *InMemoryRepository) Create(ctx context.Context, s *sheet.Sheet) error {
	if err := validateSheet(s); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.docs[s.ID]; exists {
		return dnderr.AlreadyExistsf("sheet with ID '%s' already exists", s.ID).
			WithMeta("sheet_id", s.ID)
	}

	now := r.timeProvider.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	return r.put(s)
}

// Get retrieves a sheet by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*sheet.Sheet, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("sheet ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, exists := r.docs[id]
	if !exists {
		return nil, dnderr.NotFoundf("sheet with ID '%s' not found", id).
			WithMeta("sheet_id", id)
	}

	return decodeSheet(doc)
}

// GetByOwner retrieves all sheets for a specific owner ordered by ID
func (r *InMemoryRepository) GetByOwner(ctx context.Context, ownerID string) ([]*sheet.Sheet, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for id, owner := range r.owners {
		if owner == ownerID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	result := make([]*sheet.Sheet, 0, len(ids))
	for _, id := range ids {
		s, err := decodeSheet(r.docs[id])
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}

	return result, nil
}

// Update replaces a stored sheet read at s.Revision
func (r *InMemoryRepository) Update(ctx context.Context, s *sheet.Sheet) error {
	if err := validateSheet(s); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, exists := r.docs[s.ID]
	if !exists {
		return dnderr.NotFoundf("sheet with ID '%s' not found", s.ID).
			WithMeta("sheet_id", s.ID)
	}
	if err := checkRevision(doc, s.ID, s.Revision); err != nil {
		return err
	}

	s.UpdatedAt = r.timeProvider.Now()
	s.Revision++

	return r.put(s)
}

// UpdateFields writes field path -> value pairs into a stored sheet
func (r *InMemoryRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if id == "" {
		return dnderr.InvalidArgument("sheet ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, exists := r.docs[id]
	if !exists {
		return dnderr.NotFoundf("sheet with ID '%s' not found", id).
			WithMeta("sheet_id", id)
	}

	updated, err := ApplyFields(doc, fields, r.timeProvider.Now())
	if err != nil {
		return err
	}
	r.docs[id] = updated

	return nil
}

// Delete removes a sheet
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("sheet ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.docs[id]; !exists {
		return dnderr.NotFoundf("sheet with ID '%s' not found", id).
			WithMeta("sheet_id", id)
	}

	delete(r.docs, id)
	delete(r.owners, id)

	return nil
}

// put must be called with the write lock held
func (r *InMemoryRepository) put(s *sheet.Sheet) error {
	doc, err := encodeSheet(s)
	if err != nil {
		return err
	}
	r.docs[s.ID] = doc
	r.owners[s.ID] = s.OwnerID
	return nil
}
