package sheets

//go:generate mockgen -destination=mock/mock.go -package=mocksheets -source=interface.go

import (
	"context"
	"time"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
)

// Repository defines the interface for sheet persistence
type Repository interface {
	// Create stores a new sheet
	Create(ctx context.Context, s *sheet.Sheet) error

	// Get retrieves a sheet by ID
	Get(ctx context.Context, id string) (*sheet.Sheet, error)

	// GetByOwner retrieves all sheets for a specific owner
	GetByOwner(ctx context.Context, ownerID string) ([]*sheet.Sheet, error)

	// Update replaces a stored sheet. s.Revision must match the stored
	// revision or a Conflict error is returned; on success it is advanced.
	Update(ctx context.Context, s *sheet.Sheet) error

	// UpdateFields writes field path -> value pairs into a stored sheet,
	// e.g. {"hit_points.value": 12}, and advances the revision. Every path
	// must already exist.
	UpdateFields(ctx context.Context, id string, fields map[string]any) error

	// Delete removes a sheet
	Delete(ctx context.Context, id string) error
}

// TimeProvider stamps created_at and updated_at
type TimeProvider interface {
	Now() time.Time
}

type utcClock struct{}

func (utcClock) Now() time.Time {
	return time.Now().UTC()
}
