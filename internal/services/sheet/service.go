package sheet

//go:generate mockgen -destination=mock/mock_service.go -package=mocksheet -source=service.go

import (
	"context"
	"log"
	"strings"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/rulebook/pf2e/calculators"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/shared"
	domain "github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
	"github.com/KirkDiggler/pf2e-sheet/internal/repositories/sheets"
	"github.com/KirkDiggler/pf2e-sheet/internal/uuid"
)

// Service manages stored sheets. Every sheet it returns has been recomputed.
type Service interface {
	// Create assigns ids, recomputes and stores a new sheet
	Create(ctx context.Context, input *CreateInput) (*domain.Sheet, error)

	// Get loads a sheet and recomputes its derived fields
	Get(ctx context.Context, id string) (*domain.Sheet, error)

	// ListByOwner loads every sheet a user owns
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Sheet, error)

	// UpdateBase writes base field paths then stores the recomputed sheet
	UpdateBase(ctx context.Context, id string, fields map[string]any) (*domain.Sheet, error)

	// AddLore adds a named lore skill
	AddLore(ctx context.Context, id, name string, rank int) (*domain.Sheet, error)

	// Delete removes a sheet
	Delete(ctx context.Context, id string) error
}

// CreateInput contains data for creating a sheet. Base, when set, carries an
// authored sheet (an import) and wins over Name and Kind.
type CreateInput struct {
	OwnerID string
	Name    string
	Kind    shared.SheetKind
	Base    *domain.Sheet
}

// maxModifyAttempts bounds reload and retry when a sheet changes mid write
const maxModifyAttempts = 3

type service struct {
	repository    sheets.Repository
	engine        *calculators.Engine
	uuidGenerator uuid.Generator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    sheets.Repository
	Engine        *calculators.Engine
	UUIDGenerator uuid.Generator
}

// NewService creates a new sheet service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository:    cfg.Repository,
		engine:        cfg.Engine,
		uuidGenerator: cfg.UUIDGenerator,
	}

	if svc.engine == nil {
		svc.engine = calculators.NewEngine(nil)
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

func (s *service) Create(ctx context.Context, input *CreateInput) (*domain.Sheet, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	if input.OwnerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	base := input.Base.Clone()
	if base == nil {
		base = &domain.Sheet{Name: input.Name, Kind: input.Kind}
	}
	base.OwnerID = input.OwnerID
	base.Revision = 0
	if base.Kind == "" {
		base.Kind = shared.SheetKindCharacter
	}
	if base.Kind != shared.SheetKindCharacter && base.Kind != shared.SheetKindNPC {
		return nil, dnderr.InvalidArgumentf("unknown sheet kind '%s'", base.Kind).
			WithMeta("kind", string(base.Kind))
	}
	base.Name = strings.TrimSpace(base.Name)
	if base.Name == "" {
		return nil, dnderr.InvalidArgument("sheet name is required")
	}

	if !uuid.IsValid(base.ID) {
		base.ID = s.uuidGenerator.New()
	}
	for _, lore := range base.Lore {
		if lore != nil && lore.ID == "" {
			lore.ID = s.uuidGenerator.New()
		}
	}

	derived := s.engine.Recompute(base)
	if err := s.repository.Create(ctx, derived); err != nil {
		return nil, dnderr.Wrapf(err, "failed to create sheet %s", derived.Name)
	}

	log.Printf("Created %s sheet %s (%s) for owner %s", derived.Kind, derived.Name, derived.ID, derived.OwnerID)
	return derived, nil
}

func (s *service) Get(ctx context.Context, id string) (*domain.Sheet, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("sheet ID is required")
	}

	stored, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get sheet %s", id)
	}

	return s.engine.Recompute(stored), nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Sheet, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	stored, err := s.repository.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to list sheets for owner %s", ownerID)
	}

	out := make([]*domain.Sheet, 0, len(stored))
	for _, sh := range stored {
		out = append(out, s.engine.Recompute(sh))
	}
	return out, nil
}

func (s *service) UpdateBase(ctx context.Context, id string, fields map[string]any) (*domain.Sheet, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("sheet ID is required")
	}
	if len(fields) == 0 {
		return nil, dnderr.InvalidArgument("at least one field is required")
	}

	if err := s.repository.UpdateFields(ctx, id, fields); err != nil {
		return nil, dnderr.Wrapf(err, "failed to update sheet %s", id)
	}

	return s.persistRecomputed(ctx, id)
}

func (s *service) AddLore(ctx context.Context, id, name string, rank int) (*domain.Sheet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dnderr.InvalidArgument("lore name is required")
	}

	return s.modify(ctx, id, func(stored *domain.Sheet) error {
		if stored.FindLore(name) != nil {
			return dnderr.AlreadyExistsf("lore '%s' already exists", name).
				WithMeta("sheet_id", id)
		}

		lore := &domain.LoreSkill{
			ID:   s.uuidGenerator.New(),
			Name: name,
		}
		if stored.Kind.IsNPC() {
			lore.Modifier = domain.Number(rank)
		} else {
			lore.Rank = domain.Number(rank)
		}
		stored.Lore = append(stored.Lore, lore)
		return nil
	})
}

func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("sheet ID is required")
	}

	if err := s.repository.Delete(ctx, id); err != nil {
		return dnderr.Wrapf(err, "failed to delete sheet %s", id)
	}
	return nil
}

// persistRecomputed reloads a sheet after a field write so stored derived
// values never lag behind the base data
func (s *service) persistRecomputed(ctx context.Context, id string) (*domain.Sheet, error) {
	return s.modify(ctx, id, nil)
}

// modify loads a sheet, applies change, recomputes and stores it. A write
// that raced another writer is retried from a fresh read.
func (s *service) modify(ctx context.Context, id string, change func(*domain.Sheet) error) (*domain.Sheet, error) {
	var err error
	for attempt := 0; attempt < maxModifyAttempts; attempt++ {
		var stored *domain.Sheet
		stored, err = s.repository.Get(ctx, id)
		if err != nil {
			return nil, dnderr.Wrapf(err, "failed to get sheet %s", id)
		}

		if change != nil {
			if err := change(stored); err != nil {
				return nil, err
			}
		}

		derived := s.engine.Recompute(stored)
		err = s.repository.Update(ctx, derived)
		if err == nil {
			return derived, nil
		}
		if !dnderr.IsConflict(err) {
			break
		}
		log.Printf("Sheet %s changed while saving, retrying (attempt %d)", id, attempt+1)
	}

	return nil, dnderr.Wrapf(err, "failed to save sheet %s", id)
}
