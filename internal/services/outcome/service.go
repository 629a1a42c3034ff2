// Package outcome applies finished rolls to sheets and encounters
package outcome

//go:generate mockgen -destination=mock/mock_service.go -package=mockoutcome -source=service.go

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/pf2e-sheet/internal/dice"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/rulebook/pf2e/calculators"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
	"github.com/KirkDiggler/pf2e-sheet/internal/repositories/encounters"
	"github.com/KirkDiggler/pf2e-sheet/internal/repositories/sheets"
)

// Common multipliers offered next to a damage roll
const (
	MultiplierNormal = 1.0
	MultiplierDouble = 2.0
	MultiplierHalf   = 0.5
	MultiplierHeal   = -1.0
)

// Service applies roll outcomes to every selected target at once
type Service interface {
	// ApplyDamage scales the outcome total by multiplier and applies it to each
	// sheet. Temporary hit points absorb damage first; a negative multiplier heals.
	ApplyDamage(ctx context.Context, outcome *dice.Outcome, multiplier float64, sheetIDs []string) error

	// SetInitiative assigns the outcome total as initiative for the combatant
	// placed for each token in the encounter
	SetInitiative(ctx context.Context, outcome *dice.Outcome, encounterID string, tokenIDs []string) error
}

type service struct {
	sheets     sheets.Repository
	encounters encounters.Repository
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	SheetRepository     sheets.Repository
	EncounterRepository encounters.Repository
}

// NewService creates a new outcome service
func NewService(cfg *ServiceConfig) Service {
	if cfg.SheetRepository == nil {
		panic("sheet repository is required")
	}
	if cfg.EncounterRepository == nil {
		panic("encounter repository is required")
	}

	return &service{
		sheets:     cfg.SheetRepository,
		encounters: cfg.EncounterRepository,
	}
}

func (s *service) ApplyDamage(ctx context.Context, outcome *dice.Outcome, multiplier float64, sheetIDs []string) error {
	if outcome == nil {
		return dnderr.InvalidArgument("roll outcome is required")
	}

	value := calculators.DamageValue(outcome.Total, multiplier)

	return s.fanOut(sheetIDs, "apply damage", func(id string) error {
		return s.applyDamage(ctx, id, value)
	})
}

func (s *service) applyDamage(ctx context.Context, id string, value int) error {
	target, err := s.sheets.Get(ctx, id)
	if err != nil {
		return err
	}

	hp, absorbed := calculators.ApplyDamage(target.HitPoints, value)
	err = s.sheets.UpdateFields(ctx, id, map[string]any{
		sheet.FieldHitPointsTemp:  hp.Temp.Int(),
		sheet.FieldHitPointsValue: hp.Value.Int(),
	})
	if err != nil {
		return err
	}

	log.Printf("Applied %d to %s (%s): hp %d -> %d, temp absorbed %d",
		value, target.Name, id, target.HitPoints.Value.Int(), hp.Value.Int(), absorbed)
	return nil
}

func (s *service) SetInitiative(ctx context.Context, outcome *dice.Outcome, encounterID string, tokenIDs []string) error {
	if outcome == nil {
		return dnderr.InvalidArgument("roll outcome is required")
	}
	if encounterID == "" {
		return dnderr.InvalidArgument("encounter ID is required")
	}

	return s.fanOut(tokenIDs, "set initiative", func(tokenID string) error {
		combatant, err := s.encounters.FindCombatantByToken(ctx, encounterID, tokenID)
		if err != nil {
			return err
		}
		return s.encounters.SetInitiative(ctx, encounterID, combatant.ID, outcome.Total)
	})
}

// fanOut runs fn for every distinct target concurrently and waits for all of
// them. One target failing never stops the others; every failure is reported.
func (s *service) fanOut(targets []string, action string, fn func(target string) error) error {
	targets = distinct(targets)
	failures := make([]error, len(targets))

	var g errgroup.Group
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			if err := fn(target); err != nil {
				log.Printf("Failed to %s for target %s: %v", action, target, err)
				failures[i] = &TargetError{Target: target, Err: err}
			}
			return nil
		})
	}
	_ = g.Wait()

	var failed []string
	var errs []error
	for i, err := range failures {
		if err != nil {
			failed = append(failed, targets[i])
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}

	return dnderr.Wrapf(errors.Join(errs...), "failed to %s for %d of %d targets", action, len(errs), len(targets)).
		WithMeta("failed_targets", failed)
}

func distinct(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
