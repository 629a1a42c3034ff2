package services

import (
	"github.com/KirkDiggler/pf2e-sheet/internal/dice"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/rulebook/pf2e/calculators"
	"github.com/KirkDiggler/pf2e-sheet/internal/repositories/encounters"
	"github.com/KirkDiggler/pf2e-sheet/internal/repositories/sheets"
	encounterService "github.com/KirkDiggler/pf2e-sheet/internal/services/encounter"
	outcomeService "github.com/KirkDiggler/pf2e-sheet/internal/services/outcome"
	rollService "github.com/KirkDiggler/pf2e-sheet/internal/services/roll"
	sheetService "github.com/KirkDiggler/pf2e-sheet/internal/services/sheet"
	"github.com/KirkDiggler/pf2e-sheet/internal/uuid"
)

// Provider holds all service instances
type Provider struct {
	SheetService     sheetService.Service
	RollService      rollService.Service
	OutcomeService   outcomeService.Service
	EncounterService encounterService.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	SheetRepository     sheets.Repository
	EncounterRepository encounters.Repository
	Engine              *calculators.Engine
	Roller              dice.Roller
	UUIDGenerator       uuid.Generator
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repositories if none provided
	sheetRepo := cfg.SheetRepository
	if sheetRepo == nil {
		sheetRepo = sheets.NewInMemoryRepository()
	}

	encounterRepo := cfg.EncounterRepository
	if encounterRepo == nil {
		encounterRepo = encounters.NewInMemoryRepository()
	}

	engine := cfg.Engine
	if engine == nil {
		engine = calculators.NewEngine(nil)
	}

	uuidGen := cfg.UUIDGenerator
	if uuidGen == nil {
		uuidGen = uuid.NewGoogleUUIDGenerator()
	}

	sheetSvc := sheetService.NewService(&sheetService.ServiceConfig{
		Repository:    sheetRepo,
		Engine:        engine,
		UUIDGenerator: uuidGen,
	})

	return &Provider{
		SheetService: sheetSvc,
		RollService: rollService.NewService(&rollService.ServiceConfig{
			Roller: cfg.Roller,
			Engine: engine,
		}),
		OutcomeService: outcomeService.NewService(&outcomeService.ServiceConfig{
			SheetRepository:     sheetRepo,
			EncounterRepository: encounterRepo,
		}),
		EncounterService: encounterService.NewService(&encounterService.ServiceConfig{
			Repository:    encounterRepo,
			SheetService:  sheetSvc,
			UUIDGenerator: uuidGen,
		}),
	}
}
