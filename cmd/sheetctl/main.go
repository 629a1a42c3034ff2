package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/pf2e-sheet/internal/config"
	"github.com/KirkDiggler/pf2e-sheet/internal/dice"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/rulebook/pf2e"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/rulebook/pf2e/calculators"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
	"github.com/KirkDiggler/pf2e-sheet/internal/services"
	"github.com/KirkDiggler/pf2e-sheet/internal/services/outcome"
	sheetService "github.com/KirkDiggler/pf2e-sheet/internal/services/sheet"
	"github.com/KirkDiggler/pf2e-sheet/internal/storage"
)

const usage = `Usage:
  sheetctl import <owner-id> <sheet.json>
  sheetctl show <sheet-id>
  sheetctl roll <sheet-id> <skill|lore|save|ability|attribute|damage> <key>
  sheetctl damage <total> <normal|double|half|heal> <sheet-id>...
  sheetctl initiative <encounter-id> <total> <token-id>...`

var multipliers = map[string]float64{
	"normal": outcome.MultiplierNormal,
	"double": outcome.MultiplierDouble,
	"half":   outcome.MultiplierHalf,
	"heal":   outcome.MultiplierHeal,
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	engineConfig := &calculators.EngineConfig{}
	if cfg.Rules.ChoicesFile != "" {
		choices, err := pf2e.LoadChoices(cfg.Rules.ChoicesFile)
		if err != nil {
			log.Fatalf("Failed to load trait choices: %v", err)
		}
		engineConfig.Choices = choices
	}

	ctx := context.Background()

	stores, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.Storage.Driver, err)
	}

	provider := services.NewProvider(&services.ProviderConfig{
		SheetRepository:     stores.Sheets,
		EncounterRepository: stores.Encounters,
		Engine:              calculators.NewEngine(engineConfig),
		Roller:              dice.NewRandomRoller(),
	})

	runErr := run(ctx, provider, os.Args[1:], os.Stdout)
	if err := stores.Close(); err != nil {
		log.Printf("Error closing storage: %v", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}

func run(ctx context.Context, provider *services.Provider, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", usage)
	}

	switch args[0] {
	case "import":
		if len(args) != 3 {
			return fmt.Errorf("%s", usage)
		}
		return importSheet(ctx, provider, args[1], args[2], out)

	case "show":
		if len(args) != 2 {
			return fmt.Errorf("%s", usage)
		}
		found, err := provider.SheetService.Get(ctx, args[1])
		if err != nil {
			return err
		}
		return writeJSON(out, found)

	case "roll":
		if len(args) != 4 {
			return fmt.Errorf("%s", usage)
		}
		return roll(ctx, provider, args[1], args[2], args[3], out)

	case "damage":
		if len(args) < 4 {
			return fmt.Errorf("%s", usage)
		}
		total, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("total must be a number: %w", err)
		}
		multiplier, ok := multipliers[args[2]]
		if !ok {
			return fmt.Errorf("unknown multiplier %q", args[2])
		}
		if err := provider.OutcomeService.ApplyDamage(ctx, &dice.Outcome{Total: total}, multiplier, args[3:]); err != nil {
			return err
		}
		value := calculators.DamageValue(total, multiplier)
		_, err = fmt.Fprintf(out, "Applied %d to %d sheet(s)\n", value, len(args[3:]))
		return err

	case "initiative":
		if len(args) < 4 {
			return fmt.Errorf("%s", usage)
		}
		total, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("total must be a number: %w", err)
		}
		if err := provider.OutcomeService.SetInitiative(ctx, &dice.Outcome{Total: total}, args[1], args[3:]); err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "Initiative %d set for %d token(s)\n", total, len(args[3:]))
		return err

	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func importSheet(ctx context.Context, provider *services.Provider, ownerID, path string, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var base sheet.Sheet
	if err := json.Unmarshal(data, &base); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	created, err := provider.SheetService.Create(ctx, &sheetService.CreateInput{
		OwnerID: ownerID,
		Base:    &base,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "Imported %s as %s\n", created.Name, created.ID)
	return err
}

func roll(ctx context.Context, provider *services.Provider, sheetID, family, key string, out io.Writer) error {
	roller, err := provider.SheetService.Get(ctx, sheetID)
	if err != nil {
		return err
	}

	rolls := provider.RollService
	var result *dice.Outcome
	switch family {
	case "skill":
		result, err = rolls.RollSkill(ctx, roller, key)
	case "lore":
		result, err = rolls.RollLoreSkill(ctx, roller, key)
	case "save":
		result, err = rolls.RollSave(ctx, roller, key)
	case "ability":
		result, err = rolls.RollAbility(ctx, roller, key)
	case "attribute":
		result, err = rolls.RollAttribute(ctx, roller, key)
	case "damage":
		result, err = rolls.RollDamage(ctx, roller, key)
	default:
		return fmt.Errorf("unknown roll family %q", family)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "%s: %s = %d (%s)\n", result.Title, result.Result, result.Total, result.Formula)
	return err
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
