package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/pf2e-sheet/internal/config"
	"github.com/KirkDiggler/pf2e-sheet/internal/dice"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/rulebook/pf2e"
	"github.com/KirkDiggler/pf2e-sheet/internal/domain/rulebook/pf2e/calculators"
	"github.com/KirkDiggler/pf2e-sheet/internal/handlers/discord"
	"github.com/KirkDiggler/pf2e-sheet/internal/services"
	"github.com/KirkDiggler/pf2e-sheet/internal/storage"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Discord.Validate(); err != nil {
		log.Fatalf("Invalid Discord config: %v", err)
	}

	log.Printf("Application ID: %s", cfg.Discord.AppID)
	if cfg.Discord.GuildID != "" {
		log.Printf("Guild ID: %s", cfg.Discord.GuildID)
	}

	engineConfig := &calculators.EngineConfig{}
	if cfg.Rules.ChoicesFile != "" {
		choices, err := pf2e.LoadChoices(cfg.Rules.ChoicesFile)
		if err != nil {
			log.Fatalf("Failed to load trait choices: %v", err)
		}
		engineConfig.Choices = choices
		log.Printf("Loaded trait choices from %s", cfg.Rules.ChoicesFile)
	}

	ctx := context.Background()

	stores, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Printf("Failed to open %s storage: %v", cfg.Storage.Driver, err)
		log.Println("Falling back to in-memory repositories")
		stores = storage.Memory()
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Printf("Error closing storage: %v", err)
		}
	}()

	serviceProvider := services.NewProvider(&services.ProviderConfig{
		SheetRepository:     stores.Sheets,
		EncounterRepository: stores.Encounters,
		Engine:              calculators.NewEngine(engineConfig),
		Roller:              dice.NewRandomRoller(),
	})

	var targets discord.TargetStore
	if stores.Redis != nil {
		targets = discord.NewRedisTargetStore(stores.Redis)
	}

	handler := discord.NewHandler(&discord.HandlerConfig{
		ServiceProvider: serviceProvider,
		Targets:         targets,
	})

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	dg.AddHandler(discord.RecoverMiddleware("interaction", handler.HandleInteraction))

	if err := dg.Open(); err != nil {
		log.Printf("Failed to open Discord connection: %v", err)
		return
	}
	defer func() {
		if err := dg.Close(); err != nil {
			log.Printf("Failed to close Discord connection: %v", err)
		}
	}()

	// Empty guild ID registers global commands
	if err := handler.RegisterCommands(dg, cfg.Discord.AppID, cfg.Discord.GuildID); err != nil {
		log.Printf("Failed to register commands: %v", err)
		return
	}

	if cfg.Discord.GuildID != "" {
		log.Printf("Registered commands for guild: %s", cfg.Discord.GuildID)
	} else {
		log.Println("Registered global commands (may take up to 1 hour to propagate)")
	}

	fmt.Println("Bot is now running. Press CTRL-C to exit.")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	fmt.Println("Shutting down...")
}
