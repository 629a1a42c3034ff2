package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// StorageDriver selects the sheet and encounter store
type StorageDriver string

const (
	StorageMemory StorageDriver = "memory"
	StorageRedis  StorageDriver = "redis"
	StorageSQLite StorageDriver = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Discord DiscordConfig
	Storage StorageConfig
	Redis   RedisConfig
	SQLite  SQLiteConfig
	Rules   RulesConfig
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string `env:"DISCORD_TOKEN"`
	AppID   string `env:"DISCORD_APP_ID"`
	GuildID string `env:"DISCORD_GUILD_ID"` // Optional: for guild-specific commands
}

// StorageConfig picks the backing store
type StorageConfig struct {
	Driver StorageDriver `env:"STORAGE_DRIVER" envDefault:"memory"`
}

// RedisConfig holds Redis-specific configuration. URL wins over the
// individual fields when set.
type RedisConfig struct {
	URL      string `env:"REDIS_URL"`
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// SQLiteConfig holds the embedded database location
type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH" envDefault:"sheets.db"`
}

// RulesConfig points at optional rule table overrides
type RulesConfig struct {
	ChoicesFile string `env:"PF2E_CHOICES_FILE"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.Storage.Driver {
	case StorageMemory, StorageRedis, StorageSQLite:
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER must be one of memory, redis, sqlite; got %q", cfg.Storage.Driver)
	}

	return cfg, nil
}

// Validate checks the settings the bot cannot start without
func (c DiscordConfig) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.AppID == "" {
		return fmt.Errorf("DISCORD_APP_ID is required")
	}
	return nil
}
