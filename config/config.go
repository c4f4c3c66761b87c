package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"level-bot/model"
)

// Load loads the configuration from environment variables and the leveling config file.
func Load() (*model.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	guilds, err := LoadLeveling(cfg.LevelingConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.ServerConfigs = guilds
	return cfg, nil
}

// FromEnv parses the process environment without touching any file.
func FromEnv() (*model.Config, error) {
	cfg := &model.Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN environment variable not set")
	}

	if cfg.LogChannelID == "" {
		log.Println("Warning: LOG_CHANNEL_ID not set, logging will be disabled")
	}
	switch cfg.Database.Driver {
	case "sqlite3", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	switch cfg.Cooldown.Backend {
	case "redis", "memcache", "memory":
	default:
		return nil, fmt.Errorf("unsupported COOLDOWN_BACKEND %q", cfg.Cooldown.Backend)
	}

	cfg.ServerConfigs = make(map[string]model.ServerConfig)
	cfg.Multipliers = make(map[string][]model.Multiplier)
	return cfg, nil
}
