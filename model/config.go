package model

import (
	"fmt"
	"time"
)

// LevelingSettings holds the per-guild leveling knobs read from the leveling config file.
type LevelingSettings struct {
	Enabled           bool   `mapstructure:"enabled" json:"enabled"`
	CooldownMS        int64  `mapstructure:"cooldown_ms" json:"cooldown_ms"`
	MinAward          int64  `mapstructure:"min_award" json:"min_award"`
	MaxAward          int64  `mapstructure:"max_award" json:"max_award"`
	LevelUpChannelID  string `mapstructure:"levelup_channel_id" json:"levelup_channel_id,omitempty"`
	LevelUpDM         bool   `mapstructure:"levelup_dm" json:"levelup_dm"`
	AutoDeleteSeconds int    `mapstructure:"auto_delete_seconds" json:"auto_delete_seconds"`
	EmbedColor        string `mapstructure:"embed_color" json:"embed_color,omitempty"`

	// Multipliers are stored in the database and merged in at load time.
	Multipliers []Multiplier `mapstructure:"-" json:"-"`
}

const (
	DefaultCooldownMS = 6000
	DefaultMinAward   = 15
	DefaultMaxAward   = 40
)

// DefaultLevelingSettings returns the settings used for guilds without an entry in the config file.
func DefaultLevelingSettings() LevelingSettings {
	return LevelingSettings{
		Enabled:    true,
		CooldownMS: DefaultCooldownMS,
		MinAward:   DefaultMinAward,
		MaxAward:   DefaultMaxAward,
	}
}

// WithDefaults fills the numeric fields the config file left out. isSet reports
// whether a field (by its file key) was given. A lone award bound pulls the
// missing one towards it rather than being overridden.
func (s LevelingSettings) WithDefaults(isSet func(field string) bool) LevelingSettings {
	if !isSet("cooldown_ms") {
		s.CooldownMS = DefaultCooldownMS
	}
	minSet, maxSet := isSet("min_award"), isSet("max_award")
	switch {
	case !minSet && !maxSet:
		s.MinAward, s.MaxAward = DefaultMinAward, DefaultMaxAward
	case !minSet:
		s.MinAward = min(DefaultMinAward, s.MaxAward)
	case !maxSet:
		s.MaxAward = max(DefaultMaxAward, s.MinAward)
	}
	return s
}

// Validate rejects settings no award could be drawn from.
func (s LevelingSettings) Validate() error {
	switch {
	case s.CooldownMS < 0:
		return fmt.Errorf("cooldown_ms %d is negative", s.CooldownMS)
	case s.MinAward < 0:
		return fmt.Errorf("min_award %d is negative", s.MinAward)
	case s.MinAward > s.MaxAward:
		return fmt.Errorf("min_award %d exceeds max_award %d", s.MinAward, s.MaxAward)
	}
	return nil
}

func (s LevelingSettings) Cooldown() time.Duration {
	return time.Duration(s.CooldownMS) * time.Millisecond
}

func (s LevelingSettings) AutoDelete() time.Duration {
	return time.Duration(s.AutoDeleteSeconds) * time.Second
}

// ServerConfig 定义了每个服务器的配置
type ServerConfig struct {
	Name         string           `mapstructure:"name" json:"name"`
	GuildID      string           `mapstructure:"-" json:"guild_id"`
	AdminRoleIDs []string         `mapstructure:"admin_role_ids" json:"admin_role_ids"`
	UserRoleIDs  []string         `mapstructure:"user_role_ids" json:"user_role_ids"`
	Leveling     LevelingSettings `mapstructure:"leveling" json:"leveling"`
}

// DatabaseConfig selects the SQL driver backing the leveling store.
type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" envDefault:"sqlite3"`
	DSN    string `env:"DB_DSN" envDefault:"./data/leveling.db"`
}

// CooldownConfig selects and addresses the cooldown cache.
type CooldownConfig struct {
	Backend       string `env:"COOLDOWN_BACKEND" envDefault:"redis"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	MemcachedAddr string `env:"MEMCACHED_ADDR" envDefault:"localhost:11211"`
}

// Config 存储应用程序的配置
type Config struct {
	BotToken                 string        `env:"BOT_TOKEN"`
	LogChannelID             string        `env:"LOG_CHANNEL_ID"`
	DeveloperUserIDs         []string      `env:"DEVELOPER_USER_IDS" envSeparator:","`
	SuperAdminRoleIDs        []string      `env:"SUPER_ADMIN_ROLE_IDS" envSeparator:","`
	DisableCommandUnregister bool          `env:"DISABLE_COMMAND_UNREGISTER"`
	LevelingDefaultEnabled   bool          `env:"LEVELING_DEFAULT_ENABLED" envDefault:"true"`
	LevelingConfigPath       string        `env:"LEVELING_CONFIG" envDefault:"data/leveling_config.json"`
	AwardTimeout             time.Duration `env:"AWARD_TIMEOUT" envDefault:"5s"`
	TierCacheTTL             time.Duration `env:"TIER_CACHE_TTL" envDefault:"5m"`
	HTTPAddr                 string        `env:"HTTP_ADDR"`

	Database DatabaseConfig
	Cooldown CooldownConfig

	ServerConfigs map[string]ServerConfig
	Multipliers   map[string][]Multiplier
}

// LevelingSettings resolves the effective leveling settings for a guild.
func (c *Config) LevelingSettings(guildID string) LevelingSettings {
	var settings LevelingSettings
	if sc, ok := c.ServerConfigs[guildID]; ok {
		settings = sc.Leveling
	} else {
		settings = DefaultLevelingSettings()
		settings.Enabled = c.LevelingDefaultEnabled
	}
	settings.Multipliers = c.Multipliers[guildID]
	return settings
}
