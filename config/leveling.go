package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"level-bot/model"
)

// LoadLeveling reads the per-guild settings file. A missing file yields no guild entries.
//
// Expected layout:
//
//	{"guilds": {"<guild id>": {"name": "...", "admin_role_ids": [], "leveling": {"cooldown_ms": 6000}}}}
func LoadLeveling(path string) (map[string]model.ServerConfig, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: Config file not found at %s, skipping.", path)
		return make(map[string]model.ServerConfig), nil
	}

	v := newLevelingViper(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read leveling config %s: %w", path, err)
	}
	return decodeGuilds(v)
}

// WatchLeveling re-reads the settings file whenever it changes on disk.
// onChange only receives configurations that parsed successfully.
func WatchLeveling(path string, onChange func(map[string]model.ServerConfig)) error {
	v := newLevelingViper(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read leveling config %s: %w", path, err)
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		guilds, err := decodeGuilds(v)
		if err != nil {
			log.Printf("[Config] Ignoring invalid leveling config change (%s): %v", e.Name, err)
			return
		}
		log.Printf("[Config] Leveling config reloaded from %s (%d guilds)", e.Name, len(guilds))
		onChange(guilds)
	})
	v.WatchConfig()
	return nil
}

func newLevelingViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	return v
}

func decodeGuilds(v *viper.Viper) (map[string]model.ServerConfig, error) {
	raw := make(map[string]model.ServerConfig)
	if err := v.UnmarshalKey("guilds", &raw); err != nil {
		return nil, fmt.Errorf("failed to decode guilds: %w", err)
	}

	guilds := make(map[string]model.ServerConfig, len(raw))
	for guildID, sc := range raw {
		sc.GuildID = guildID
		prefix := "guilds." + guildID + ".leveling."
		// Guilds listed in the file are enabled unless they say otherwise.
		if !v.IsSet(prefix + "enabled") {
			sc.Leveling.Enabled = true
		}
		sc.Leveling = sc.Leveling.WithDefaults(func(field string) bool {
			return v.IsSet(prefix + field)
		})
		if err := sc.Leveling.Validate(); err != nil {
			return nil, fmt.Errorf("guild %s: %w", guildID, err)
		}
		guilds[guildID] = sc
	}
	return guilds, nil
}
