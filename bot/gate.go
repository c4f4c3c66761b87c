package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	"level-bot/cooldown"
	"level-bot/leveling"
	"level-bot/model"
)

// NewCooldownGate builds the configured cooldown backend and a function that releases it.
func NewCooldownGate(cfg model.CooldownConfig) (leveling.CooldownGate, func() error, error) {
	switch cfg.Backend {
	case "redis":
		rdb := cooldown.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}
		log.Printf("[Cooldown] Using redis at %s", cfg.RedisAddr)
		return cooldown.NewRedisGate(rdb), rdb.Close, nil
	case "memcache":
		mc := cooldown.NewMemcacheClient(cfg.MemcachedAddr)
		if err := mc.Ping(); err != nil {
			return nil, nil, fmt.Errorf("failed to reach memcached at %s: %w", cfg.MemcachedAddr, err)
		}
		log.Printf("[Cooldown] Using memcached at %s", cfg.MemcachedAddr)
		return cooldown.NewMemcacheGate(mc), mc.Close, nil
	case "memory":
		log.Println("[Cooldown] Using in-process memory gate; cooldowns are not shared between instances")
		return cooldown.NewMemoryGate(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown cooldown backend %q", cfg.Backend)
	}
}
