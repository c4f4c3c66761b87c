package leveling

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"level-bot/model"
)

// TierLister is the persistent source of tier tables.
type TierLister interface {
	ListTiers(ctx context.Context, guildID string) ([]model.Tier, error)
}

// TierCache keeps a sorted copy of each guild's tier table in memory.
// Slices handed out are shared and must be treated as read-only.
type TierCache struct {
	source TierLister
	cache  *cache.Cache
}

func NewTierCache(source TierLister, ttl time.Duration) *TierCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TierCache{
		source: source,
		cache:  cache.New(ttl, 2*ttl),
	}
}

// Tiers returns the guild's tier table sorted by threshold.
func (c *TierCache) Tiers(ctx context.Context, guildID string) ([]model.Tier, error) {
	if cached, ok := c.cache.Get(guildID); ok {
		return cached.([]model.Tier), nil
	}

	tiers, err := c.source.ListTiers(ctx, guildID)
	if err != nil {
		return nil, err
	}
	SortTiers(tiers)
	c.cache.Set(guildID, tiers, cache.DefaultExpiration)
	return tiers, nil
}

// Invalidate drops the cached table so the next read goes to the store.
func (c *TierCache) Invalidate(guildID string) {
	c.cache.Delete(guildID)
}

// Flush drops every cached table.
func (c *TierCache) Flush() {
	c.cache.Flush()
}
