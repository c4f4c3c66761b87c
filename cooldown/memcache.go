package cooldown

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcacheClient is the subset of *memcache.Client the gate uses.
type MemcacheClient interface {
	Get(key string) (*memcache.Item, error)
	Add(item *memcache.Item) error
	CompareAndSwap(item *memcache.Item) error
}

// MemcacheGate stores cooldowns in memcached. A missing record is created with
// Add and an existing one replaced with CompareAndSwap, so a racing writer
// makes this call lose rather than double-grant.
type MemcacheGate struct {
	client MemcacheClient
	now    func() time.Time
}

func NewMemcacheGate(client MemcacheClient) *MemcacheGate {
	return &MemcacheGate{client: client, now: time.Now}
}

func NewMemcacheClient(addr string) *memcache.Client {
	return memcache.New(addr)
}

func (g *MemcacheGate) TryConsume(ctx context.Context, guildID, userID string, minInterval time.Duration) (bool, error) {
	key := Key(guildID, userID)
	now := g.now().UnixMilli()
	value := []byte(strconv.FormatInt(now, 10))
	expiration := int32(recordTTL(minInterval) / time.Second)

	item, err := g.client.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		err = g.client.Add(&memcache.Item{Key: key, Value: value, Expiration: expiration})
		if errors.Is(err, memcache.ErrNotStored) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("memcache add %s: %w", key, err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("memcache get %s: %w", key, err)
	}

	if last, err := strconv.ParseInt(string(item.Value), 10, 64); err == nil && now-last < minInterval.Milliseconds() {
		return false, nil
	}

	item.Value = value
	item.Expiration = expiration
	if err := g.client.CompareAndSwap(item); err != nil {
		if errors.Is(err, memcache.ErrCASConflict) || errors.Is(err, memcache.ErrNotStored) {
			return false, nil
		}
		return false, fmt.Errorf("memcache cas %s: %w", key, err)
	}
	return true, nil
}
