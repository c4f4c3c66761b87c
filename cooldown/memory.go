package cooldown

import (
	"context"
	"sync"
	"time"
)

type memoryRecord struct {
	last    time.Time
	expires time.Time
}

// MemoryGate keeps cooldowns in process memory. It suits a single bot process
// and tests; records are lost on restart.
type MemoryGate struct {
	mu      sync.Mutex
	records map[string]memoryRecord
	now     func() time.Time
}

func NewMemoryGate() *MemoryGate {
	return &MemoryGate{
		records: make(map[string]memoryRecord),
		now:     time.Now,
	}
}

// TryConsume grants and records now when the member's last award is at least minInterval old.
func (g *MemoryGate) TryConsume(ctx context.Context, guildID, userID string, minInterval time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := Key(guildID, userID)
	now := g.now()
	if rec, ok := g.records[key]; ok && now.Sub(rec.last) < minInterval {
		return false, nil
	}
	g.records[key] = memoryRecord{last: now, expires: now.Add(recordTTL(minInterval))}
	return true, nil
}

// Sweep drops records past the same TTL the cache backends would give them
// and returns how many were removed.
func (g *MemoryGate) Sweep() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	removed := 0
	now := g.now()
	for key, rec := range g.records {
		if now.After(rec.expires) {
			delete(g.records, key)
			removed++
		}
	}
	return removed
}

// Len reports how many records are held.
func (g *MemoryGate) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.records)
}
