package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// tryConsumeScript compares and sets the last award time in one server-side step.
// KEYS[1] record key; ARGV[1] now (ms); ARGV[2] interval (ms); ARGV[3] ttl (ms).
var tryConsumeScript = redis.NewScript(`
local last = redis.call('GET', KEYS[1])
local now = tonumber(ARGV[1])
if last and (now - tonumber(last)) < tonumber(ARGV[2]) then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

// RedisGate stores cooldowns in Redis.
type RedisGate struct {
	rdb redis.Scripter
	now func() time.Time
}

func NewRedisGate(rdb redis.Scripter) *RedisGate {
	return &RedisGate{rdb: rdb, now: time.Now}
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (g *RedisGate) TryConsume(ctx context.Context, guildID, userID string, minInterval time.Duration) (bool, error) {
	key := Key(guildID, userID)
	granted, err := tryConsumeScript.Run(ctx, g.rdb, []string{key},
		g.now().UnixMilli(),
		minInterval.Milliseconds(),
		recordTTL(minInterval).Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("redis cooldown check for %s: %w", key, err)
	}
	return granted == 1, nil
}
