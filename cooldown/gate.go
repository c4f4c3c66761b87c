// Package cooldown implements the per-member award cooldown on top of an
// external cache. Every backend decides and records in one atomic step, so two
// concurrent events for the same member cannot both be granted.
package cooldown

import "time"

const keyPrefix = "leveling:cooldown:"

// Key is the cache key holding a member's last award time.
func Key(guildID, userID string) string {
	return keyPrefix + guildID + ":" + userID
}

// recordTTL is how long a record is worth keeping; past it the member is free anyway.
func recordTTL(minInterval time.Duration) time.Duration {
	ttl := 2 * minInterval
	if ttl < time.Second {
		ttl = time.Second
	}
	return ttl
}
