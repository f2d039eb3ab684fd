package cache

import (
	"context"
	"fmt"
	"time"
)

// Store is a TTL-aware byte cache. Get reports a miss with found=false;
// expired entries are misses. A Set fully replaces any prior value for the
// key, so readers never observe a partial entry.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Key builds the canonical cache key for one platform/username pair.
func Key(platform, username string) string {
	return fmt.Sprintf("%s:%s", platform, username)
}

// New returns the Redis-backed store when redisURL is set and reachable,
// otherwise the in-memory store. Unlike a no-op fallback, the memory store
// keeps cached-failure semantics intact when Redis is absent.
func New(redisURL string) Store {
	if store := NewRedis(redisURL); store != nil {
		return store
	}
	return NewMemory(time.Now)
}
