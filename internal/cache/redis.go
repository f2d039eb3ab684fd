package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nischal-shetty2/DSAStats/internal/middleware"
)

// Redis is the production Store backend. TTL handling is native: expired
// keys simply stop existing.
type Redis struct {
	rdb *redis.Client
}

// NewRedis connects to Redis. Returns nil (not an error) when no URL is
// configured or the connection fails, so the caller can fall back to the
// memory store.
func NewRedis(redisURL string) *Redis {
	if redisURL == "" {
		middleware.Logger.Info().Msg("redis: no URL configured, using in-memory cache")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		middleware.Logger.Warn().Err(err).Str("url", redisURL).Msg("redis: invalid URL, using in-memory cache")
		return nil
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn().Err(err).Msg("redis: connection failed, using in-memory cache")
		return nil
	}

	middleware.Logger.Info().Msg("redis: connected")
	return &Redis{rdb: rdb}
}

// Client returns the underlying Redis client for health checks. May be nil.
func (r *Redis) Client() *redis.Client {
	if r == nil {
		return nil
	}
	return r.rdb
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.rdb.Set(ctx, key, value, ttl).Err()
}

// Close shuts down the Redis connection.
func (r *Redis) Close() error {
	if r == nil || r.rdb == nil {
		return nil
	}
	return r.rdb.Close()
}
