package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/nischal-shetty2/DSAStats/internal/cache"
	"github.com/nischal-shetty2/DSAStats/internal/middleware"
	"github.com/nischal-shetty2/DSAStats/internal/model"
	"github.com/nischal-shetty2/DSAStats/internal/platform"
)

// DefaultCacheTTL is the window during which a fetch result — success or
// failure — is served from cache instead of hitting the platform again.
const DefaultCacheTTL = 5 * time.Minute

// cacheEnvelope wraps a fetch result so a failed fetch (nil stats) survives
// the round-trip through the cache. Serving cached failures for the full TTL
// shields upstreams from repeated failing calls.
type cacheEnvelope struct {
	Stats *model.PlatformStats `json:"stats"`
}

// Aggregator fans one user's connected usernames out across the platform
// adapters, through the cache, and collects whatever succeeded. One platform
// failing never blocks or cancels the others.
type Aggregator struct {
	registry  platform.Registry
	store     cache.Store
	ttl       time.Duration
	snapshots *SnapshotWorker // optional; receives totalSolved write-backs
}

func NewAggregator(registry platform.Registry, store cache.Store, ttl time.Duration, snapshots *SnapshotWorker) *Aggregator {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Aggregator{
		registry:  registry,
		store:     store,
		ttl:       ttl,
		snapshots: snapshots,
	}
}

// Aggregate returns a map holding an entry for every platform that has both
// a connected username and a successful fetch. Platforms that are not
// connected or whose fetch failed are simply absent.
//
// When userID is non-empty and at least one platform succeeded, the summed
// solved count is queued for a snapshot write-back; the request never waits
// on that write.
func (a *Aggregator) Aggregate(ctx context.Context, userID string, set model.UsernameSet) map[platform.Platform]*model.PlatformStats {
	middleware.Metrics.AggregationsTotal.Inc()

	results := make(map[platform.Platform]*model.PlatformStats)
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for key, username := range set.ByPlatform() {
		adapter, ok := a.registry.Lookup(key)
		if !ok {
			// UsernameSet fields map 1:1 onto registered platforms, so this
			// only happens if the registry was built without an adapter.
			middleware.Logger.Error().Str("platform", key).Msg("no adapter registered")
			continue
		}

		wg.Add(1)
		go func(key, username string, adapter platform.Adapter) {
			defer wg.Done()
			stats := a.getOrFetch(ctx, key, username, adapter)
			if stats == nil {
				return
			}
			mu.Lock()
			results[platform.Platform(key)] = stats
			mu.Unlock()
		}(key, username, adapter)
	}
	wg.Wait()

	if a.snapshots != nil && userID != "" && len(results) > 0 {
		a.snapshots.Enqueue(userID, TotalSolved(results))
	}

	return results
}

// getOrFetch serves a live cache entry if one exists, otherwise invokes the
// adapter and caches the outcome — including a failure — for the TTL window.
func (a *Aggregator) getOrFetch(ctx context.Context, platformKey, username string, adapter platform.Adapter) *model.PlatformStats {
	key := cache.Key(platformKey, username)

	raw, found, err := a.store.Get(ctx, key)
	if err != nil {
		middleware.Logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	if found {
		var env cacheEnvelope
		if err := json.Unmarshal(raw, &env); err == nil {
			middleware.Metrics.CacheHits.Inc()
			return env.Stats
		}
		// Corrupt entry: treat as a miss and re-fetch.
		middleware.Logger.Warn().Str("key", key).Msg("discarding corrupt cache entry")
	}
	middleware.Metrics.CacheMisses.Inc()

	start := time.Now()
	stats, fetchErr := adapter.Fetch(ctx, username)
	middleware.Metrics.UpstreamDuration.WithLabelValues(platformKey).Observe(time.Since(start).Seconds())
	if fetchErr != nil {
		middleware.Metrics.UpstreamFailures.WithLabelValues(platformKey).Inc()
		middleware.Logger.Warn().Err(fetchErr).
			Str("platform", platformKey).
			Str("username", username).
			Msg("platform fetch failed")
		stats = nil
	}

	if raw, err := json.Marshal(cacheEnvelope{Stats: stats}); err == nil {
		if err := a.store.Set(ctx, key, raw, a.ttl); err != nil {
			middleware.Logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}

	return stats
}

// TotalSolved sums the solved counts across an aggregation result.
func TotalSolved(results map[platform.Platform]*model.PlatformStats) int {
	total := 0
	for _, stats := range results {
		if stats != nil {
			total += stats.TotalProblemsSolved
		}
	}
	return total
}
