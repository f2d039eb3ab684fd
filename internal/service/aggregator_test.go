package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nischal-shetty2/DSAStats/internal/cache"
	"github.com/nischal-shetty2/DSAStats/internal/model"
	"github.com/nischal-shetty2/DSAStats/internal/platform"
)

// fakeClock drives cache expiry without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fakeAdapter returns a canned result and counts invocations.
type fakeAdapter struct {
	stats *model.PlatformStats
	err   error
	calls atomic.Int64
}

func (f *fakeAdapter) Fetch(ctx context.Context, username string) (*model.PlatformStats, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.stats, nil
}

func solvedStats(n int) *model.PlatformStats {
	return &model.PlatformStats{TotalProblemsSolved: n}
}

func newTestAggregator(registry platform.Registry, clock *fakeClock, ttl time.Duration) *Aggregator {
	return NewAggregator(registry, cache.NewMemory(clock.Now), ttl, nil)
}

func TestAggregate_OnlyConnectedPlatforms(t *testing.T) {
	lc := &fakeAdapter{stats: solvedStats(100)}
	cf := &fakeAdapter{stats: solvedStats(50)}
	registry := platform.Registry{platform.LeetCode: lc, platform.Codeforces: cf}
	agg := newTestAggregator(registry, newFakeClock(), time.Minute)

	results := agg.Aggregate(context.Background(), "", model.UsernameSet{LeetCode: "alice"})

	if len(results) != 1 {
		t.Fatalf("results has %d entries, want 1", len(results))
	}
	if results[platform.LeetCode].TotalProblemsSolved != 100 {
		t.Errorf("leetcode solved = %d, want 100", results[platform.LeetCode].TotalProblemsSolved)
	}
	if cf.calls.Load() != 0 {
		t.Errorf("codeforces adapter called %d times for unconnected platform", cf.calls.Load())
	}
}

func TestAggregate_PartialFailureIsolated(t *testing.T) {
	lc := &fakeAdapter{stats: solvedStats(100)}
	gfg := &fakeAdapter{err: errors.New("upstream down")}
	registry := platform.Registry{platform.LeetCode: lc, platform.GFG: gfg}
	agg := newTestAggregator(registry, newFakeClock(), time.Minute)

	results := agg.Aggregate(context.Background(), "", model.UsernameSet{LeetCode: "alice", GFG: "alice_g"})

	if len(results) != 1 {
		t.Fatalf("results has %d entries, want 1", len(results))
	}
	if _, ok := results[platform.GFG]; ok {
		t.Error("failed platform must be absent from results")
	}
	if results[platform.LeetCode].TotalProblemsSolved != 100 {
		t.Errorf("healthy platform result lost: %+v", results[platform.LeetCode])
	}
}

func TestAggregate_SecondCallServedFromCache(t *testing.T) {
	lc := &fakeAdapter{stats: solvedStats(100)}
	registry := platform.Registry{platform.LeetCode: lc}
	agg := newTestAggregator(registry, newFakeClock(), time.Minute)
	set := model.UsernameSet{LeetCode: "alice"}

	agg.Aggregate(context.Background(), "", set)
	results := agg.Aggregate(context.Background(), "", set)

	if lc.calls.Load() != 1 {
		t.Errorf("adapter called %d times within TTL, want 1", lc.calls.Load())
	}
	if results[platform.LeetCode].TotalProblemsSolved != 100 {
		t.Errorf("cached result = %+v, want 100 solved", results[platform.LeetCode])
	}
}

func TestAggregate_ExpiryTriggersRefetch(t *testing.T) {
	clock := newFakeClock()
	lc := &fakeAdapter{stats: solvedStats(100)}
	registry := platform.Registry{platform.LeetCode: lc}
	agg := newTestAggregator(registry, clock, time.Minute)
	set := model.UsernameSet{LeetCode: "alice"}

	agg.Aggregate(context.Background(), "", set)
	clock.Advance(time.Minute + time.Second)
	lc.stats = solvedStats(105)
	results := agg.Aggregate(context.Background(), "", set)

	if lc.calls.Load() != 2 {
		t.Errorf("adapter called %d times after expiry, want 2", lc.calls.Load())
	}
	if results[platform.LeetCode].TotalProblemsSolved != 105 {
		t.Errorf("solved = %d, want refreshed value 105", results[platform.LeetCode].TotalProblemsSolved)
	}
}

func TestAggregate_FailureCachedForTTL(t *testing.T) {
	clock := newFakeClock()
	lc := &fakeAdapter{err: errors.New("upstream down")}
	registry := platform.Registry{platform.LeetCode: lc}
	agg := newTestAggregator(registry, clock, time.Minute)
	set := model.UsernameSet{LeetCode: "alice"}

	agg.Aggregate(context.Background(), "", set)
	agg.Aggregate(context.Background(), "", set)

	if lc.calls.Load() != 1 {
		t.Errorf("adapter called %d times, want 1: failures must be cached too", lc.calls.Load())
	}

	// Upstream recovers; the cached failure still holds until expiry.
	lc.err = nil
	lc.stats = solvedStats(10)
	results := agg.Aggregate(context.Background(), "", set)
	if len(results) != 0 {
		t.Errorf("cached failure should still be served, got %+v", results)
	}

	clock.Advance(time.Minute + time.Second)
	results = agg.Aggregate(context.Background(), "", set)
	if results[platform.LeetCode] == nil || results[platform.LeetCode].TotalProblemsSolved != 10 {
		t.Errorf("post-expiry refetch should succeed, got %+v", results[platform.LeetCode])
	}
}

func TestAggregate_SnapshotEnqueuedOnSuccess(t *testing.T) {
	registry := platform.Registry{
		platform.LeetCode:   &fakeAdapter{stats: solvedStats(100)},
		platform.Codeforces: &fakeAdapter{stats: solvedStats(40)},
	}
	worker := NewSnapshotWorker(nil)
	agg := NewAggregator(registry, cache.NewMemory(newFakeClock().Now), time.Minute, worker)

	agg.Aggregate(context.Background(), "user-1", model.UsernameSet{LeetCode: "a", Codeforces: "b"})

	worker.mu.Lock()
	got := worker.pending["user-1"]
	worker.mu.Unlock()
	if got != 140 {
		t.Errorf("pending snapshot = %d, want 140", got)
	}
}

func TestAggregate_NoSnapshotForAnonymousOrEmpty(t *testing.T) {
	registry := platform.Registry{platform.LeetCode: &fakeAdapter{err: errors.New("down")}}
	worker := NewSnapshotWorker(nil)
	agg := NewAggregator(registry, cache.NewMemory(newFakeClock().Now), time.Minute, worker)

	// All platforms failed: nothing to snapshot even for a known user.
	agg.Aggregate(context.Background(), "user-1", model.UsernameSet{LeetCode: "a"})

	worker.mu.Lock()
	n := len(worker.pending)
	worker.mu.Unlock()
	if n != 0 {
		t.Errorf("pending has %d entries, want 0", n)
	}
}

func TestTotalSolved(t *testing.T) {
	results := map[platform.Platform]*model.PlatformStats{
		platform.LeetCode:   solvedStats(100),
		platform.GFG:        solvedStats(25),
		platform.Codeforces: nil,
	}
	if got := TotalSolved(results); got != 125 {
		t.Errorf("TotalSolved = %d, want 125", got)
	}
	if got := TotalSolved(nil); got != 0 {
		t.Errorf("TotalSolved(nil) = %d, want 0", got)
	}
}
