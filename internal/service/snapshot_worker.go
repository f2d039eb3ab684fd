package service

import (
	"context"
	"sync"
	"time"

	"github.com/nischal-shetty2/DSAStats/internal/middleware"
	"github.com/nischal-shetty2/DSAStats/internal/repository"
)

// SnapshotWorker batches total_solved write-backs. Aggregations enqueue the
// freshly computed sum and continue; the worker drains the pending map on a
// ticker and issues one UPDATE per user. If the same user aggregates five
// times inside a window, only the latest value is written.
type SnapshotWorker struct {
	users   *repository.UserRepo
	flushMs time.Duration

	mu      sync.Mutex
	pending map[string]int // userID -> latest totalSolved
}

func NewSnapshotWorker(users *repository.UserRepo) *SnapshotWorker {
	return &SnapshotWorker{
		users:   users,
		flushMs: 5 * time.Second,
		pending: make(map[string]int),
	}
}

// Enqueue records a snapshot value for the next flush. Never blocks.
func (w *SnapshotWorker) Enqueue(userID string, totalSolved int) {
	w.mu.Lock()
	w.pending[userID] = totalSolved
	w.mu.Unlock()
}

// Start runs the flush loop until ctx is cancelled, then performs a final
// flush so queued snapshots aren't lost on shutdown.
func (w *SnapshotWorker) Start(ctx context.Context) {
	middleware.Logger.Info().Dur("flush_window", w.flushMs).Msg("snapshot-worker: starting")

	ticker := time.NewTicker(w.flushMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			w.flush(context.Background())
			middleware.Logger.Info().Msg("snapshot-worker: stopping")
			return
		}
	}
}

// flush drains the pending map and persists each entry.
func (w *SnapshotWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	batch := w.pending
	w.pending = make(map[string]int)
	w.mu.Unlock()

	written := 0
	for userID, totalSolved := range batch {
		if err := w.users.UpdateTotalSolved(ctx, userID, totalSolved); err != nil {
			middleware.Logger.Error().Err(err).Str("user_id", userID).Msg("snapshot-worker: write failed")
			continue
		}
		written++
	}

	if written > 0 {
		middleware.Logger.Debug().Int("written", written).Int("batched", len(batch)).
			Msg("snapshot-worker: batch complete")
	}
}
