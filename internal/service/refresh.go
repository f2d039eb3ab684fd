package service

import (
	"context"
	"time"

	"github.com/nischal-shetty2/DSAStats/internal/middleware"
	"github.com/nischal-shetty2/DSAStats/internal/repository"
)

// RefreshService re-aggregates every user with at least one connected
// platform so leaderboard snapshots stay current for users who haven't
// logged in recently. Scheduled via gocron from main.
type RefreshService struct {
	users      *repository.UserRepo
	aggregator *Aggregator
}

func NewRefreshService(users *repository.UserRepo, aggregator *Aggregator) *RefreshService {
	return &RefreshService{users: users, aggregator: aggregator}
}

// RefreshAll walks the connected users sequentially. Sequential on purpose:
// the fan-out happens per user inside Aggregate, and walking users one at a
// time keeps the background load on upstream APIs gentle.
func (s *RefreshService) RefreshAll(ctx context.Context) {
	start := time.Now()

	users, err := s.users.ListConnected(ctx)
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("refresh: listing users failed")
		return
	}

	refreshed := 0
	for _, u := range users {
		if ctx.Err() != nil {
			middleware.Logger.Info().Msg("refresh: cancelled")
			return
		}
		results := s.aggregator.Aggregate(ctx, u.ID, u.Usernames)
		if len(results) > 0 {
			refreshed++
		}
	}

	middleware.Logger.Info().
		Int("users", len(users)).
		Int("refreshed", refreshed).
		Dur("took", time.Since(start)).
		Msg("refresh: snapshot pass complete")
}
