package service

import (
	"context"
	"errors"

	"github.com/nischal-shetty2/DSAStats/internal/model"
	"github.com/nischal-shetty2/DSAStats/internal/repository"
)

// DefaultPageSize is the leaderboard page length.
const DefaultPageSize = 10

// ErrNotRanked means the user has no recorded snapshot yet.
var ErrNotRanked = errors.New("user has no leaderboard snapshot")

// LeaderboardService ranks users by their persisted total_solved snapshots.
// It never triggers live aggregation.
type LeaderboardService struct {
	repo     *repository.LeaderboardRepo
	pageSize int
}

func NewLeaderboardService(repo *repository.LeaderboardRepo) *LeaderboardService {
	return &LeaderboardService{repo: repo, pageSize: DefaultPageSize}
}

// Page returns the requested 1-based page with ranks assigned, plus the
// total page count.
func (s *LeaderboardService) Page(ctx context.Context, page int) ([]model.LeaderboardEntry, int, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.repo.CountRanked(ctx)
	if err != nil {
		return nil, 0, err
	}

	entries, err := s.repo.Page(ctx, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return nil, 0, err
	}

	assignRanks(entries, (page-1)*s.pageSize)
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	return entries, totalPages(total, s.pageSize), nil
}

// RankOf returns the 1-based rank of the given user. This is a full scan of
// the ordered snapshot list, run on demand for a single user per request.
func (s *LeaderboardService) RankOf(ctx context.Context, userID string) (int, error) {
	ranked, err := s.repo.Ranked(ctx)
	if err != nil {
		return 0, err
	}
	rank := rankIn(ranked, userID)
	if rank == 0 {
		return 0, ErrNotRanked
	}
	return rank, nil
}

// assignRanks numbers entries sequentially starting after offset.
func assignRanks(entries []model.LeaderboardEntry, offset int) {
	for i := range entries {
		entries[i].Rank = offset + i + 1
	}
}

// totalPages returns how many pages of the given size the total fills.
func totalPages(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// rankIn returns the 1-based position of userID in an already sorted entry
// list, or 0 when absent.
func rankIn(ranked []model.LeaderboardEntry, userID string) int {
	for i, entry := range ranked {
		if entry.UserID == userID {
			return i + 1
		}
	}
	return 0
}
