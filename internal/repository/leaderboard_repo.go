package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nischal-shetty2/DSAStats/internal/model"
)

// LeaderboardRepo reads the denormalized total_solved snapshots. Ordering is
// always total_solved DESC with id ASC as the stable tiebreak, so pagination
// is deterministic.
type LeaderboardRepo struct {
	pool *pgxpool.Pool
}

func NewLeaderboardRepo(pool *pgxpool.Pool) *LeaderboardRepo {
	return &LeaderboardRepo{pool: pool}
}

// CountRanked returns how many users have a recorded snapshot.
func (r *LeaderboardRepo) CountRanked(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE total_solved IS NOT NULL`).Scan(&count)
	return count, err
}

// Page returns one page of ranked users, without rank numbers (the service
// assigns those from the offset).
func (r *LeaderboardRepo) Page(ctx context.Context, offset, limit int) ([]model.LeaderboardEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, COALESCE(pfp, ''), total_solved
		FROM users
		WHERE total_solved IS NOT NULL
		ORDER BY total_solved DESC, id ASC
		OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.Pfp, &e.TotalSolved); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Ranked returns the full ordered snapshot list. RankOf scans this; the
// O(n) cost is acceptable because it runs once per request for one user.
func (r *LeaderboardRepo) Ranked(ctx context.Context) ([]model.LeaderboardEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, COALESCE(pfp, ''), total_solved
		FROM users
		WHERE total_solved IS NOT NULL
		ORDER BY total_solved DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.Pfp, &e.TotalSolved); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
