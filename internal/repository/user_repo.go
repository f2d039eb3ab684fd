package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nischal-shetty2/DSAStats/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `
	id, name, email, password_hash, COALESCE(pfp, ''),
	COALESCE(leetcode_username, ''), COALESCE(gfg_username, ''),
	COALESCE(codeforces_username, ''), COALESCE(interviewbit_username, ''),
	total_solved, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Pfp,
		&u.Usernames.LeetCode, &u.Usernames.GFG,
		&u.Usernames.Codeforces, &u.Usernames.InterviewBit,
		&u.TotalSolved, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new account. The caller supplies the id and the already
// hashed password.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)`,
		u.ID, u.Name, u.Email, u.PasswordHash)
	return err
}

// FindByID returns a single user by id.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// FindByEmail returns a single user by email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// usernameColumn maps platform identifiers to their schema columns. Values
// here are the only strings ever interpolated into the update statement.
var usernameColumn = map[string]string{
	"leetcode":     "leetcode_username",
	"gfg":          "gfg_username",
	"codeforces":   "codeforces_username",
	"interviewbit": "interviewbit_username",
}

// SetUsername stores a verified handle, or clears it when username is empty.
// Cleared entries are stored as NULL so the read boundary's COALESCE keeps
// the "non-empty string or absent" invariant.
func (r *UserRepo) SetUsername(ctx context.Context, userID, platform, username string) error {
	column, ok := usernameColumn[platform]
	if !ok {
		return pgx.ErrNoRows
	}
	var value *string
	if username != "" {
		value = &username
	}
	_, err := r.pool.Exec(ctx, `UPDATE users SET `+column+` = $1 WHERE id = $2`, value, userID)
	return err
}

// UpdateTotalSolved writes back the denormalized leaderboard snapshot.
func (r *UserRepo) UpdateTotalSolved(ctx context.Context, userID string, totalSolved int) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET total_solved = $1 WHERE id = $2`, totalSolved, userID)
	return err
}

// ListConnected returns every user with at least one connected platform,
// for the periodic snapshot refresh.
func (r *UserRepo) ListConnected(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE leetcode_username IS NOT NULL
		   OR gfg_username IS NOT NULL
		   OR codeforces_username IS NOT NULL
		   OR interviewbit_username IS NOT NULL
		ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
