package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const usersDDL = `
CREATE TABLE IF NOT EXISTS users (
	id                    UUID PRIMARY KEY,
	name                  VARCHAR(64)  NOT NULL,
	email                 VARCHAR(128) NOT NULL UNIQUE,
	password_hash         TEXT         NOT NULL,
	pfp                   TEXT,
	leetcode_username     VARCHAR(64),
	gfg_username          VARCHAR(64),
	codeforces_username   VARCHAR(64),
	interviewbit_username VARCHAR(64),
	total_solved          INTEGER,
	created_at            TIMESTAMPTZ  NOT NULL DEFAULT NOW()
)`

// EnsureSchema creates the tables this service owns if they don't exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, usersDDL)
	return err
}
