// Package db opens the Postgres connection shared by the repositories.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// Open connects a pgx pool and exposes it as a database/sql handle for the
// squirrel-built repositories and goose. Closing the *sql.DB does not close
// the pool; callers close both.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, *sql.DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, stdlib.OpenDBFromPool(pool), nil
}
