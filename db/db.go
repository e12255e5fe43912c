package db

import (
	"context"
	"fmt"

	"github.com/0levin/shawerma-bot/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool for the postgres order store backend.
func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return pool, nil
}
