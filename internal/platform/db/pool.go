package db

import (
	"context"
	"fmt"
	"fxconvert/internal/config"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const healthCheckPeriod = 30 * time.Second

// Connect opens the pool used by every repository and makes sure the server answers.
func Connect(ctx context.Context, cfg config.DbServer) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.GetConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to parse db config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.HealthCheckPeriod = healthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping db %s:%s: %w", cfg.Host, cfg.Port, err)
	}
	return pool, nil
}
