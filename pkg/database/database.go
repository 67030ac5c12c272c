// Package database provides PostgreSQL connection management for batch runs.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Connect opens a connection pool with the given configuration and verifies
// it with a ping bounded by the configured connection timeout. The caller
// owns the returned pool and must close it when the run completes.
func Connect(ctx context.Context, cfg *Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnTimeoutDuration())
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connection established", "host", cfg.Host, "name", cfg.Name)
	return db, nil
}
