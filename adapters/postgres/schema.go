package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// EnsureSchema creates the run table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS correntropy_runs (
			id TEXT PRIMARY KEY,
			series_key TEXT NOT NULL,
			source TEXT,
			samples INTEGER NOT NULL,
			config JSONB NOT NULL,
			profile JSONB NOT NULL,
			estimate JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			runtime_ms BIGINT NOT NULL DEFAULT 0
		)`)
	if err != nil {
		return fmt.Errorf("failed to create correntropy_runs table: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_correntropy_runs_series_key
		ON correntropy_runs (series_key, created_at DESC)`)
	if err != nil {
		return fmt.Errorf("failed to create run index: %w", err)
	}
	return nil
}
