package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"slotcorr/adapters/stats/correntropy"
	"slotcorr/domain/core"
	"slotcorr/internal/profiling"
	"slotcorr/models"
	"slotcorr/ports"

	"github.com/jmoiron/sqlx"
)

// RunRepositoryImpl implements ports.RunRepository for PostgreSQL
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &RunRepositoryImpl{db: db}
}

// runRow mirrors the correntropy_runs table; the config, profile and
// estimate are stored as JSONB.
type runRow struct {
	ID        string         `db:"id"`
	SeriesKey string         `db:"series_key"`
	Source    sql.NullString `db:"source"`
	Samples   int            `db:"samples"`
	Config    []byte         `db:"config"`
	Profile   []byte         `db:"profile"`
	Estimate  []byte         `db:"estimate"`
	CreatedAt sql.NullTime   `db:"created_at"`
	RuntimeMs int64          `db:"runtime_ms"`
}

// SaveRun stores a run, replacing any run with the same ID
func (r *RunRepositoryImpl) SaveRun(ctx context.Context, run *models.AnalysisRun) error {
	configJSON, err := json.Marshal(run.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal run config: %w", err)
	}
	profileJSON, err := json.Marshal(run.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal sampling profile: %w", err)
	}
	estimateJSON, err := json.Marshal(run.Estimate)
	if err != nil {
		return fmt.Errorf("failed to marshal estimate: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO correntropy_runs (
			id, series_key, source, samples, config, profile, estimate,
			created_at, runtime_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			series_key = EXCLUDED.series_key,
			source = EXCLUDED.source,
			samples = EXCLUDED.samples,
			config = EXCLUDED.config,
			profile = EXCLUDED.profile,
			estimate = EXCLUDED.estimate,
			runtime_ms = EXCLUDED.runtime_ms`,
		run.ID.String(), run.SeriesKey.String(), run.Source, run.Samples,
		configJSON, profileJSON, estimateJSON, run.CreatedAt.Time(), run.RuntimeMs)
	return err
}

// GetRun retrieves a run by ID
func (r *RunRepositoryImpl) GetRun(ctx context.Context, id core.RunID) (*models.AnalysisRun, error) {
	var row runRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, series_key, source, samples, config, profile, estimate,
		       created_at, runtime_ms
		FROM correntropy_runs WHERE id = $1`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return row.toModel()
}

// ListRuns returns the most recent runs, newest first
func (r *RunRepositoryImpl) ListRuns(ctx context.Context, limit int) ([]models.AnalysisRun, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []runRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, series_key, source, samples, config, profile, estimate,
		       created_at, runtime_ms
		FROM correntropy_runs
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}

	runs := make([]models.AnalysisRun, 0, len(rows))
	for _, row := range rows {
		run, err := row.toModel()
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, nil
}

func (row runRow) toModel() (*models.AnalysisRun, error) {
	run := &models.AnalysisRun{
		ID:        core.RunID(row.ID),
		SeriesKey: core.SeriesKey(row.SeriesKey),
		Samples:   row.Samples,
		RuntimeMs: row.RuntimeMs,
	}
	if row.Source.Valid {
		run.Source = row.Source.String
	}
	if row.CreatedAt.Valid {
		run.CreatedAt = core.NewTimestamp(row.CreatedAt.Time)
	}

	if err := json.Unmarshal(row.Config, &run.Config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run config: %w", err)
	}
	run.Profile = profiling.SamplingProfile{}
	if err := json.Unmarshal(row.Profile, &run.Profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sampling profile: %w", err)
	}
	run.Estimate = &correntropy.Estimate{}
	if err := json.Unmarshal(row.Estimate, run.Estimate); err != nil {
		return nil, fmt.Errorf("failed to unmarshal estimate: %w", err)
	}
	return run, nil
}
