package ports

import (
	"context"

	"slotcorr/domain/core"
	"slotcorr/models"
)

// RunRepository persists completed estimation runs
type RunRepository interface {
	// SaveRun stores a run, replacing any run with the same ID
	SaveRun(ctx context.Context, run *models.AnalysisRun) error

	// GetRun retrieves a run by ID; core.ErrRunNotFound when absent
	GetRun(ctx context.Context, id core.RunID) (*models.AnalysisRun, error)

	// ListRuns returns the most recent runs, newest first
	ListRuns(ctx context.Context, limit int) ([]models.AnalysisRun, error)
}
