package app

import (
	"context"
	"log"
	"time"

	"slotcorr/adapters/stats/correntropy"
	"slotcorr/domain/core"
	"slotcorr/domain/series"
	"slotcorr/internal/profiling"
	"slotcorr/models"
	"slotcorr/ports"
)

// AnalysisService orchestrates one estimation run: validate the series,
// profile its cadence, estimate the slotted correlogram and persist the
// result when a repository is configured.
type AnalysisService struct {
	reader ports.SeriesReader
	runs   ports.RunRepository
}

// AnalysisRequest defines the inputs of a run. Either Times/Values or
// Source must be set; Config defaults to the standard slotting policy.
type AnalysisRequest struct {
	SeriesKey core.SeriesKey      `json:"series_key"`
	Source    string              `json:"source,omitempty"`
	Times     []float64           `json:"times,omitempty"`
	Values    []float64           `json:"values,omitempty"`
	Config    *correntropy.Config `json:"config,omitempty"`
}

// NewAnalysisService creates an analysis service. Both dependencies are
// optional: a nil reader disables file sources, a nil repository disables
// persistence.
func NewAnalysisService(reader ports.SeriesReader, runs ports.RunRepository) *AnalysisService {
	return &AnalysisService{reader: reader, runs: runs}
}

// Run executes an estimation run end to end.
func (s *AnalysisService) Run(ctx context.Context, req AnalysisRequest) (*models.AnalysisRun, error) {
	start := time.Now()

	input, err := s.loadSeries(ctx, req)
	if err != nil {
		return nil, err
	}

	cfg := correntropy.DefaultConfig()
	if req.Config != nil {
		cfg = *req.Config
	}
	estimator, err := correntropy.New(cfg)
	if err != nil {
		return nil, err
	}

	profile, err := profiling.ProfileSampling(input)
	if err != nil {
		return nil, err
	}

	estimate, err := estimator.EstimateSeries(ctx, input)
	if err != nil {
		return nil, err
	}

	key := req.SeriesKey
	if key == "" {
		key = core.SeriesKey(core.NewID())
	}

	run := &models.AnalysisRun{
		ID:        core.NewRunID(),
		SeriesKey: key,
		Source:    req.Source,
		Samples:   input.Len(),
		Config:    cfg,
		Profile:   profile,
		Estimate:  estimate,
		CreatedAt: core.Now(),
		RuntimeMs: time.Since(start).Milliseconds(),
	}

	if s.runs != nil {
		if err := s.runs.SaveRun(ctx, run); err != nil {
			return nil, err
		}
	}

	log.Printf("[AnalysisService] run %s: %d samples, %d/%d slots defined, sigma=%.4g (%dms)",
		run.ID, run.Samples, len(estimate.Lags), estimate.CandidateSlots, estimate.Bandwidth, run.RuntimeMs)
	return run, nil
}

// GetRun retrieves a stored run by ID.
func (s *AnalysisService) GetRun(ctx context.Context, id core.RunID) (*models.AnalysisRun, error) {
	if s.runs == nil {
		return nil, core.ErrRunNotFound
	}
	return s.runs.GetRun(ctx, id)
}

// ListRuns lists the most recent stored runs.
func (s *AnalysisService) ListRuns(ctx context.Context, limit int) ([]models.AnalysisRun, error) {
	if s.runs == nil {
		return nil, nil
	}
	return s.runs.ListRuns(ctx, limit)
}

func (s *AnalysisService) loadSeries(ctx context.Context, req AnalysisRequest) (*series.Series, error) {
	if req.Source != "" {
		if s.reader == nil {
			return nil, core.NewConfigError("source", "no series reader configured")
		}
		return s.reader.ReadSeries(ctx, req.Source)
	}
	return series.New(req.Times, req.Values)
}
