package models

import (
	"slotcorr/adapters/stats/correntropy"
	"slotcorr/domain/core"
	"slotcorr/internal/profiling"
)

// AnalysisRun is one complete estimation over one series: the slotting
// policy used, the cadence profile of the input and the resulting
// correlogram. Runs are immutable once created.
type AnalysisRun struct {
	ID        core.RunID                `json:"id" db:"id"`
	SeriesKey core.SeriesKey            `json:"series_key" db:"series_key"`
	Source    string                    `json:"source,omitempty" db:"source"`
	Samples   int                       `json:"samples" db:"samples"`
	Config    correntropy.Config        `json:"config"`
	Profile   profiling.SamplingProfile `json:"profile"`
	Estimate  *correntropy.Estimate     `json:"estimate"`
	CreatedAt core.Timestamp            `json:"created_at" db:"created_at"`
	RuntimeMs int64                     `json:"runtime_ms" db:"runtime_ms"`
}
