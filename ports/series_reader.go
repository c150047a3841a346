package ports

import (
	"context"

	"slotcorr/domain/series"
)

// SeriesReader loads a scalar time series from an external source
// (CSV/XLSX file path). Implementations validate through series.New.
type SeriesReader interface {
	ReadSeries(ctx context.Context, source string) (*series.Series, error)
}
