package profiling

import (
	"sort"

	"slotcorr/domain/series"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// SamplingProfile describes the cadence of an irregularly sampled series:
// how uneven the inter-sample intervals are and how well the first part of
// the lag axis will be supported by pairs.
type SamplingProfile struct {
	Samples        int     `json:"samples"`
	Span           float64 `json:"span"`
	MeanInterval   float64 `json:"mean_interval"`
	MedianInterval float64 `json:"median_interval"`
	MinInterval    float64 `json:"min_interval"`
	MaxInterval    float64 `json:"max_interval"`
	// JitterCoefficient is the coefficient of variation of the intervals:
	// 0 for a perfectly regular grid, growing with sampling irregularity.
	JitterCoefficient float64 `json:"jitter_coefficient"`
	// DuplicateTimes counts samples sharing a timestamp with a predecessor.
	DuplicateTimes int `json:"duplicate_times"`
}

// ProfileSampling computes the cadence profile of a series.
func ProfileSampling(s *series.Series) (SamplingProfile, error) {
	chron := s.Chronological()
	times := chron.Times()

	intervals := make([]float64, 0, len(times)-1)
	duplicates := 0
	for i := 1; i < len(times); i++ {
		d := times[i] - times[i-1]
		if d == 0 {
			duplicates++
		}
		intervals = append(intervals, d)
	}

	mean, err := stats.Mean(intervals)
	if err != nil {
		return SamplingProfile{}, err
	}
	minI, err := stats.Min(intervals)
	if err != nil {
		return SamplingProfile{}, err
	}
	maxI, err := stats.Max(intervals)
	if err != nil {
		return SamplingProfile{}, err
	}

	// Quantile requires sorted input; intervals are not ordered by size.
	sorted := append([]float64(nil), intervals...)
	sort.Float64s(sorted)
	median := stat.Quantile(0.5, stat.Empirical, sorted, nil)

	jitter := 0.0
	if mean > 0 {
		sd, err := stats.StandardDeviationPopulation(intervals)
		if err != nil {
			return SamplingProfile{}, err
		}
		jitter = sd / mean
	}

	return SamplingProfile{
		Samples:           s.Len(),
		Span:              chron.Span(),
		MeanInterval:      mean,
		MedianInterval:    median,
		MinInterval:       minI,
		MaxInterval:       maxI,
		JitterCoefficient: jitter,
		DuplicateTimes:    duplicates,
	}, nil
}

// IsRegular reports whether the cadence is close enough to a uniform grid
// that a classical fixed-lag ACF would serve as well as slotting.
func (p SamplingProfile) IsRegular() bool {
	return p.JitterCoefficient < 0.05 && p.DuplicateTimes == 0
}
