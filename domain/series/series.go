package series

import (
	"math"
	"sort"

	"slotcorr/domain/core"

	"github.com/montanaflynn/stats"
)

// Sample is one timestamped scalar observation.
type Sample struct {
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
}

// Series is an immutable scalar time series. Times carry no unit; they only
// need to be totally ordered real numbers (seconds, days, MJD, ...). Input
// order is preserved; use Chronological for the time-sorted view.
type Series struct {
	times  []float64
	values []float64
	sorted bool
}

// New validates and constructs a series from parallel time and value slices.
// The slices are copied; callers may reuse their buffers.
func New(times, values []float64) (*Series, error) {
	if len(times) != len(values) {
		return nil, core.ErrLengthMismatch
	}
	if len(times) < 2 {
		return nil, core.ErrTooFewSamples
	}
	for i := range times {
		if math.IsNaN(times[i]) || math.IsInf(times[i], 0) {
			return nil, core.ErrNonFinite
		}
		if math.IsNaN(values[i]) || math.IsInf(values[i], 0) {
			return nil, core.ErrNonFinite
		}
	}

	s := &Series{
		times:  append([]float64(nil), times...),
		values: append([]float64(nil), values...),
	}
	s.sorted = sort.Float64sAreSorted(s.times)
	return s, nil
}

// FromSamples constructs a series from a sample slice.
func FromSamples(samples []Sample) (*Series, error) {
	times := make([]float64, len(samples))
	values := make([]float64, len(samples))
	for i, smp := range samples {
		times[i] = smp.Time
		values[i] = smp.Value
	}
	return New(times, values)
}

// Len returns the number of samples.
func (s *Series) Len() int {
	return len(s.times)
}

// Times returns a copy of the time sequence in construction order.
func (s *Series) Times() []float64 {
	return append([]float64(nil), s.times...)
}

// Values returns a copy of the value sequence in construction order.
func (s *Series) Values() []float64 {
	return append([]float64(nil), s.values...)
}

// Chronological returns the series re-ordered by ascending time. Values track
// the same permutation as times, and ties keep their original relative order
// (stable sort). The receiver is returned unchanged when already sorted.
func (s *Series) Chronological() *Series {
	if s.sorted {
		return s
	}

	idx := make([]int, len(s.times))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return s.times[idx[a]] < s.times[idx[b]]
	})

	times := make([]float64, len(idx))
	values := make([]float64, len(idx))
	for i, j := range idx {
		times[i] = s.times[j]
		values[i] = s.values[j]
	}
	return &Series{times: times, values: values, sorted: true}
}

// Span returns t_max - t_min over the series.
func (s *Series) Span() float64 {
	minT, maxT := s.times[0], s.times[0]
	for _, t := range s.times[1:] {
		if t < minT {
			minT = t
		}
		if t > maxT {
			maxT = t
		}
	}
	return maxT - minT
}

// MeanResolution returns the mean sampling resolution, span / N.
func (s *Series) MeanResolution() float64 {
	return s.Span() / float64(len(s.times))
}

// Summary holds the value-distribution moments of a series. Variance and
// StdDev are the population (biased) estimates, matching the moments the
// estimator normalizes against.
type Summary struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
}

// Summarize computes the value-distribution summary.
func (s *Series) Summarize() (Summary, error) {
	mean, err := stats.Mean(s.values)
	if err != nil {
		return Summary{}, err
	}
	variance, err := stats.PopulationVariance(s.values)
	if err != nil {
		return Summary{}, err
	}
	stdDev, err := stats.StandardDeviationPopulation(s.values)
	if err != nil {
		return Summary{}, err
	}
	min, err := stats.Min(s.values)
	if err != nil {
		return Summary{}, err
	}
	max, err := stats.Max(s.values)
	if err != nil {
		return Summary{}, err
	}
	median, err := stats.Median(s.values)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Mean:     mean,
		Variance: variance,
		StdDev:   stdDev,
		Min:      min,
		Max:      max,
		Median:   median,
	}, nil
}
