package correntropy

import (
	"context"
	"math"
	"sync"

	"slotcorr/domain/series"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/semaphore"
)

// Estimator computes a slotted correntropy correlogram of one irregularly
// sampled scalar series. It is stateless between calls and safe for
// concurrent use.
//
// Slots are mutually independent, so they are evaluated concurrently under a
// weighted semaphore. The pairwise difference set is sorted by lag once and
// each slot locates its kernel window by binary search.
type Estimator struct {
	cfg Config
}

// New creates an estimator with the given slotting policy.
func New(cfg Config) (*Estimator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Estimator{cfg: cfg}, nil
}

// NewDefault creates an estimator with the default slotting policy.
func NewDefault() *Estimator {
	return &Estimator{cfg: DefaultConfig()}
}

// Config returns the estimator's slotting policy.
func (e *Estimator) Config() Config {
	return e.cfg
}

// Estimate validates the raw time/value sequences and runs the estimator.
// Times need not be pre-sorted and may contain duplicates.
func (e *Estimator) Estimate(ctx context.Context, times, values []float64) (*Estimate, error) {
	s, err := series.New(times, values)
	if err != nil {
		return nil, err
	}
	return e.EstimateSeries(ctx, s)
}

// EstimateSeries runs the estimator over a validated series.
func (e *Estimator) EstimateSeries(ctx context.Context, s *series.Series) (*Estimate, error) {
	chron := s.Chronological()
	times := chron.Times()
	values := chron.Values()

	sigma, err := silvermanBandwidth(values)
	if err != nil {
		return nil, err
	}
	span := chron.Span()
	ss, err := slotWidth(span, len(times), e.cfg.SlotFraction)
	if err != nil {
		return nil, err
	}
	slots := slotCount(span, ss, e.cfg.SpanFraction)

	ps := buildPairs(times, values)
	ps.sortByLag()
	ps.kernelize(sigma)

	ests := make([]slotEstimate, slots)
	sem := semaphore.NewWeighted(e.cfg.parallelism())
	var wg sync.WaitGroup
	for k := 0; k < slots; k++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(k int) {
			defer sem.Release(1)
			defer wg.Done()
			ests[k] = e.estimateSlot(ps, float64(k)*ss, ss)
		}(k)
	}
	wg.Wait()

	// Normalize against the variance of the input values; the value spread is
	// permutation-invariant so the chronological copy serves.
	variance, err := stats.PopulationVariance(values)
	if err != nil {
		return nil, err
	}

	out := compact(ests, variance)
	out.Bandwidth = sigma
	out.SlotWidth = ss
	out.CandidateSlots = slots
	out.PairCount = ps.Len()
	return out, nil
}

// estimateSlot computes the Nadaraya-Watson weighted averages of realized
// lag, value-kernel similarity and raw cross product for one slot.
func (e *Estimator) estimateSlot(ps *pairSet, center, ss float64) slotEstimate {
	lo, hi := 0, ps.Len()
	if e.cfg.TruncationRadius > 0 {
		radius := e.cfg.TruncationRadius * ss
		lo, hi = ps.window(center-radius, center+radius)
	}
	if lo >= hi {
		return slotEstimate{}
	}

	// The 1/(2*pi*ss) kernel constant cancels in the weighted-average ratios
	// but is kept so the raw weights stay meaningful on their own.
	norm := 1 / (2 * math.Pi * ss)
	denom := 2 * ss * ss

	var sumW, sumLag, sumGx, sumP float64
	for i := lo; i < hi; i++ {
		d := ps.dt[i] - center
		w := norm * math.Exp(-(d*d)/denom)
		sumW += w
		sumLag += w * ps.dt[i]
		sumGx += w * ps.gx[i]
		sumP += w * ps.p[i]
	}
	if sumW == 0 {
		return slotEstimate{}
	}

	return slotEstimate{
		lag:         sumLag / sumW,
		correntropy: sumGx / sumW,
		crossTerm:   sumP / sumW,
		support:     hi - lo,
		defined:     true,
	}
}

// compact drops undefined slots and scales the cross-term series by the
// series variance, keeping the three output slices index-aligned.
//
// Realized lags are clamped to the running maximum: adjacent slots whose
// windows capture the same pair multiset accumulate the weighted mean in a
// different order of magnitudes, and the rounding can dip a lag a few ulps
// below its predecessor. The output sequence must stay non-decreasing.
func compact(ests []slotEstimate, variance float64) *Estimate {
	out := &Estimate{
		Lags:        make([]float64, 0, len(ests)),
		Correntropy: make([]float64, 0, len(ests)),
		CrossCorr:   make([]float64, 0, len(ests)),
		Support:     make([]int, 0, len(ests)),
	}
	for _, est := range ests {
		if !est.defined {
			continue
		}
		lag := est.lag
		if n := len(out.Lags); n > 0 && lag < out.Lags[n-1] {
			lag = out.Lags[n-1]
		}
		out.Lags = append(out.Lags, lag)
		out.Correntropy = append(out.Correntropy, est.correntropy)
		out.CrossCorr = append(out.CrossCorr, est.crossTerm/variance)
		out.Support = append(out.Support, est.support)
	}
	return out
}
