package correntropy

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"slotcorr/domain/core"
)

// makeIrregularSeries builds a jittered, deterministic sinusoid-plus-noise
// series with shuffled sample order.
func makeIrregularSeries(n int, seed int64) ([]float64, []float64) {
	rng := rand.New(rand.NewSource(seed))
	times := make([]float64, n)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		t := float64(i) + 0.4*(rng.Float64()-0.5)
		times[i] = t
		values[i] = math.Sin(2*math.Pi*t/10) + 0.2*rng.NormFloat64()
	}
	// Shuffle to exercise the ordering stage.
	rng.Shuffle(n, func(a, b int) {
		times[a], times[b] = times[b], times[a]
		values[a], values[b] = values[b], values[a]
	})
	return times, values
}

func TestEstimate_OutputShape(t *testing.T) {
	times, values := makeIrregularSeries(120, 1)

	est, err := NewDefault().Estimate(context.Background(), times, values)
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}

	if len(est.Lags) == 0 {
		t.Fatal("expected at least one defined slot")
	}
	if len(est.Correntropy) != len(est.Lags) || len(est.CrossCorr) != len(est.Lags) || len(est.Support) != len(est.Lags) {
		t.Fatalf("output arrays misaligned: lags=%d correntropy=%d crosscorr=%d support=%d",
			len(est.Lags), len(est.Correntropy), len(est.CrossCorr), len(est.Support))
	}
	if len(est.Lags) > est.CandidateSlots {
		t.Errorf("retained %d slots out of %d candidates", len(est.Lags), est.CandidateSlots)
	}

	n := 120
	if want := n * (n + 1) / 2; est.PairCount != want {
		t.Errorf("PairCount = %d, want %d", est.PairCount, want)
	}
	if est.Bandwidth <= 0 {
		t.Errorf("Bandwidth = %v, want > 0", est.Bandwidth)
	}
	if est.SlotWidth <= 0 {
		t.Errorf("SlotWidth = %v, want > 0", est.SlotWidth)
	}

	for i := 1; i < len(est.Lags); i++ {
		if est.Lags[i] < est.Lags[i-1] {
			t.Fatalf("lags decrease at %d: %v < %v", i, est.Lags[i], est.Lags[i-1])
		}
	}
	for i, g := range est.Correntropy {
		if g <= 0 || g > 1 {
			t.Errorf("correntropy[%d] = %v, want in (0, 1]", i, g)
		}
	}
	for i, s := range est.Support {
		if s <= 0 {
			t.Errorf("support[%d] = %d, want > 0", i, s)
		}
	}
}

func TestEstimate_ZeroLagBehaviour(t *testing.T) {
	times, values := makeIrregularSeries(150, 2)

	est, err := NewDefault().Estimate(context.Background(), times, values)
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}

	// The slot nearest lag 0 compares samples against themselves: its
	// correntropy must dominate every other slot.
	for i := 1; i < len(est.Correntropy); i++ {
		if est.Correntropy[i] > est.Correntropy[0] {
			t.Errorf("correntropy[%d] = %v exceeds zero-lag value %v", i, est.Correntropy[i], est.Correntropy[0])
		}
	}

	// Normalized cross-term at lag ~0 approximates 1 for a near-zero-mean
	// series (autocovariance over variance).
	if math.Abs(est.CrossCorr[0]-1) > 0.25 {
		t.Errorf("CrossCorr at lag ~0 = %v, want ~1", est.CrossCorr[0])
	}
}

func TestEstimate_PermutationInvariance(t *testing.T) {
	times, values := makeIrregularSeries(80, 3)

	base, err := NewDefault().Estimate(context.Background(), times, values)
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}

	rng := rand.New(rand.NewSource(99))
	perm := rng.Perm(len(times))
	permTimes := make([]float64, len(times))
	permValues := make([]float64, len(values))
	for i, j := range perm {
		permTimes[i] = times[j]
		permValues[i] = values[j]
	}

	got, err := NewDefault().Estimate(context.Background(), permTimes, permValues)
	if err != nil {
		t.Fatalf("Estimate() on permuted input error: %v", err)
	}

	if len(got.Lags) != len(base.Lags) {
		t.Fatalf("permuted input changed output length: %d vs %d", len(got.Lags), len(base.Lags))
	}
	for i := range base.Lags {
		if got.Lags[i] != base.Lags[i] ||
			got.Correntropy[i] != base.Correntropy[i] ||
			got.CrossCorr[i] != base.CrossCorr[i] {
			t.Fatalf("permuted input changed slot %d: (%v,%v,%v) vs (%v,%v,%v)",
				i, got.Lags[i], got.Correntropy[i], got.CrossCorr[i],
				base.Lags[i], base.Correntropy[i], base.CrossCorr[i])
		}
	}
}

func TestEstimate_ScaleInvariance(t *testing.T) {
	times, values := makeIrregularSeries(80, 4)

	base, err := NewDefault().Estimate(context.Background(), times, values)
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}

	const scale = 7.5
	scaled := make([]float64, len(values))
	for i, v := range values {
		scaled[i] = scale * v
	}

	got, err := NewDefault().Estimate(context.Background(), times, scaled)
	if err != nil {
		t.Fatalf("Estimate() on scaled input error: %v", err)
	}

	if len(got.Lags) != len(base.Lags) {
		t.Fatalf("scaling changed output length: %d vs %d", len(got.Lags), len(base.Lags))
	}
	// Bandwidth scales with the value spread, so the value kernel and the
	// normalized cross-term are both invariant up to rounding.
	if math.Abs(got.Bandwidth-scale*base.Bandwidth) > 1e-9*base.Bandwidth {
		t.Errorf("Bandwidth = %v, want %v", got.Bandwidth, scale*base.Bandwidth)
	}
	for i := range base.Lags {
		if math.Abs(got.CrossCorr[i]-base.CrossCorr[i]) > 1e-9 {
			t.Errorf("CrossCorr[%d] = %v, want %v", i, got.CrossCorr[i], base.CrossCorr[i])
		}
		if math.Abs(got.Correntropy[i]-base.Correntropy[i]) > 1e-9 {
			t.Errorf("Correntropy[%d] = %v, want %v", i, got.Correntropy[i], base.Correntropy[i])
		}
	}
}

func TestEstimate_DegenerateInputs(t *testing.T) {
	tests := []struct {
		name    string
		times   []float64
		values  []float64
		wantErr error
	}{
		{
			name:    "constant values",
			times:   []float64{0, 10},
			values:  []float64{5, 5},
			wantErr: core.ErrConstantSeries,
		},
		{
			name:    "single sample",
			times:   []float64{0},
			values:  []float64{1},
			wantErr: core.ErrTooFewSamples,
		},
		{
			name:    "zero time span",
			times:   []float64{3, 3, 3},
			values:  []float64{1, 2, 3},
			wantErr: core.ErrZeroTimeSpan,
		},
		{
			name:    "length mismatch",
			times:   []float64{0, 1, 2},
			values:  []float64{1, 2},
			wantErr: core.ErrLengthMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := NewDefault().Estimate(context.Background(), tt.times, tt.values)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Estimate() error = %v, want %v", err, tt.wantErr)
			}
			if est != nil {
				t.Errorf("Estimate() returned a result alongside the error")
			}
			if !core.IsDegenerateInputError(err) {
				t.Errorf("error %v not classified as degenerate input", err)
			}
		})
	}
}

func TestEstimate_DuplicateTimestampsAreValid(t *testing.T) {
	// Duplicate timestamps produce zero-lag pairs, not errors.
	times := []float64{0, 0, 1, 1, 2, 3, 4}
	values := []float64{1.0, 1.1, -0.9, -1.0, 0.5, 1.2, -0.7}

	est, err := NewDefault().Estimate(context.Background(), times, values)
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}
	if len(est.Lags) == 0 {
		t.Fatal("expected defined slots")
	}
}

func TestEstimate_OscillationScenario(t *testing.T) {
	// One period of a discrete oscillation: period 4, half period 2.
	times := []float64{0, 1, 2, 3, 4, 5}
	values := []float64{0, 1, 0, -1, 0, 1}

	// Widen the scanned span so the full period is visible.
	est, err := New(Config{
		SpanFraction:     0.9,
		SlotFraction:     DefaultSlotFraction,
		TruncationRadius: DefaultTruncationRadius,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	out, err := est.Estimate(context.Background(), times, values)
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}

	at := func(lag float64) float64 {
		best := -1
		for i, l := range out.Lags {
			if math.Abs(l-lag) < 0.3 {
				best = i
				break
			}
		}
		if best < 0 {
			t.Fatalf("no slot found near lag %v; lags = %v", lag, out.Lags)
		}
		return out.CrossCorr[best]
	}

	zero := at(0)
	half := at(2)
	full := at(4)

	if zero < 0.9 {
		t.Errorf("CrossCorr near lag 0 = %v, want local maximum ~1", zero)
	}
	if half > -0.9 {
		t.Errorf("CrossCorr near half period = %v, want local minimum ~-1", half)
	}
	if full < 0.9 {
		t.Errorf("CrossCorr near full period = %v, want recovery ~1", full)
	}
	t.Logf("oscillation: lag0=%.3f half=%.3f full=%.3f", zero, half, full)
}

func TestEstimate_LagsNonDecreasingWithTies(t *testing.T) {
	// Integer-grid sampling makes runs of adjacent slots resolve to the same
	// realized lag. Their weighted means accumulate in different orders of
	// magnitude of weights, so without clamping the rounding can dip a lag a
	// few ulps below its predecessor.
	times := []float64{0, 1, 2, 3, 4, 5}
	values := []float64{0, 1, 0, -1, 0, 1}

	est, err := New(Config{
		SpanFraction:     0.9,
		SlotFraction:     DefaultSlotFraction,
		TruncationRadius: DefaultTruncationRadius,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	out, err := est.Estimate(context.Background(), times, values)
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}
	if !sort.Float64sAreSorted(out.Lags) {
		t.Fatalf("lags not non-decreasing: %v", out.Lags)
	}

	// The same must hold on a longer grid where every run of tied slots is
	// several entries wide.
	const n = 50
	gridTimes := make([]float64, n)
	gridValues := make([]float64, n)
	for i := 0; i < n; i++ {
		gridTimes[i] = float64(i)
		gridValues[i] = math.Sin(2 * math.Pi * float64(i) / 7)
	}
	out, err = NewDefault().Estimate(context.Background(), gridTimes, gridValues)
	if err != nil {
		t.Fatalf("Estimate() on grid error: %v", err)
	}
	if !sort.Float64sAreSorted(out.Lags) {
		t.Fatalf("grid lags not non-decreasing: %v", out.Lags)
	}
}

func TestEstimate_UniformSamplingMatchesClassicACF(t *testing.T) {
	// On a regular grid every defined slot captures exactly one integer lag,
	// so the slotted estimate must reproduce the fixed-lag raw ACF.
	const n = 100
	rng := rand.New(rand.NewSource(7))
	times := make([]float64, n)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		times[i] = float64(i)
		values[i] = math.Sin(2*math.Pi*float64(i)/8) + 0.1*rng.NormFloat64()
	}

	out, err := NewDefault().Estimate(context.Background(), times, values)
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}

	classic, err := RawAutocorrelation(values, n-1)
	if err != nil {
		t.Fatalf("RawAutocorrelation() error: %v", err)
	}

	checked := 0
	for i, lag := range out.Lags {
		k := int(math.Round(lag))
		if math.Abs(lag-float64(k)) > 1e-9 {
			t.Fatalf("realized lag %v not on the integer grid", lag)
		}
		if math.Abs(out.CrossCorr[i]-classic[k]) > 1e-6 {
			t.Errorf("slot at lag %d: slotted %v vs classic %v", k, out.CrossCorr[i], classic[k])
		}
		checked++
	}
	if checked == 0 {
		t.Fatal("no slots compared")
	}
	t.Logf("compared %d slots against the fixed-lag ACF", checked)
}

func TestEstimate_FullGaussianWindow(t *testing.T) {
	times, values := makeIrregularSeries(60, 5)

	est, err := New(Config{
		SpanFraction:     DefaultSpanFraction,
		SlotFraction:     DefaultSlotFraction,
		TruncationRadius: 0, // no truncation: every pair weighs into every slot
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	out, err := est.Estimate(context.Background(), times, values)
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}
	if len(out.Lags) != out.CandidateSlots {
		t.Errorf("with full windows all %d slots should be defined, got %d", out.CandidateSlots, len(out.Lags))
	}
	n := 60
	for i, s := range out.Support {
		if s != n*(n+1)/2 {
			t.Errorf("support[%d] = %d, want the full pair set", i, s)
		}
	}
}

func TestEstimate_ContextCancellation(t *testing.T) {
	times, values := makeIrregularSeries(200, 6)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDefault().Estimate(ctx, times, values)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Estimate() error = %v, want context.Canceled", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"defaults", DefaultConfig(), true},
		{"spectrogram span", Config{SpanFraction: SpanFractionSpectrogram, SlotFraction: 0.1, TruncationRadius: 5}, true},
		{"zero span fraction", Config{SpanFraction: 0, SlotFraction: 0.1, TruncationRadius: 5}, false},
		{"span fraction above one", Config{SpanFraction: 1.5, SlotFraction: 0.1, TruncationRadius: 5}, false},
		{"zero slot fraction", Config{SpanFraction: 0.2, SlotFraction: 0, TruncationRadius: 5}, false},
		{"negative truncation", Config{SpanFraction: 0.2, SlotFraction: 0.1, TruncationRadius: -1}, false},
		{"negative parallelism", Config{SpanFraction: 0.2, SlotFraction: 0.1, TruncationRadius: 5, MaxParallel: -2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, core.ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
