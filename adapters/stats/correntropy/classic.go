package correntropy

import (
	"slotcorr/domain/core"

	"gonum.org/v1/gonum/stat"
)

// Autocorrelation computes the classical fixed-lag sample autocorrelation of
// a uniformly sampled series: mean-subtracted lag products over the total
// sum of squares. Returned slice has maxLag+1 entries, lag 0 first.
//
// The slotted estimator degrades to this on a regular grid; it is exposed
// for comparison reporting and exercised by the estimator tests.
func Autocorrelation(values []float64, maxLag int) ([]float64, error) {
	n := len(values)
	if n < 2 {
		return nil, core.ErrTooFewSamples
	}
	if maxLag >= n {
		maxLag = n - 1
	}

	mean := stat.Mean(values, nil)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	if ss == 0 {
		return nil, core.ErrConstantSeries
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		var num float64
		for t := 0; t+k < n; t++ {
			num += (values[t] - mean) * (values[t+k] - mean)
		}
		// Scale each lag by its own pair count so short overlaps are not
		// biased downward.
		acf[k] = (num / float64(n-k)) / (ss / float64(n))
	}
	return acf, nil
}

// RawAutocorrelation computes the fixed-lag second-moment autocorrelation
// without mean subtraction, E[x_t * x_{t+k}] / Var(x). This matches the
// normalization convention of the slotted cross-term output.
func RawAutocorrelation(values []float64, maxLag int) ([]float64, error) {
	n := len(values)
	if n < 2 {
		return nil, core.ErrTooFewSamples
	}
	if maxLag >= n {
		maxLag = n - 1
	}

	mean := stat.Mean(values, nil)
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)
	if variance == 0 {
		return nil, core.ErrConstantSeries
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		var num float64
		for t := 0; t+k < n; t++ {
			num += values[t] * values[t+k]
		}
		acf[k] = (num / float64(n-k)) / variance
	}
	return acf, nil
}
