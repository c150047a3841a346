package correntropy

import (
	"math"

	"slotcorr/domain/core"

	"github.com/montanaflynn/stats"
)

// silvermanBandwidth derives the correntropy kernel bandwidth from the value
// distribution with Silverman's rule of thumb, doubled:
//
//	sigma = 2 * 1.06 * stddev(values) * n^(-1/5)
//
// The population standard deviation is used. A constant series has zero
// spread and no usable bandwidth, which is rejected rather than letting a
// zero sigma divide downstream kernels.
func silvermanBandwidth(values []float64) (float64, error) {
	stdDev, err := stats.StandardDeviationPopulation(values)
	if err != nil {
		return 0, err
	}
	if stdDev == 0 {
		return 0, core.ErrConstantSeries
	}
	n := float64(len(values))
	return 2 * 1.06 * stdDev * math.Pow(n, -0.2), nil
}

// slotWidth derives the lag slot width from the mean sampling resolution.
// A zero span (all samples at one instant) yields no usable slot width.
func slotWidth(span float64, n int, slotFraction float64) (float64, error) {
	if span <= 0 {
		return 0, core.ErrZeroTimeSpan
	}
	return slotFraction * span / float64(n), nil
}

// slotCount returns the number of candidate lag slots,
// floor(spanFraction * span / ss) + 1, covering lags 0 .. spanFraction*span.
func slotCount(span, ss, spanFraction float64) int {
	return int(math.Floor(spanFraction*span/ss)) + 1
}
