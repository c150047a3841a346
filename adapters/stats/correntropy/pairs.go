package correntropy

import (
	"math"
	"sort"
)

// pairSet holds the lower-triangular pairwise differences of a chronological
// series as three parallel slices: time difference, value difference and raw
// value product. After sortByLag the slices are ordered by dt ascending so
// slot windows can be located by binary search instead of a full scan.
type pairSet struct {
	dt []float64 // t_i - t_j, always >= 0 for i >= j on sorted input
	dx []float64 // x_i - x_j
	p  []float64 // x_i * x_j
	gx []float64 // exp(-dx^2 / (2 sigma^2)), filled by kernelize
}

// buildPairs materializes all i >= j pairs (the diagonal included) of a
// time-sorted series. The result has n(n+1)/2 entries, preallocated once.
func buildPairs(times, values []float64) *pairSet {
	n := len(times)
	m := n * (n + 1) / 2

	ps := &pairSet{
		dt: make([]float64, 0, m),
		dx: make([]float64, 0, m),
		p:  make([]float64, 0, m),
	}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			ps.dt = append(ps.dt, times[i]-times[j])
			ps.dx = append(ps.dx, values[i]-values[j])
			ps.p = append(ps.p, values[i]*values[j])
		}
	}
	return ps
}

func (ps *pairSet) Len() int           { return len(ps.dt) }
func (ps *pairSet) Less(a, b int) bool { return ps.dt[a] < ps.dt[b] }

func (ps *pairSet) Swap(a, b int) {
	ps.dt[a], ps.dt[b] = ps.dt[b], ps.dt[a]
	ps.dx[a], ps.dx[b] = ps.dx[b], ps.dx[a]
	ps.p[a], ps.p[b] = ps.p[b], ps.p[a]
}

// sortByLag orders the set by dt ascending, carrying dx and p along.
func (ps *pairSet) sortByLag() {
	sort.Sort(ps)
}

// kernelize fills gx with the Gaussian similarity kernel of each value
// difference. Values are in (0, 1]; identical values yield exactly 1.
func (ps *pairSet) kernelize(sigma float64) {
	ps.gx = make([]float64, len(ps.dx))
	denom := 2 * sigma * sigma
	for i, d := range ps.dx {
		ps.gx[i] = math.Exp(-(d * d) / denom)
	}
}

// window returns the index range [lo, hi) of entries with dt strictly
// inside the open interval (from, to); both bounds are exclusive, so a pair
// sitting exactly on the truncation boundary is never admitted. The set must
// already be sorted by lag.
func (ps *pairSet) window(from, to float64) (int, int) {
	lo := sort.Search(len(ps.dt), func(i int) bool { return ps.dt[i] > from })
	hi := sort.SearchFloat64s(ps.dt, to)
	return lo, hi
}
