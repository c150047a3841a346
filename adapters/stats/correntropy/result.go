package correntropy

// Estimate is the output of one estimator run: three aligned, lag-ordered
// sequences plus the bandwidth that shaped the value kernel. Slots whose
// kernel window caught no pairs are already dropped; indexes align across
// the three slices.
type Estimate struct {
	// Lags holds the realized mean lag of each retained slot, ascending.
	// These are data-driven means of the actual pair lags near each slot
	// center, not the nominal centers themselves.
	Lags []float64 `json:"lags"`

	// Correntropy holds the kernel-weighted mean Gaussian similarity per
	// slot, each value in (0, 1].
	Correntropy []float64 `json:"correntropy"`

	// CrossCorr holds the raw cross-product estimate per slot divided by the
	// series variance, a correlation-scale quantity close to 1 at lag 0.
	CrossCorr []float64 `json:"cross_corr"`

	// Support counts the pairs inside each retained slot's kernel window.
	Support []int `json:"support"`

	// Bandwidth is the Silverman value-kernel bandwidth sigma.
	Bandwidth float64 `json:"bandwidth"`

	// SlotWidth is the lag slot width used for the time kernel.
	SlotWidth float64 `json:"slot_width"`

	// CandidateSlots is the number of slots evaluated before compaction.
	CandidateSlots int `json:"candidate_slots"`

	// PairCount is the size of the pairwise difference set, n(n+1)/2.
	PairCount int `json:"pair_count"`
}

// slotEstimate carries one slot's windowed averages before compaction.
// A slot with an empty kernel window stays undefined; that is expected and
// filtered out, never an error.
type slotEstimate struct {
	lag         float64
	correntropy float64
	crossTerm   float64
	support     int
	defined     bool
}
