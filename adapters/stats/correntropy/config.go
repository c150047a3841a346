package correntropy

import (
	"runtime"

	"slotcorr/domain/core"
)

// Default policy constants. SpanFractionSpectrogram is the wider scan used
// when the correlogram feeds spectrogram-style analysis downstream.
const (
	DefaultSpanFraction     = 0.2
	SpanFractionSpectrogram = 0.75
	DefaultSlotFraction     = 0.1
	DefaultTruncationRadius = 5.0
)

// Config controls the slotting policy of the estimator.
type Config struct {
	// SpanFraction is the fraction of the observed time span covered by lag
	// slots. Lags beyond it are decreasingly supported by pairs and skipped.
	SpanFraction float64 `json:"span_fraction"`

	// SlotFraction sets the slot width as a fraction of the mean sampling
	// resolution (span / N).
	SlotFraction float64 `json:"slot_fraction"`

	// TruncationRadius is the kernel window half-width in slot widths.
	// Pairs farther than TruncationRadius slot widths from a slot center
	// carry negligible weight and are skipped. Zero disables truncation and
	// weights every pair at every slot.
	TruncationRadius float64 `json:"truncation_radius"`

	// MaxParallel bounds concurrent slot evaluations. Zero means NumCPU.
	MaxParallel int64 `json:"max_parallel,omitempty"`
}

// DefaultConfig returns the standard slotting policy.
func DefaultConfig() Config {
	return Config{
		SpanFraction:     DefaultSpanFraction,
		SlotFraction:     DefaultSlotFraction,
		TruncationRadius: DefaultTruncationRadius,
	}
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.SpanFraction <= 0 || c.SpanFraction > 1 {
		return core.NewConfigError("span_fraction", "must be in (0, 1]")
	}
	if c.SlotFraction <= 0 {
		return core.NewConfigError("slot_fraction", "must be > 0")
	}
	if c.TruncationRadius < 0 {
		return core.NewConfigError("truncation_radius", "must be >= 0")
	}
	if c.MaxParallel < 0 {
		return core.NewConfigError("max_parallel", "must be >= 0")
	}
	return nil
}

func (c Config) parallelism() int64 {
	if c.MaxParallel > 0 {
		return c.MaxParallel
	}
	return int64(runtime.NumCPU())
}
