package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)

	// Degenerate input errors. The estimator rejects these at the boundary
	// instead of letting NaN propagate through the whole output.
	ErrTooFewSamples  = errors.New("series has fewer than two samples")
	ErrLengthMismatch = errors.New("time and value sequences differ in length")
	ErrNonFinite      = errors.New("series contains a non-finite value")
	ErrZeroTimeSpan   = errors.New("series time span is zero")
	ErrConstantSeries = errors.New("series values are constant (zero variance)")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid estimator configuration")
)

// NewNotFoundError builds a not-found error for a named resource.
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// NewConfigError wraps ErrInvalidConfig with the offending parameter.
func NewConfigError(param string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidConfig, param, reason)
}

// IsNotFoundError reports whether err is any not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDegenerateInputError reports whether err is one of the degenerate-input
// rejections (too few samples, zero span, zero variance, bad values).
func IsDegenerateInputError(err error) bool {
	return errors.Is(err, ErrTooFewSamples) ||
		errors.Is(err, ErrLengthMismatch) ||
		errors.Is(err, ErrNonFinite) ||
		errors.Is(err, ErrZeroTimeSpan) ||
		errors.Is(err, ErrConstantSeries)
}
