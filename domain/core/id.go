package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	// RunID identifies a single estimation run.
	RunID ID
	// SeriesKey names the scalar series a run was computed over.
	SeriesKey ID
)

func (id RunID) String() string     { return ID(id).String() }
func (id SeriesKey) String() string { return ID(id).String() }

// NewRunID creates a fresh run identifier.
func NewRunID() RunID {
	return RunID(NewID())
}

// ParseRunID parses a string into RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	return RunID(s), nil
}

// ParseSeriesKey parses a string into SeriesKey
func ParseSeriesKey(s string) (SeriesKey, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("series key cannot be empty")
	}
	return SeriesKey(s), nil
}
