package core

import (
	"testing"
)

func TestNewID_Unique(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Fatal("NewID() returned empty ID")
		}
		if seen[id] {
			t.Fatalf("NewID() returned duplicate: %s", id)
		}
		seen[id] = true
	}
}

func TestParseRunID(t *testing.T) {
	if _, err := ParseRunID("  "); err == nil {
		t.Error("ParseRunID accepted blank input")
	}
	id, err := ParseRunID("abc-123")
	if err != nil {
		t.Fatalf("ParseRunID() error: %v", err)
	}
	if id.String() != "abc-123" {
		t.Errorf("ParseRunID() = %s, want abc-123", id)
	}
}

func TestDegenerateInputClassification(t *testing.T) {
	for _, err := range []error{
		ErrTooFewSamples,
		ErrLengthMismatch,
		ErrNonFinite,
		ErrZeroTimeSpan,
		ErrConstantSeries,
	} {
		if !IsDegenerateInputError(err) {
			t.Errorf("%v not classified as degenerate input", err)
		}
	}
	if IsDegenerateInputError(ErrRunNotFound) {
		t.Error("not-found error misclassified as degenerate input")
	}
	if !IsNotFoundError(NewNotFoundError("run", "x")) {
		t.Error("wrapped not-found error lost its sentinel")
	}
}
