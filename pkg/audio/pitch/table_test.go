// ABOUTME: Tests for pitch ratio table
// ABOUTME: Tests monotonicity, reciprocal symmetry, range checks and steps
package pitch

import (
	"errors"
	"math"
	"testing"
)

func TestBuildZeroIsExactlyOne(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
	}{
		{"default", DefaultMin, DefaultMax},
		{"only zero", 0, 0},
		{"asymmetric", -3, 12},
		{"up only", 0, 5},
		{"down only", -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := Build(tt.min, tt.max)
			if table.RatioAt(0) != 1.0 {
				t.Errorf("expected ratio 1.0 at offset 0, got %v", table.RatioAt(0))
			}
			if table.Len() != tt.max-tt.min+1 {
				t.Errorf("expected %d entries, got %d", tt.max-tt.min+1, table.Len())
			}
			if table.Min() != tt.min || table.Max() != tt.max {
				t.Errorf("expected range [%d, %d], got [%d, %d]", tt.min, tt.max, table.Min(), table.Max())
			}
		})
	}
}

func TestRatiosStrictlyIncrease(t *testing.T) {
	table := Build(DefaultMin, DefaultMax)

	for k := table.Min(); k < table.Max(); k++ {
		if !(table.RatioAt(k) < table.RatioAt(k+1)) {
			t.Errorf("ratio at %d (%v) not below ratio at %d (%v)",
				k, table.RatioAt(k), k+1, table.RatioAt(k+1))
		}
	}
}

func TestRatiosReciprocal(t *testing.T) {
	table := Build(DefaultMin, DefaultMax)

	for k := 0; k <= DefaultMax; k++ {
		product := table.RatioAt(k) * table.RatioAt(-k)
		if math.Abs(product-1.0) > 1e-4 {
			t.Errorf("offset %d: ratio product %v not within 1e-4 of 1", k, product)
		}
	}
}

func TestKnownRatios(t *testing.T) {
	table := Build(DefaultMin, DefaultMax)

	if table.RatioAt(1) != RatioConstant {
		t.Errorf("expected %v at +1, got %v", RatioConstant, table.RatioAt(1))
	}
	if table.RatioAt(-1) != InverseRatioConstant {
		t.Errorf("expected %v at -1, got %v", InverseRatioConstant, table.RatioAt(-1))
	}

	// An octave doubles or halves the speed
	if math.Abs(table.RatioAt(12)-2.0) > 1e-4 {
		t.Errorf("expected ~2.0 at +12, got %v", table.RatioAt(12))
	}
	if math.Abs(table.RatioAt(-12)-0.5) > 1e-4 {
		t.Errorf("expected ~0.5 at -12, got %v", table.RatioAt(-12))
	}
}

func TestRatioAtOutOfRangePanics(t *testing.T) {
	table := Build(-2, 2)

	for _, offset := range []int{-3, 3, 100} {
		func() {
			defer func() {
				rv := recover()
				if rv == nil {
					t.Fatalf("offset %d: expected panic", offset)
				}
				err, ok := rv.(error)
				if !ok {
					t.Fatalf("offset %d: expected error panic, got %T", offset, rv)
				}
				var usage *UsageError
				if !errors.As(err, &usage) {
					t.Errorf("offset %d: expected UsageError, got %v", offset, err)
				}
				if !errors.Is(err, ErrOutOfRange) {
					t.Errorf("offset %d: expected ErrOutOfRange, got %v", offset, err)
				}
			}()
			table.RatioAt(offset)
		}()
	}
}

func TestBuildRejectsRangeWithoutZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for range [1, 5]")
		}
	}()
	Build(1, 5)
}

func TestCovers(t *testing.T) {
	table := Build(-4, 4)

	if !table.Covers(-4) || !table.Covers(4) || !table.Covers(0) {
		t.Error("expected bounds to be covered")
	}
	if table.Covers(-5) || table.Covers(5) {
		t.Error("expected offsets past the bounds to be uncovered")
	}

	var missing *Table
	if missing.Covers(0) {
		t.Error("nil table should cover nothing")
	}
}

func TestStepFor(t *testing.T) {
	tests := []struct {
		name     string
		ratio    float64
		expected int
	}{
		{"identity", 1.0, 256},
		{"semitone up", RatioConstant, 271},
		{"semitone down", InverseRatioConstant, 242},
		{"octave up", 2.0, 512},
		{"octave down", 0.5, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StepFor(tt.ratio); got != tt.expected {
				t.Errorf("expected step %d, got %d", tt.expected, got)
			}
		})
	}
}
