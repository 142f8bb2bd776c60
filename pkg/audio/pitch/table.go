// ABOUTME: Semitone offset to frequency ratio table
// ABOUTME: Builds ratios by repeated multiplication from the zero offset
package pitch

import (
	"errors"
	"fmt"
	"math"
)

const (
	// RatioConstant raises pitch by one semitone
	RatioConstant = 1.0594634
	// InverseRatioConstant lowers pitch by one semitone
	InverseRatioConstant = 0.94387404038686

	// Default range covers three octaves either side of the recording
	DefaultMin = -36
	DefaultMax = 36

	// FixedPointShift is the number of fractional bits in a cursor step
	FixedPointShift = 8
	fixedPointOne   = 1 << FixedPointShift
)

// ErrOutOfRange is raised when an offset outside the built range is requested
var ErrOutOfRange = errors.New("semitone offset out of range")

// UsageError reports a caller contract violation. It is raised with panic.
type UsageError struct {
	Op  string
	Err error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("pitch: %s: %v", e.Op, e.Err)
}

func (e *UsageError) Unwrap() error { return e.Err }

// Table maps semitone offsets in [Min, Max] to frequency ratios
type Table struct {
	ratios []float64
	origin int
}

// Build creates a table covering minOffset..maxOffset inclusive.
// minOffset must be <= 0 and maxOffset >= 0.
func Build(minOffset, maxOffset int) *Table {
	if minOffset > 0 || maxOffset < 0 {
		panic(&UsageError{
			Op:  "build",
			Err: fmt.Errorf("range [%d, %d] must include 0", minOffset, maxOffset),
		})
	}

	t := &Table{
		ratios: make([]float64, maxOffset-minOffset+1),
		origin: -minOffset,
	}
	t.ratios[t.origin] = 1.0

	val := RatioConstant
	for k := 1; k <= maxOffset; k++ {
		t.ratios[t.origin+k] = val
		val *= RatioConstant
	}

	val = InverseRatioConstant
	for k := -1; k >= minOffset; k-- {
		t.ratios[t.origin+k] = val
		val *= InverseRatioConstant
	}

	return t
}

// RatioAt returns the ratio for offset. Offsets outside the table panic.
func (t *Table) RatioAt(offset int) float64 {
	if !t.Covers(offset) {
		panic(&UsageError{
			Op:  "ratio",
			Err: fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, offset, t.Min(), t.Max()),
		})
	}
	return t.ratios[offset+t.origin]
}

// Covers reports whether offset is inside the table
func (t *Table) Covers(offset int) bool {
	if t == nil {
		return false
	}
	i := offset + t.origin
	return i >= 0 && i < len(t.ratios)
}

// Min returns the lowest covered offset
func (t *Table) Min() int { return -t.origin }

// Max returns the highest covered offset
func (t *Table) Max() int { return len(t.ratios) - 1 - t.origin }

// Len returns the number of entries
func (t *Table) Len() int { return len(t.ratios) }

// StepFor converts a ratio into a 24.8 fixed-point cursor step
func StepFor(ratio float64) int {
	return int(math.Round(ratio * fixedPointOne))
}
