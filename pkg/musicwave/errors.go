// ABOUTME: Usage error type for the resampler
// ABOUTME: Contract violations panic with UsageError values
package musicwave

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is raised when slots are loaded before ConfigureSlots
	ErrNotConfigured = errors.New("slots not configured")
	// ErrAlreadyConfigured is raised by a second ConfigureSlots call
	ErrAlreadyConfigured = errors.New("slots already configured")
	// ErrSlotLoaded is raised when a write-once slot is loaded twice
	ErrSlotLoaded = errors.New("slot already loaded")
	// ErrSlotIndex is raised for an index outside the configured slots
	ErrSlotIndex = errors.New("slot index out of range")
)

// UsageError reports a caller contract violation. The resampler raises it
// with panic; it is not meant to be recovered in normal operation.
type UsageError struct {
	Op   string
	Slot int
	Err  error
}

func (e *UsageError) Error() string {
	if e.Slot >= 0 {
		return fmt.Sprintf("musicwave: %s slot %d: %v", e.Op, e.Slot, e.Err)
	}
	return fmt.Sprintf("musicwave: %s: %v", e.Op, e.Err)
}

func (e *UsageError) Unwrap() error { return e.Err }

func usage(op string, slot int, err error) *UsageError {
	return &UsageError{Op: op, Slot: slot, Err: err}
}
