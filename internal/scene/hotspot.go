// ABOUTME: Wheel hotspot that forwards clicks as actions
// ABOUTME: Persists its gate and mode in the number-line state format
package scene

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// StateVersion is written first in every saved hotspot
const StateVersion = 1

// WheelTarget receives the hotspot's actions
const WheelTarget = "CaptainsWheel"

// GoWhere is shown when Go is clicked with the gate closed
const GoWhere = "go where"

// Mode selects the action a click sends
type Mode int

const (
	ModeNone Mode = iota
	ModeStop
	ModeCruise
	ModeGo
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeStop:
		return "stop"
	case ModeCruise:
		return "cruise"
	case ModeGo:
		return "go"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// action returns the action name sent for m, empty for none
func (m Mode) action() string {
	switch m {
	case ModeStop:
		return "Stop"
	case ModeCruise:
		return "Cruise"
	case ModeGo:
		return "Go"
	}
	return ""
}

// Dispatcher delivers hotspot output
type Dispatcher interface {
	Execute(target, action string)
	Display(message string)
}

// Hotspot is a clickable wheel control
type Hotspot struct {
	Gate bool
	Mode Mode
}

// Click sends the mode's action when the gate is open. With the gate
// closed only Go reacts, by asking where to go.
func (h *Hotspot) Click(d Dispatcher) {
	if h.Gate {
		if action := h.Mode.action(); action != "" {
			d.Execute(WheelTarget, action)
		}
		return
	}
	if h.Mode == ModeGo {
		d.Display(GoWhere)
	}
}

// Signal opens the gate for any non-zero value
func (h *Hotspot) Signal(v int) {
	h.Gate = v != 0
}

// Save writes version, gate and mode, one number per line
func (h *Hotspot) Save(w io.Writer, indent int) error {
	gate := 0
	if h.Gate {
		gate = 1
	}
	prefix := strings.Repeat("\t", indent)
	for _, n := range []int{StateVersion, gate, int(h.Mode)} {
		if _, err := fmt.Fprintf(w, "%s%d\n", prefix, n); err != nil {
			return fmt.Errorf("failed to write hotspot state: %w", err)
		}
	}
	return nil
}

// Load reads state written by Save. The version number is not checked.
func (h *Hotspot) Load(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var nums [3]int
	for i := range nums {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return fmt.Errorf("failed to read hotspot state: %w", err)
			}
			return fmt.Errorf("failed to read hotspot state: %w", io.ErrUnexpectedEOF)
		}
		n, err := strconv.Atoi(sc.Text())
		if err != nil {
			return fmt.Errorf("invalid hotspot number %q: %w", sc.Text(), err)
		}
		nums[i] = n
	}

	h.Gate = nums[1] != 0
	h.Mode = Mode(nums[2])
	return nil
}

// ErrUnknownMode is returned by ParseMode
var ErrUnknownMode = errors.New("unknown hotspot mode")

// ParseMode converts a mode name
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{ModeNone, ModeStop, ModeCruise, ModeGo} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return ModeNone, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}
