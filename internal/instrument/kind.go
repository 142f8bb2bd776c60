// ABOUTME: Instrument kinds known to the music room
// ABOUTME: Parses kind names from configuration
package instrument

import (
	"fmt"
	"strings"
)

// Kind selects an instrument's animation behavior
type Kind int

const (
	Piano Kind = iota
	Bass
	Bells
	Snake
)

var kindNames = [...]string{"piano", "bass", "bells", "snake"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists every kind in declaration order
func Kinds() []Kind {
	return []Kind{Piano, Bass, Bells, Snake}
}

// ParseKind converts a config name into a Kind
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown instrument kind %q (supported: %s)", s, strings.Join(kindNames[:], ", "))
}
