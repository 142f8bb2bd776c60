// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends
package output

import (
	"errors"
	"io"
)

// ErrNotOpen is returned by Play before Open succeeds
var ErrNotOpen = errors.New("output not initialized")

// Output represents an audio output device
type Output interface {
	// Open initializes the device for 16-bit PCM
	Open(sampleRate, channels int) error

	// Play starts pulling r until the player is closed
	Play(r io.Reader) (Player, error)

	// SetVolume sets the volume (0-100) for every player
	SetVolume(volume int)

	// SetMuted mutes or unmutes every player
	SetMuted(muted bool)

	// Close stops all players and releases the device
	Close() error
}

// Player is one reader being played
type Player interface {
	Close() error
}

// getVolumeMultiplier calculates volume multiplier
func getVolumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}

func clampVolume(volume int) int {
	if volume < 0 {
		return 0
	}
	if volume > 100 {
		return 100
	}
	return volume
}
