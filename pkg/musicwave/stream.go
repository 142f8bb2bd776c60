// ABOUTME: Goroutine-safe io.Reader over a Resampler
// ABOUTME: Lets an audio backend pull while notes are triggered elsewhere
package musicwave

import (
	"sync"
)

// Stream guards a Resampler with a mutex and exposes it as an io.Reader
type Stream struct {
	mu sync.Mutex
	r  *Resampler

	// OnPull, if set, receives the byte count of every non-empty pull
	OnPull func(n int)
}

// NewStream wraps r
func NewStream(r *Resampler) *Stream {
	return &Stream{r: r}
}

// BeginPlayback starts a note; see Resampler.BeginPlayback
func (s *Stream) BeginPlayback(requestedPitch, budgetBytes int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.BeginPlayback(requestedPitch, budgetBytes)
}

// Pull reads into dst; see Resampler.Pull
func (s *Stream) Pull(dst []byte) int {
	s.mu.Lock()
	n := s.r.Pull(dst)
	s.mu.Unlock()

	if n > 0 && s.OnPull != nil {
		s.OnPull(n)
	}
	return n
}

// Read fills p with the current note, padding with silence.
// It always reports len(p) and never returns io.EOF, so a backend
// player keeps pulling between notes.
func (s *Stream) Read(p []byte) (int, error) {
	clear(p)
	s.Pull(p)
	return len(p), nil
}

// Reset stops the current note
func (s *Stream) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.Reset()
}

// Active reports whether a note is still playing
func (s *Stream) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Active()
}

// State returns a snapshot of the streaming state
func (s *Stream) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.State()
}
