// ABOUTME: Decoded sample implementing musicwave.Wave
// ABOUTME: Guards PCM bytes so readers can pin them during playback
package samplebank

import (
	"sync"
	"time"

	"github.com/Sendspin/notewave/pkg/audio"
	"github.com/google/uuid"
)

// Sample is one decoded recording at the bank's sample rate
type Sample struct {
	ID     uuid.UUID
	Name   string
	Format audio.Format

	mu   sync.RWMutex
	data []byte
}

func newSample(name string, pcm *audio.PCM) *Sample {
	return &Sample{
		ID:     uuid.New(),
		Name:   name,
		Format: pcm.Format,
		data:   pcm.Data,
	}
}

// Size returns the PCM length in bytes
func (s *Sample) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Lock pins the PCM bytes for reading. Multiple readers may hold it at once.
func (s *Sample) Lock() []byte {
	s.mu.RLock()
	return s.data
}

// Unlock releases a Lock
func (s *Sample) Unlock([]byte) {
	s.mu.RUnlock()
}

// Replace swaps in new PCM once all readers have unlocked. A slot already
// playing this sample stops at the end of the new data.
func (s *Sample) Replace(pcm *audio.PCM) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Format = pcm.Format
	s.data = pcm.Data
}

// Duration returns the playing time at the sample's rate
func (s *Sample) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := audio.PCM{Format: s.Format, Data: s.data}
	return p.Duration()
}
