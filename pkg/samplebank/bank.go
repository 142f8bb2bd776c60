// ABOUTME: Sample bank that decodes and caches sample files
// ABOUTME: Converts every sample to one playback rate on load
package samplebank

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Sendspin/notewave/pkg/audio"
	"github.com/Sendspin/notewave/pkg/audio/decode"
	"github.com/Sendspin/notewave/pkg/audio/resample"
	"github.com/Sendspin/notewave/pkg/musicwave"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when a sample file does not exist
var ErrNotFound = errors.New("sample not found")

// Config holds bank settings
type Config struct {
	// Dir is prepended to relative sample names
	Dir string
	// SampleRate is the rate every sample is converted to
	SampleRate int
	// Logger receives load messages; nil disables logging
	Logger *zerolog.Logger
}

// Bank caches decoded samples by name
type Bank struct {
	config Config
	log    zerolog.Logger

	mu      sync.Mutex
	samples map[string]*Sample
}

var _ musicwave.Loader = (*Bank)(nil)

// New creates an empty bank
func New(config Config) *Bank {
	log := zerolog.Nop()
	if config.Logger != nil {
		log = config.Logger.With().Str("component", "samplebank").Logger()
	}
	return &Bank{
		config:  config,
		log:     log,
		samples: make(map[string]*Sample),
	}
}

// SampleRate returns the bank's playback rate
func (b *Bank) SampleRate() int {
	return b.config.SampleRate
}

// Load returns the named sample, decoding it on first use
func (b *Bank) Load(name string) (musicwave.Wave, error) {
	s, err := b.Sample(name)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Sample is Load with the concrete type
func (b *Bank) Sample(name string) (*Sample, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.samples[name]; ok {
		return s, nil
	}

	path := b.path(name)
	pcm, err := decode.DecodeFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to load sample %q: %w", name, err)
	}

	s := newSample(name, b.convert(pcm))
	b.samples[name] = s

	b.log.Info().
		Str("sample", name).
		Str("id", s.ID.String()).
		Int("source_rate", pcm.Format.SampleRate).
		Int("rate", s.Format.SampleRate).
		Dur("duration", s.Duration()).
		Msg("sample loaded")
	return s, nil
}

// Register adds in-memory PCM under name, replacing any cached sample
func (b *Bank) Register(name string, pcm *audio.PCM) *Sample {
	converted := b.convert(pcm)

	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.samples[name]; ok {
		s.Replace(converted)
		return s
	}
	s := newSample(name, converted)
	b.samples[name] = s
	return s
}

// Names returns the cached sample names in sorted order
func (b *Bank) Names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	names := make([]string, 0, len(b.samples))
	for name := range b.samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of cached samples
func (b *Bank) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples)
}

// Available lists sample files in Dir that a decoder understands
func (b *Bank) Available() ([]string, error) {
	if b.config.Dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(b.config.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := decode.ForFile(e.Name()); err == nil {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (b *Bank) path(name string) string {
	if filepath.IsAbs(name) || b.config.Dir == "" {
		return name
	}
	return filepath.Join(b.config.Dir, name)
}

func (b *Bank) convert(pcm *audio.PCM) *audio.PCM {
	conv := resample.New(pcm.Format.SampleRate, b.config.SampleRate)
	if conv.Identity() {
		return audio.NewPCM(pcm.Format.SampleRate, pcm.Data)
	}
	out := conv.Convert(audio.BytesToInt16s(pcm.Data))
	return audio.NewPCM(b.config.SampleRate, audio.Int16sToBytes(out))
}
