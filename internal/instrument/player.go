// ABOUTME: Instrument player pairing a sample stream with its animation
// ABOUTME: Loads note samples, starts pitched notes and tracks sessions
package instrument

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Sendspin/notewave/pkg/musicwave"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SampleConfig names one recorded note
type SampleConfig struct {
	File  string `fig:"file"`
	Pitch int    `fig:"pitch"`
}

// Config describes one instrument in the bank file
type Config struct {
	Name    string         `fig:"name"`
	Kind    string         `fig:"kind"`
	Samples []SampleConfig `fig:"samples"`
}

// Session identifies one run of an instrument between resets
type Session struct {
	ID      uuid.UUID
	Started time.Time
}

// Option configures a Player
type Option func(*Player)

// WithLogger sets the player's logger
func WithLogger(log zerolog.Logger) Option {
	return func(p *Player) { p.log = log }
}

// WithResampler passes options to the underlying resampler
func WithResampler(opts ...musicwave.Option) Option {
	return func(p *Player) { p.resamplerOpts = append(p.resamplerOpts, opts...) }
}

// WithOnPull is called with the byte count of every non-empty pull
func WithOnPull(f func(n int)) Option {
	return func(p *Player) { p.onPull = f }
}

// Player plays one instrument
type Player struct {
	name string
	kind Kind
	log  zerolog.Logger

	resamplerOpts []musicwave.Option
	onPull        func(int)

	resampler *musicwave.Resampler
	stream    *musicwave.Stream

	mu        sync.Mutex
	behavior  behavior
	session   Session
	lastPitch int
	playing   bool
}

// New creates a player for cfg. scene may be nil.
func New(cfg Config, loader musicwave.Loader, scene Scene, opts ...Option) (*Player, error) {
	kind, err := ParseKind(cfg.Kind)
	if err != nil {
		return nil, err
	}

	p := &Player{
		name:     cfg.Name,
		kind:     kind,
		log:      zerolog.Nop(),
		behavior: newBehavior(kind, scene),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.With().Str("instrument", cfg.Name).Str("kind", kind.String()).Logger()

	p.resampler = musicwave.New(loader, p.resamplerOpts...)
	p.stream = musicwave.NewStream(p.resampler)
	p.stream.OnPull = p.onPull
	p.session = newSession()
	return p, nil
}

func newSession() Session {
	return Session{ID: uuid.New(), Started: time.Now()}
}

// Name returns the configured instrument name
func (p *Player) Name() string { return p.name }

// Kind returns the instrument kind
func (p *Player) Kind() Kind { return p.kind }

// Stream returns the audio stream to hand to an output
func (p *Player) Stream() *musicwave.Stream { return p.stream }

// Load configures one slot per sample and loads each. Slots whose file
// fails to load stay empty; the errors are joined. Load may run once.
func (p *Player) Load(samples []SampleConfig) error {
	p.resampler.ConfigureSlots(len(samples))

	var errs []error
	for i, s := range samples {
		if err := p.resampler.LoadSlot(i, s.File, s.Pitch); err != nil {
			p.log.Warn().Err(err).Str("file", s.File).Int("pitch", s.Pitch).Msg("sample not loaded")
			errs = append(errs, err)
			continue
		}
		p.log.Debug().Int("slot", i).Str("file", s.File).Int("pitch", s.Pitch).Msg("slot loaded")
	}
	return errors.Join(errs...)
}

// Trigger plays the instrument's lead-in animation
func (p *Player) Trigger() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.behavior.trigger()
}

// Start begins pitch for budgetBytes of output. It returns false when no
// sample could be selected; the animation runs either way.
func (p *Player) Start(pitch, budgetBytes int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.behavior.start(pitch)
	p.lastPitch = pitch
	p.playing = true

	ok := p.stream.BeginPlayback(pitch, budgetBytes)
	if !ok {
		p.log.Debug().Int("pitch", pitch).Msg("no sample for note")
	}
	return ok
}

// Stop plays the instrument's rest animation. Audio already owed keeps
// playing until its budget runs out.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.behavior.stop()
	p.playing = false
}

// Reset silences the stream, clears sequencing state and opens a new session
func (p *Player) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stream.Reset()
	p.behavior.reset()
	p.playing = false
	p.session = newSession()
	p.log.Info().Str("session", p.session.ID.String()).Msg("instrument reset")
}

// Session returns the current session
func (p *Player) Session() Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session
}

// Status is a snapshot for display
type Status struct {
	Name      string
	Kind      Kind
	LastPitch int
	Playing   bool
	Stream    musicwave.State
}

// Status returns the player's current status
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Status{
		Name:      p.name,
		Kind:      p.kind,
		LastPitch: p.lastPitch,
		Playing:   p.playing,
		Stream:    p.stream.State(),
	}
}

func (s Status) String() string {
	return fmt.Sprintf("%s (%s) pitch %d slot %d remaining %d",
		s.Name, s.Kind, s.LastPitch, s.Stream.ActiveSlot, s.Stream.Remaining)
}
