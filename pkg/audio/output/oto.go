// ABOUTME: Oto-based audio output implementation
// ABOUTME: One oto player per stream, mixed by the oto context
package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/rs/zerolog"
)

// Oto output implementation using oto library
type Oto struct {
	log zerolog.Logger

	mu         sync.Mutex
	otoCtx     *oto.Context
	players    map[*otoPlayer]struct{}
	sampleRate int
	channels   int
	volume     int
	muted      bool
}

// NewOto creates a new Oto output
func NewOto(log zerolog.Logger) Output {
	return &Oto{
		log:     log.With().Str("component", "output").Logger(),
		players: make(map[*otoPlayer]struct{}),
		volume:  100,
	}
}

// Open initializes the output device
func (o *Oto) Open(sampleRate, channels int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.otoCtx != nil && o.sampleRate == sampleRate && o.channels == channels {
		o.log.Debug().Msg("audio output already initialized with same format, reusing context")
		return nil
	}

	// oto allows one context per process
	if o.otoCtx != nil {
		o.log.Warn().
			Int("from_rate", o.sampleRate).Int("from_channels", o.channels).
			Int("to_rate", sampleRate).Int("to_channels", channels).
			Msg("format change ignored, oto cannot be reinitialized")
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels

	o.log.Info().Int("sample_rate", sampleRate).Int("channels", channels).Msg("audio output initialized")
	return nil
}

// Play starts a new oto player pulling from r
func (o *Oto) Play(r io.Reader) (Player, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.otoCtx == nil {
		return nil, ErrNotOpen
	}

	p := &otoPlayer{owner: o, player: o.otoCtx.NewPlayer(r)}
	p.player.SetVolume(getVolumeMultiplier(o.volume, o.muted))
	p.player.Play()
	o.players[p] = struct{}{}
	return p, nil
}

// SetVolume sets the volume (0-100)
func (o *Oto) SetVolume(volume int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.volume = clampVolume(volume)
	o.applyVolume()
	o.log.Info().Int("volume", o.volume).Msg("volume set")
}

// SetMuted sets mute state
func (o *Oto) SetMuted(muted bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.muted = muted
	o.applyVolume()
	o.log.Info().Bool("muted", muted).Msg("mute changed")
}

func (o *Oto) applyVolume() {
	m := getVolumeMultiplier(o.volume, o.muted)
	for p := range o.players {
		p.player.SetVolume(m)
	}
}

// Close releases output resources
func (o *Oto) Close() error {
	o.mu.Lock()
	players := make([]*otoPlayer, 0, len(o.players))
	for p := range o.players {
		players = append(players, p)
	}
	o.mu.Unlock()

	for _, p := range players {
		p.Close()
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.otoCtx != nil {
		if err := o.otoCtx.Suspend(); err != nil {
			return fmt.Errorf("failed to suspend oto context: %w", err)
		}
	}
	return nil
}

type otoPlayer struct {
	owner  *Oto
	player *oto.Player
	once   sync.Once
}

func (p *otoPlayer) Close() error {
	var err error
	p.once.Do(func() {
		p.owner.mu.Lock()
		delete(p.owner.players, p)
		p.owner.mu.Unlock()
		err = p.player.Close()
	})
	return err
}
