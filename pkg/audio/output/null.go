// ABOUTME: Headless audio output
// ABOUTME: Consumes readers at real-time pace without an audio device
package output

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultNullPeriod is how much audio the null backend consumes per tick
const DefaultNullPeriod = 10 * time.Millisecond

// Null discards audio at the rate a device would consume it
type Null struct {
	period time.Duration

	mu         sync.Mutex
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	chunkBytes int
	volume     int
	muted      bool

	consumed atomic.Int64
}

// NewNull creates a headless output ticking every DefaultNullPeriod
func NewNull() *Null {
	return NewNullWithPeriod(DefaultNullPeriod)
}

// NewNullWithPeriod creates a headless output with a custom tick
func NewNullWithPeriod(period time.Duration) *Null {
	if period <= 0 {
		period = DefaultNullPeriod
	}
	return &Null{period: period, volume: 100}
}

// Open sets the consumption rate
func (n *Null) Open(sampleRate, channels int) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.ctx == nil {
		n.ctx, n.cancel = context.WithCancel(context.Background())
	}
	frames := int(int64(sampleRate) * int64(n.period) / int64(time.Second))
	if frames < 1 {
		frames = 1
	}
	n.chunkBytes = frames * channels * 2
	return nil
}

// Play consumes r in a background goroutine
func (n *Null) Play(r io.Reader) (Player, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.ctx == nil {
		return nil, ErrNotOpen
	}

	ctx, cancel := context.WithCancel(n.ctx)
	p := &nullPlayer{cancel: cancel, done: make(chan struct{})}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer close(p.done)
		n.drain(ctx, r, n.chunkBytes)
	}()
	return p, nil
}

func (n *Null) drain(ctx context.Context, r io.Reader, chunkBytes int) {
	ticker := time.NewTicker(n.period)
	defer ticker.Stop()

	buf := make([]byte, chunkBytes)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			got, err := r.Read(buf)
			n.consumed.Add(int64(got))
			if err != nil {
				return
			}
		}
	}
}

// Consumed returns the total bytes read from all players
func (n *Null) Consumed() int64 {
	return n.consumed.Load()
}

// SetVolume records the volume
func (n *Null) SetVolume(volume int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.volume = clampVolume(volume)
}

// SetMuted records the mute state
func (n *Null) SetMuted(muted bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.muted = muted
}

// Volume returns the effective volume multiplier
func (n *Null) Volume() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return getVolumeMultiplier(n.volume, n.muted)
}

// Close stops all players and waits for them to exit
func (n *Null) Close() error {
	n.mu.Lock()
	cancel := n.cancel
	n.ctx, n.cancel = nil, nil
	n.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	n.wg.Wait()
	return nil
}

type nullPlayer struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (p *nullPlayer) Close() error {
	p.cancel()
	<-p.done
	return nil
}
