// ABOUTME: Main player application orchestration
// ABOUTME: Wires instruments, audio output, remote control, metrics and the hotspot
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Sendspin/notewave/internal/config"
	"github.com/Sendspin/notewave/internal/discovery"
	"github.com/Sendspin/notewave/internal/instrument"
	"github.com/Sendspin/notewave/internal/metrics"
	"github.com/Sendspin/notewave/internal/remote"
	"github.com/Sendspin/notewave/internal/scene"
	"github.com/Sendspin/notewave/internal/ui"
	"github.com/Sendspin/notewave/pkg/audio"
	"github.com/Sendspin/notewave/pkg/audio/output"
	"github.com/Sendspin/notewave/pkg/musicwave"
	"github.com/Sendspin/notewave/pkg/samplebank"
	"github.com/rs/zerolog"
)

// ErrUnknownInstrument is returned for names not in the config
var ErrUnknownInstrument = errors.New("unknown instrument")

// statusInterval paces playback updates sent to the status func
const statusInterval = 100 * time.Millisecond

// Config holds what the app needs beyond the settings file
type Config struct {
	Settings *config.Config
	// Output defaults to a null output
	Output output.Output
	// Scene defaults to a scene that logs cues
	Scene instrument.Scene
	// StatePath persists the hotspot when set
	StatePath string
	Logger    zerolog.Logger
}

// App plays the configured instruments
type App struct {
	settings  *config.Config
	statePath string
	log       zerolog.Logger

	bank    *samplebank.Bank
	metrics *metrics.Metrics
	out     output.Output
	players map[string]*instrument.Player
	order   []string
	sinks   []output.Player

	metricsServer *metrics.Server
	remote        *remote.Server
	discovery     *discovery.Manager

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	timers map[string]*time.Timer
	status func(ui.StatusMsg)

	hotspotMu sync.Mutex
	hotspot   scene.Hotspot
}

var (
	_ remote.Conductor = (*App)(nil)
	_ scene.Dispatcher = (*App)(nil)
)

// New builds the sample bank and every instrument. Samples that fail to
// load are logged and leave their slot empty.
func New(cfg Config) (*App, error) {
	if cfg.Settings == nil {
		return nil, errors.New("settings are required")
	}
	settings := cfg.Settings
	log := cfg.Logger.With().Str("component", "app").Logger()

	out := cfg.Output
	if out == nil {
		out = output.NewNull()
	}
	sc := cfg.Scene
	if sc == nil {
		sc = instrument.NewLogScene(cfg.Logger)
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		settings:  settings,
		statePath: cfg.StatePath,
		log:       log,
		bank: samplebank.New(samplebank.Config{
			Dir:        settings.Samples.Dir,
			SampleRate: settings.Output.SampleRate,
			Logger:     &cfg.Logger,
		}),
		metrics: metrics.New(),
		out:     out,
		players: make(map[string]*instrument.Player),
		ctx:     ctx,
		cancel:  cancel,
		timers:  make(map[string]*time.Timer),
		hotspot: settings.HotspotState(),
	}

	if names, err := a.bank.Available(); err != nil {
		log.Warn().Err(err).Str("dir", settings.Samples.Dir).Msg("sample directory not readable")
	} else {
		log.Debug().Strs("files", names).Msg("samples available")
	}

	for _, ic := range settings.Instruments {
		p, err := instrument.New(ic, a.bank, sc,
			instrument.WithLogger(cfg.Logger),
			instrument.WithResampler(
				musicwave.WithSelection(settings.SelectionRule()),
				musicwave.WithTableHook(a.metrics.TableRebuilt()),
			),
			instrument.WithOnPull(a.metrics.BytesPulled(ic.Name)),
		)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to create instrument %q: %w", ic.Name, err)
		}
		if err := p.Load(ic.Samples); err != nil {
			log.Warn().Err(err).Str("instrument", ic.Name).Msg("instrument has missing samples")
		}
		a.players[ic.Name] = p
		a.order = append(a.order, ic.Name)
	}

	if a.statePath != "" {
		if err := scene.LoadFile(&a.hotspot, a.statePath); err != nil {
			log.Warn().Err(err).Str("path", a.statePath).Msg("hotspot state not loaded, using defaults")
			a.hotspot = settings.HotspotState()
		}
	}

	log.Info().
		Int("instruments", len(a.order)).
		Int("samples", a.bank.Len()).
		Int("sample_rate", settings.Output.SampleRate).
		Str("selection", settings.SelectionRule().String()).
		Msg("app ready")
	return a, nil
}

// Start opens the output, attaches every instrument stream and starts the
// optional servers
func (a *App) Start() error {
	if err := a.out.Open(a.settings.Output.SampleRate, 1); err != nil {
		return fmt.Errorf("failed to open audio output: %w", err)
	}
	for _, name := range a.order {
		sink, err := a.out.Play(a.players[name].Stream())
		if err != nil {
			return fmt.Errorf("failed to play %q: %w", name, err)
		}
		a.sinks = append(a.sinks, sink)
	}

	if a.settings.Metrics.Enabled {
		a.metricsServer = metrics.NewServer(a.metrics, a.settings.Metrics.Port, a.settings.Metrics.Profiling, a.log)
		if err := a.metricsServer.Run(); err != nil {
			return err
		}
	}

	if a.settings.Remote.Enabled {
		a.remote = remote.NewServer(remote.Config{
			Port:   a.settings.Remote.Port,
			Name:   a.settings.Remote.Name,
			Logger: a.log,
		}, a)
		if err := a.remote.Start(); err != nil {
			return fmt.Errorf("failed to start remote server: %w", err)
		}

		if a.settings.Remote.MDNS {
			a.discovery = discovery.NewManager(discovery.Config{
				ServiceName: a.settings.Remote.Name,
				Port:        a.settings.Remote.Port,
				Path:        remote.Path,
				Logger:      a.log,
			})
			if err := a.discovery.Advertise(); err != nil {
				// remote control still works by address
				a.log.Warn().Err(err).Msg("mDNS advertisement failed")
			}
		}
	}

	a.wg.Add(1)
	go a.statusLoop()
	return nil
}

// Close stops everything Start started and saves the hotspot
func (a *App) Close(ctx context.Context) error {
	a.cancel()

	a.mu.Lock()
	for name, t := range a.timers {
		t.Stop()
		delete(a.timers, name)
	}
	a.mu.Unlock()

	var errs []error
	if a.discovery != nil {
		a.discovery.Stop()
	}
	if a.remote != nil {
		errs = append(errs, a.remote.Shutdown(ctx))
	}
	if a.metricsServer != nil {
		errs = append(errs, a.metricsServer.Shutdown(ctx))
	}
	for _, sink := range a.sinks {
		errs = append(errs, sink.Close())
	}
	a.sinks = nil
	errs = append(errs, a.out.Close())
	a.wg.Wait()

	if a.statePath != "" {
		hs := a.Hotspot()
		if err := scene.SaveFile(&hs, a.statePath); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SetStatusFunc sets where status updates go, typically the TUI
func (a *App) SetStatusFunc(f func(ui.StatusMsg)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = f
}

// Metrics returns the app's metrics
func (a *App) Metrics() *metrics.Metrics { return a.metrics }

// RemoteAddr returns the remote server address, empty when disabled
func (a *App) RemoteAddr() string {
	if a.remote == nil || a.remote.Addr() == nil {
		return ""
	}
	return a.remote.Addr().String()
}

// Instruments returns instrument names in config order
func (a *App) Instruments() []string {
	names := make([]string, len(a.order))
	copy(names, a.order)
	return names
}

// Player returns the named instrument
func (a *App) Player(name string) (*instrument.Player, error) {
	p, ok := a.players[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInstrument, name)
	}
	return p, nil
}

// Trigger plays the named instrument's lead-in
func (a *App) Trigger(name string) error {
	p, err := a.Player(name)
	if err != nil {
		return err
	}
	p.Trigger()
	return nil
}

// Start begins pitch on the named instrument for duration, or for the
// configured note duration when duration is not positive. The rest
// animation follows when the duration elapses.
func (a *App) Start(name string, pitch int, duration time.Duration) (int, bool, error) {
	p, err := a.Player(name)
	if err != nil {
		return -1, false, err
	}
	if duration <= 0 {
		duration = a.settings.NoteDuration()
	}

	ok := p.Start(pitch, audio.BytesForDuration(a.settings.Output.SampleRate, duration))
	a.metrics.NoteStarted(name, ok)
	a.scheduleStop(name, p, duration)

	st := p.Status()
	a.notify(statusMsg(st))
	return st.Stream.ActiveSlot, ok, nil
}

// Play starts pitch on the named instrument with the configured duration
func (a *App) Play(name string, pitch int) (bool, error) {
	_, ok, err := a.Start(name, pitch, 0)
	return ok, err
}

// Stop plays the named instrument's rest animation
func (a *App) Stop(name string) error {
	p, err := a.Player(name)
	if err != nil {
		return err
	}
	a.cancelStop(name)
	p.Stop()
	a.notify(statusMsg(p.Status()))
	return nil
}

// Reset silences the named instrument and starts a new session
func (a *App) Reset(name string) error {
	p, err := a.Player(name)
	if err != nil {
		return err
	}
	a.cancelStop(name)
	p.Reset()
	a.notify(statusMsg(p.Status()))
	return nil
}

// ResetAll resets every instrument
func (a *App) ResetAll() {
	for _, name := range a.order {
		a.Reset(name)
	}
}

// PlaySequence triggers the instrument, then plays pitches one note
// duration apart and stops it
func (a *App) PlaySequence(ctx context.Context, name string, pitches []int) error {
	if err := a.Trigger(name); err != nil {
		return err
	}
	defer a.Stop(name)

	for _, pitch := range pitches {
		ok, err := a.Play(name, pitch)
		if err != nil {
			return err
		}
		a.log.Info().Str("instrument", name).Int("pitch", pitch).Bool("sounding", ok).Msg("note")

		select {
		case <-time.After(a.settings.NoteDuration()):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (a *App) scheduleStop(name string, p *instrument.Player, d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if t, ok := a.timers[name]; ok {
		t.Stop()
	}
	a.timers[name] = time.AfterFunc(d, func() {
		p.Stop()
		a.notify(statusMsg(p.Status()))
	})
}

func (a *App) cancelStop(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if t, ok := a.timers[name]; ok {
		t.Stop()
		delete(a.timers, name)
	}
}

func (a *App) notify(msg ui.StatusMsg) {
	a.mu.Lock()
	f := a.status
	a.mu.Unlock()
	if f != nil {
		f(msg)
	}
}

func statusMsg(st instrument.Status) ui.StatusMsg {
	pitch := st.LastPitch
	return ui.StatusMsg{
		Instrument: st.Name,
		Pitch:      &pitch,
		Slot:       st.Stream.ActiveSlot,
		Remaining:  st.Stream.Remaining,
		Playing:    st.Playing,
	}
}

// statusLoop reports instruments that still owe audio
func (a *App) statusLoop() {
	defer a.wg.Done()

	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, name := range a.order {
				st := a.players[name].Status()
				if st.Stream.Remaining > 0 {
					a.notify(statusMsg(st))
				}
			}
		case <-a.ctx.Done():
			return
		}
	}
}
