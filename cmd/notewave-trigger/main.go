// ABOUTME: Sends notes and hotspot requests to a running notewave player
// ABOUTME: Finds the player over mDNS when no address is given
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Sendspin/notewave/internal/config"
	"github.com/Sendspin/notewave/internal/discovery"
	"github.com/Sendspin/notewave/internal/logger"
	"github.com/Sendspin/notewave/internal/remote"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "notewave-trigger: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		addr       string
		instrument string
		notes      string
		durationMs int
		click      bool
		signal     int
		reset      bool
		timeout    time.Duration
		debug      bool
	)
	fs := pflag.NewFlagSet("notewave-trigger", pflag.ContinueOnError)
	fs.StringVarP(&addr, "addr", "a", "", "Player host:port (default: discover over mDNS)")
	fs.StringVarP(&instrument, "instrument", "i", "", "Instrument to play (default: first the player reports)")
	fs.StringVarP(&notes, "notes", "n", "", "Comma-separated pitches to play")
	fs.IntVar(&durationMs, "duration-ms", 0, "Note duration (default: the player's)")
	fs.BoolVar(&click, "click", false, "Click the wheel hotspot")
	fs.IntVar(&signal, "signal", -1, "Send a hotspot signal value (0 closes the gate)")
	fs.BoolVar(&reset, "reset", false, "Reset the instrument")
	fs.DurationVar(&timeout, "timeout", 5*time.Second, "Discovery and connect timeout")
	fs.BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	level := "info"
	if debug {
		level = "debug"
	}
	log, err := logger.New(logger.Config{Level: level, Console: true}, os.Stderr)
	if err != nil {
		return err
	}

	pitches, err := config.ParseNotes(notes)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	url, err := resolve(ctx, addr, log)
	if err != nil {
		return err
	}

	c, err := remote.Dial(ctx, url)
	if err != nil {
		return err
	}
	defer c.Close()

	hello := c.Hello()
	log.Info().Str("player", hello.Name).Str("version", hello.Version).Strs("instruments", hello.Instruments).Msg("connected")

	if instrument == "" && len(hello.Instruments) > 0 {
		instrument = hello.Instruments[0]
	}

	if signal >= 0 {
		if _, err := c.Send(remote.TypeHotspotSignal, remote.HotspotSignal{Value: signal}); err != nil {
			return err
		}
	}
	if click {
		if _, err := c.Send(remote.TypeHotspotClick, nil); err != nil {
			return err
		}
	}
	if reset {
		if _, err := c.Send(remote.TypeNoteReset, remote.Target{Instrument: instrument}); err != nil {
			return err
		}
	}
	if len(pitches) == 0 {
		return nil
	}

	if _, err := c.Send(remote.TypeNoteTrigger, remote.Target{Instrument: instrument}); err != nil {
		return err
	}
	duration := time.Duration(durationMs) * time.Millisecond
	for i, pitch := range pitches {
		ack, err := c.Start(instrument, pitch, duration)
		if err != nil {
			return err
		}
		ev := log.Info().Str("instrument", instrument).Int("pitch", pitch).Bool("sounding", ack.OK)
		if ack.Slot != nil {
			ev = ev.Int("slot", *ack.Slot)
		}
		ev.Msg("note")

		if i < len(pitches)-1 && duration > 0 {
			time.Sleep(duration)
		}
	}
	return nil
}

// resolve returns the websocket URL for addr, browsing mDNS when it is empty
func resolve(ctx context.Context, addr string, log zerolog.Logger) (string, error) {
	if addr != "" {
		return fmt.Sprintf("ws://%s%s", addr, remote.Path), nil
	}

	log.Info().Msg("browsing for players")
	disc := discovery.NewManager(discovery.Config{Logger: log})
	disc.Browse()
	defer disc.Stop()

	select {
	case ep := <-disc.Endpoints():
		log.Info().Str("name", ep.Name).Str("url", ep.URL()).Msg("found player")
		return ep.URL(), nil
	case <-ctx.Done():
		return "", fmt.Errorf("no player found: %w", ctx.Err())
	}
}
