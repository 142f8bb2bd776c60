// ABOUTME: Renders a note sequence for one instrument to an audio file
// ABOUTME: Pulls the note stream in fixed-size chunks into a WAV or raw PCM encoder
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Sendspin/notewave/internal/config"
	"github.com/Sendspin/notewave/internal/instrument"
	"github.com/Sendspin/notewave/internal/logger"
	"github.com/Sendspin/notewave/pkg/audio"
	"github.com/Sendspin/notewave/pkg/audio/encode"
	"github.com/Sendspin/notewave/pkg/musicwave"
	"github.com/Sendspin/notewave/pkg/samplebank"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "notewave-render: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		configPath string
		name       string
		notes      string
		outPath    string
		chunk      int
		durationMs int
	)
	fs := pflag.NewFlagSet("notewave-render", pflag.ContinueOnError)
	fs.StringVarP(&configPath, "config", "c", "", "Path to the instrument bank config")
	fs.StringVarP(&name, "instrument", "i", "", "Instrument to render (default: first configured)")
	fs.StringVarP(&notes, "notes", "n", "60", "Comma-separated pitches")
	fs.StringVarP(&outPath, "out", "o", "notes.wav", "Output file (.wav or .pcm)")
	fs.IntVar(&chunk, "chunk", 512, "Bytes pulled per read")
	fs.IntVar(&durationMs, "duration-ms", 0, "Note duration (default: from config)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if chunk < 2 || chunk%2 != 0 {
		return fmt.Errorf("chunk must be a positive even byte count, got %d", chunk)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	pitches, err := config.ParseNotes(notes)
	if err != nil {
		return err
	}
	if len(pitches) == 0 {
		return errors.New("no notes to render")
	}

	log, err := logger.Setup(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}

	ic := cfg.Instruments[0]
	if name != "" {
		var ok bool
		if ic, ok = cfg.Instrument(name); !ok {
			return fmt.Errorf("unknown instrument %q", name)
		}
	}

	bank := samplebank.New(samplebank.Config{
		Dir:        cfg.Samples.Dir,
		SampleRate: cfg.Output.SampleRate,
		Logger:     &log,
	})
	p, err := instrument.New(ic, bank, nil,
		instrument.WithLogger(log),
		instrument.WithResampler(musicwave.WithSelection(cfg.SelectionRule())),
	)
	if err != nil {
		return err
	}
	if err := p.Load(ic.Samples); err != nil {
		log.Warn().Err(err).Msg("rendering with missing samples")
	}

	budget := cfg.NoteBudget()
	if durationMs > 0 {
		budget = audio.BytesForDuration(cfg.Output.SampleRate, time.Duration(durationMs)*time.Millisecond)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()

	enc, err := encode.ForFile(outPath, f, cfg.Output.SampleRate)
	if err != nil {
		return err
	}

	total, err := render(p, pitches, budget, chunk, enc)
	if err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	log.Info().
		Str("instrument", ic.Name).
		Str("file", outPath).
		Int("bytes", total).
		Dur("duration", time.Duration(total/audio.FrameBytes)*time.Second/time.Duration(cfg.Output.SampleRate)).
		Msg("rendered")
	return f.Close()
}

// render plays each pitch for budget bytes, pulling chunk bytes at a time
// into w, and returns the bytes written
func render(p *instrument.Player, pitches []int, budget, chunk int, w io.Writer) (int, error) {
	buf := make([]byte, chunk)
	stream := p.Stream()
	total := 0

	p.Trigger()
	for _, pitch := range pitches {
		p.Start(pitch, budget)
		for {
			clear(buf)
			n := stream.Pull(buf)
			if n == 0 {
				break
			}
			if _, err := w.Write(buf[:n]); err != nil {
				return total, err
			}
			total += n
		}
	}
	p.Stop()
	return total, nil
}
