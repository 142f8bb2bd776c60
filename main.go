// ABOUTME: Entry point for the notewave player
// ABOUTME: Parses CLI flags, loads the instrument bank and plays from the keyboard or a note list
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sendspin/notewave/internal/app"
	"github.com/Sendspin/notewave/internal/config"
	"github.com/Sendspin/notewave/internal/logger"
	"github.com/Sendspin/notewave/internal/ui"
	"github.com/Sendspin/notewave/internal/version"
	"github.com/Sendspin/notewave/pkg/audio/output"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "notewave: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := &config.Flags{LogFile: "notewave.log"}
	fs := pflag.NewFlagSet(version.Product, pflag.ContinueOnError)
	flags.AddFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	flags.Apply(cfg)

	notes, err := config.ParseNotes(flags.Notes)
	if err != nil {
		return err
	}
	useTUI := !flags.NoTUI && len(notes) == 0

	// TUI mode logs only to the file
	var w io.Writer = os.Stdout
	if flags.LogFile != "" {
		f, err := os.OpenFile(flags.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
		if err != nil {
			return fmt.Errorf("error opening log file: %w", err)
		}
		defer f.Close()
		if useTUI {
			w = f
		} else {
			w = io.MultiWriter(os.Stdout, f)
		}
	} else if useTUI {
		w = io.Discard
	}

	log, err := logger.Setup(cfg.Log, w)
	if err != nil {
		return err
	}
	log.Info().Str("version", version.String()).Msg("starting notewave")

	var out output.Output = output.NewNull()
	if cfg.Output.Backend == config.BackendOto {
		out = output.NewOto(log)
	}

	a, err := app.New(app.Config{
		Settings:  cfg,
		Output:    out,
		StatePath: flags.StatePath,
		Logger:    log,
	})
	if err != nil {
		return err
	}
	if err := a.Start(); err != nil {
		a.Close(context.Background())
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Close(ctx); err != nil {
			log.Error().Err(err).Msg("error closing player")
		}
		log.Info().Msg("player stopped")
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case len(notes) > 0:
		return playNotes(ctx, a, flags.Instrument, notes, log)
	case useTUI:
		return runTUI(ctx, a, log)
	default:
		log.Info().Msg("TUI disabled, waiting for remote notes")
		<-ctx.Done()
		log.Info().Msg("shutdown signal received")
		return nil
	}
}

// playNotes plays the note list on one instrument and returns
func playNotes(ctx context.Context, a *app.App, name string, notes []int, log zerolog.Logger) error {
	if name == "" {
		name = a.Instruments()[0]
	}
	log.Info().Str("instrument", name).Ints("notes", notes).Msg("playing notes")

	err := a.PlaySequence(ctx, name, notes)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runTUI runs the keyboard until the user quits or a signal arrives
func runTUI(ctx context.Context, a *app.App, log zerolog.Logger) error {
	kb := ui.NewKeyboard()
	prog := ui.Run(kb, a.Instruments())
	a.SetStatusFunc(func(msg ui.StatusMsg) { prog.Send(msg) })
	defer a.SetStatusFunc(nil)

	go a.RunKeyboard(ctx, kb)
	go func() {
		<-ctx.Done()
		prog.Quit()
	}()

	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("TUI failed: %w", err)
	}
	log.Info().Msg("received quit from TUI")
	return nil
}
