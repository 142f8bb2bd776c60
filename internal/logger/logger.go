// ABOUTME: Structured logging setup on top of zerolog
// ABOUTME: Configures the global logger used by the application packages
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var pid = os.Getpid()

// Config selects the level and output style
type Config struct {
	Level   string `fig:"level" default:"info"`
	Console bool   `fig:"console"`
	NoColor bool   `fig:"no_color"`
}

// New builds a logger writing to w
func New(cfg Config, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.Console {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.0000", NoColor: cfg.NoColor}
	}

	return zerolog.New(out).Level(level).With().
		Timestamp().
		Int("pid", pid).
		Logger(), nil
}

// Setup builds a logger and installs it as the global zerolog logger
func Setup(cfg Config, w io.Writer) (zerolog.Logger, error) {
	l, err := New(cfg, w)
	if err != nil {
		return l, err
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	log.Logger = l
	return l, nil
}
