// ABOUTME: Command-line flags for the notewave player
// ABOUTME: Registered on a pflag set and applied over the loaded config
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Flags holds command-line settings
type Flags struct {
	ConfigPath string
	Notes      string
	Instrument string
	NoTUI      bool
	StatePath  string
	LogFile    string
	Debug      bool
}

// AddFlags registers the player flags on fs
func (f *Flags) AddFlags(fs *pflag.FlagSet) *Flags {
	fs.StringVarP(&f.ConfigPath, "config", "c", f.ConfigPath, "Path to the instrument bank config")
	fs.StringVarP(&f.Notes, "notes", "n", f.Notes, "Comma-separated pitches to play and exit, e.g. 60,62,63")
	fs.StringVarP(&f.Instrument, "instrument", "i", f.Instrument, "Instrument for --notes (default: first configured)")
	fs.BoolVar(&f.NoTUI, "no-tui", f.NoTUI, "Disable the keyboard TUI")
	fs.StringVar(&f.StatePath, "state", f.StatePath, "Hotspot state file to load and save")
	fs.StringVar(&f.LogFile, "log-file", f.LogFile, "Also write logs to this file")
	fs.BoolVarP(&f.Debug, "debug", "d", f.Debug, "Enable debug logging")
	return f
}

// Apply overrides config values set by flags
func (f *Flags) Apply(c *Config) {
	if f.Debug {
		c.Log.Level = "debug"
	}
}

// ParseNotes parses a comma-separated pitch list
func ParseNotes(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var notes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid note %q: %w", part, err)
		}
		notes = append(notes, n)
	}
	return notes, nil
}
