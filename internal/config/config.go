// ABOUTME: Application configuration loaded from YAML and environment
// ABOUTME: Describes output, logging, instruments and optional services
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Sendspin/notewave/internal/instrument"
	"github.com/Sendspin/notewave/internal/logger"
	"github.com/Sendspin/notewave/internal/scene"
	"github.com/Sendspin/notewave/pkg/audio"
	"github.com/Sendspin/notewave/pkg/musicwave"
	"github.com/kkyr/fig"
)

// EnvPrefix prefixes environment overrides, e.g. NOTEWAVE_OUTPUT_SAMPLE_RATE
const EnvPrefix = "NOTEWAVE"

// DefaultFile is looked up when no path is given
const DefaultFile = "notewave.yaml"

// Output backends
const (
	BackendOto  = "oto"
	BackendNull = "null"
)

const (
	minSampleRate = 8000
	maxSampleRate = 192000
)

// Config is the whole application configuration
type Config struct {
	Output         Output              `fig:"output"`
	Log            logger.Config       `fig:"log"`
	Samples        Samples             `fig:"samples"`
	Selection      string              `fig:"selection" default:"signed"`
	NoteDurationMs int                 `fig:"note_duration_ms" default:"1500"`
	Metrics        Metrics             `fig:"metrics"`
	Remote         Remote              `fig:"remote"`
	Hotspot        Hotspot             `fig:"hotspot"`
	Instruments    []instrument.Config `fig:"instruments"`
}

// Output selects the playback format
type Output struct {
	SampleRate int    `fig:"sample_rate" default:"22050"`
	Backend    string `fig:"backend" default:"oto"`
}

// Samples locates sample files
type Samples struct {
	Dir string `fig:"dir" default:"samples"`
}

// Metrics configures the prometheus endpoint
type Metrics struct {
	Enabled   bool `fig:"enabled"`
	Port      int  `fig:"port" default:"9090"`
	Profiling bool `fig:"profiling"`
}

// Remote configures the websocket note endpoint
type Remote struct {
	Enabled bool   `fig:"enabled"`
	Port    int    `fig:"port" default:"8937"`
	MDNS    bool   `fig:"mdns"`
	Name    string `fig:"name"`
}

// Hotspot sets the wheel hotspot used when no state file exists
type Hotspot struct {
	Mode string `fig:"mode" default:"go"`
	Open bool   `fig:"open"`
}

// Load reads the config file at path. With an empty path DefaultFile is
// searched in the working directory, ./configs and ~/.notewave.
func Load(path string) (*Config, error) {
	var cfg Config

	file, dirs := DefaultFile, []string{".", "configs"}
	if path != "" {
		file, dirs = filepath.Base(path), []string{filepath.Dir(path)}
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".notewave"))
	}

	if err := fig.Load(&cfg, fig.File(file), fig.Dirs(dirs...), fig.UseEnv(EnvPrefix)); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values fig cannot
func (c *Config) Validate() error {
	var errs []error

	if c.Output.SampleRate < minSampleRate || c.Output.SampleRate > maxSampleRate {
		errs = append(errs, fmt.Errorf("output.sample_rate %d outside [%d, %d]",
			c.Output.SampleRate, minSampleRate, maxSampleRate))
	}
	if _, err := musicwave.ParseSelection(c.Selection); err != nil {
		errs = append(errs, err)
	}
	if c.NoteDurationMs <= 0 {
		errs = append(errs, fmt.Errorf("note_duration_ms must be positive, got %d", c.NoteDurationMs))
	}
	if c.Output.Backend != BackendOto && c.Output.Backend != BackendNull {
		errs = append(errs, fmt.Errorf("output.backend: unknown backend %q", c.Output.Backend))
	}
	if _, err := scene.ParseMode(c.Hotspot.Mode); err != nil && c.Hotspot.Mode != "" {
		errs = append(errs, fmt.Errorf("hotspot.mode: %w", err))
	}
	if len(c.Instruments) == 0 {
		errs = append(errs, errors.New("at least one instrument is required"))
	}

	seen := make(map[string]bool)
	for i, inst := range c.Instruments {
		if inst.Name == "" {
			errs = append(errs, fmt.Errorf("instruments[%d]: name is required", i))
		} else if seen[inst.Name] {
			errs = append(errs, fmt.Errorf("instruments[%d]: duplicate name %q", i, inst.Name))
		}
		seen[inst.Name] = true

		if _, err := instrument.ParseKind(inst.Kind); err != nil {
			errs = append(errs, fmt.Errorf("instruments[%d]: %w", i, err))
		}
	}

	return errors.Join(errs...)
}

// SelectionRule returns the parsed selection rule
func (c *Config) SelectionRule() musicwave.Selection {
	s, _ := musicwave.ParseSelection(c.Selection)
	return s
}

// HotspotState returns the configured initial hotspot
func (c *Config) HotspotState() scene.Hotspot {
	mode, _ := scene.ParseMode(c.Hotspot.Mode)
	return scene.Hotspot{Gate: c.Hotspot.Open, Mode: mode}
}

// NoteDuration returns how long each note plays
func (c *Config) NoteDuration() time.Duration {
	return time.Duration(c.NoteDurationMs) * time.Millisecond
}

// NoteBudget returns the per-note byte budget at the output rate
func (c *Config) NoteBudget() int {
	return audio.BytesForDuration(c.Output.SampleRate, c.NoteDuration())
}

// Instrument returns the named instrument config
func (c *Config) Instrument(name string) (instrument.Config, bool) {
	for _, inst := range c.Instruments {
		if inst.Name == name {
			return inst, true
		}
	}
	return instrument.Config{}, false
}
