// ABOUTME: Tests for configuration loading and validation
// ABOUTME: Writes YAML fixtures to temp dirs and checks defaults and errors
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Sendspin/notewave/internal/instrument"
	"github.com/Sendspin/notewave/internal/scene"
	"github.com/Sendspin/notewave/pkg/musicwave"
	"github.com/spf13/pflag"
)

const sampleYAML = `
samples:
  dir: ./sounds
selection: nearest
instruments:
  - name: piano
    kind: piano
    samples:
      - file: piano_c4.wav
        pitch: 60
      - file: piano_g4.wav
        pitch: 67
  - name: bells
    kind: bells
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bank.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Output.SampleRate != 22050 {
		t.Errorf("default sample rate = %d", cfg.Output.SampleRate)
	}
	if cfg.NoteDurationMs != 1500 {
		t.Errorf("default note duration = %d", cfg.NoteDurationMs)
	}
	if cfg.Metrics.Port != 9090 || cfg.Remote.Port != 8937 {
		t.Errorf("default ports = %d/%d", cfg.Metrics.Port, cfg.Remote.Port)
	}
	if cfg.Samples.Dir != "./sounds" {
		t.Errorf("samples dir = %q", cfg.Samples.Dir)
	}
	if cfg.SelectionRule() != musicwave.SelectNearest {
		t.Errorf("selection = %v", cfg.SelectionRule())
	}
	if len(cfg.Instruments) != 2 {
		t.Fatalf("got %d instruments", len(cfg.Instruments))
	}

	piano, ok := cfg.Instrument("piano")
	if !ok {
		t.Fatal("piano not found")
	}
	want := []instrument.SampleConfig{{File: "piano_c4.wav", Pitch: 60}, {File: "piano_g4.wav", Pitch: 67}}
	if len(piano.Samples) != len(want) {
		t.Fatalf("piano samples = %+v", piano.Samples)
	}
	for i := range want {
		if piano.Samples[i] != want[i] {
			t.Errorf("sample %d = %+v, want %+v", i, piano.Samples[i], want[i])
		}
	}
	if hs := cfg.HotspotState(); hs.Mode != scene.ModeGo || hs.Gate {
		t.Errorf("default hotspot = %+v", hs)
	}
	if _, ok := cfg.Instrument("tuba"); ok {
		t.Error("unexpected tuba")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("NOTEWAVE_OUTPUT_SAMPLE_RATE", "44100")
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.SampleRate != 44100 {
		t.Errorf("sample rate = %d, want env override 44100", cfg.Output.SampleRate)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Output:         Output{SampleRate: 22050, Backend: BackendOto},
			Selection:      "signed",
			NoteDurationMs: 1000,
			Instruments:    []instrument.Config{{Name: "p", Kind: "piano"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"low rate", func(c *Config) { c.Output.SampleRate = 4000 }, "sample_rate"},
		{"high rate", func(c *Config) { c.Output.SampleRate = 384000 }, "sample_rate"},
		{"bad selection", func(c *Config) { c.Selection = "random" }, "selection"},
		{"zero duration", func(c *Config) { c.NoteDurationMs = 0 }, "note_duration_ms"},
		{"no instruments", func(c *Config) { c.Instruments = nil }, "at least one instrument"},
		{"bad backend", func(c *Config) { c.Output.Backend = "alsa" }, "output.backend"},
		{"bad hotspot", func(c *Config) { c.Hotspot.Mode = "reverse" }, "hotspot.mode"},
		{"unknown kind", func(c *Config) { c.Instruments[0].Kind = "kazoo" }, "kazoo"},
		{"missing name", func(c *Config) { c.Instruments[0].Name = "" }, "name is required"},
		{"duplicate name", func(c *Config) {
			c.Instruments = append(c.Instruments, instrument.Config{Name: "p", Kind: "bass"})
		}, "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestNoteBudget(t *testing.T) {
	c := &Config{Output: Output{SampleRate: 22050}, NoteDurationMs: 1000}
	if got := c.NoteBudget(); got != 44100 {
		t.Errorf("NoteBudget() = %d, want 44100", got)
	}
}

func TestFlags(t *testing.T) {
	var f Flags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.AddFlags(fs)

	if err := fs.Parse([]string{"--config", "x.yaml", "--notes", "60,62", "-d", "--no-tui"}); err != nil {
		t.Fatal(err)
	}
	if f.ConfigPath != "x.yaml" || f.Notes != "60,62" || !f.Debug || !f.NoTUI {
		t.Errorf("unexpected flags %+v", f)
	}

	c := &Config{}
	f.Apply(c)
	if c.Log.Level != "debug" {
		t.Errorf("log level = %q", c.Log.Level)
	}
}

func TestParseNotes(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"", nil, false},
		{"60", []int{60}, false},
		{"60, 62,63,", []int{60, 62, 63}, false},
		{"60,do", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNotes(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}
