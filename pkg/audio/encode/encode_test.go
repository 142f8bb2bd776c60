// ABOUTME: Unit tests for the PCM and WAV encoders
// ABOUTME: Tests frame splitting, extension selection and WAV round trips
package encode

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Sendspin/notewave/pkg/audio"
	"github.com/go-audio/wav"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"wav", "out.wav", false},
		{"upper case wave", "OUT.WAVE", false},
		{"pcm", "out.pcm", false},
		{"raw", "out.raw", false},
		{"mp3", "out.mp3", true},
		{"no extension", "out", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := os.Create(filepath.Join(t.TempDir(), "x"))
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			_, err = ForFile(tt.path, f, 22050)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("err = %v, want ErrUnsupportedFormat", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPCMEncoderSplitsFrames(t *testing.T) {
	var buf bytes.Buffer
	enc := NewPCM(&buf)

	for _, chunk := range [][]byte{{0x01}, {0x02, 0x03}, {0x04, 0x05}} {
		n, err := enc.Write(chunk)
		if err != nil {
			t.Fatal(err)
		}
		if n != len(chunk) {
			t.Errorf("Write returned %d, want %d", n, len(chunk))
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	want := []byte{0x01, 0x02, 0x03, 0x04}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got %v, want %v", buf.Bytes(), want)
	}
}

func TestWAVEncoder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	enc, err := NewWAV(f, 22050)
	if err != nil {
		t.Fatal(err)
	}
	samples := []int16{0, 1000, -1000, 32767, -32768}
	data := audio.Int16sToBytes(samples)
	// split mid-frame
	if _, err := enc.Write(data[:3]); err != nil {
		t.Fatal(err)
	}
	if _, err := enc.Write(data[3:]); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	rf, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer rf.Close()

	dec := wav.NewDecoder(rf)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if dec.SampleRate != 22050 || dec.NumChans != 1 || dec.BitDepth != 16 {
		t.Errorf("header = %d Hz, %d ch, %d bit", dec.SampleRate, dec.NumChans, dec.BitDepth)
	}
	if len(buf.Data) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(buf.Data), len(samples))
	}
	for i, s := range samples {
		if buf.Data[i] != int(s) {
			t.Errorf("sample %d = %d, want %d", i, buf.Data[i], s)
		}
	}
}

func TestNewWAVRejectsRate(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "x.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := NewWAV(f, 0); err == nil {
		t.Error("expected error for zero rate")
	}
}
