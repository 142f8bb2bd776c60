// ABOUTME: WAV audio encoder backed by go-audio/wav
// ABOUTME: Writes 16-bit mono WAV and patches the header on Close
package encode

import (
	"fmt"
	"io"

	"github.com/Sendspin/notewave/pkg/audio"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVEncoder writes a 16-bit mono WAV file
type WAVEncoder struct {
	enc    *wav.Encoder
	format *goaudio.Format
	frames
}

// NewWAV creates a WAV encoder. w must be seekable so the header sizes can
// be written on Close.
func NewWAV(w io.WriteSeeker, sampleRate int) (*WAVEncoder, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	return &WAVEncoder{
		enc:    wav.NewEncoder(w, sampleRate, 16, 1, 1),
		format: &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
	}, nil
}

// Write encodes the whole frames in p and reports all of p as consumed
func (e *WAVEncoder) Write(p []byte) (int, error) {
	data := e.take(p)
	if len(data) == 0 {
		return len(p), nil
	}

	samples := audio.BytesToInt16s(data)
	ints := make([]int, len(samples))
	for i, s := range samples {
		ints[i] = int(s)
	}
	buf := &goaudio.IntBuffer{Format: e.format, Data: ints, SourceBitDepth: 16}
	if err := e.enc.Write(buf); err != nil {
		return 0, fmt.Errorf("failed to write wav: %w", err)
	}
	return len(p), nil
}

// Close writes the final header sizes
func (e *WAVEncoder) Close() error {
	if err := e.enc.Close(); err != nil {
		return fmt.Errorf("failed to finish wav: %w", err)
	}
	return nil
}
