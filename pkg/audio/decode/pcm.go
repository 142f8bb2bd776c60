// ABOUTME: Raw PCM sample decoder
// ABOUTME: Reads headerless 16-bit little-endian PCM
package decode

import (
	"fmt"
	"io"

	"github.com/Sendspin/notewave/pkg/audio"
)

// PCMDecoder decodes headerless 16-bit PCM
type PCMDecoder struct {
	format audio.Format
}

// NewPCM creates a raw PCM decoder for the given layout
func NewPCM(format audio.Format) (Decoder, error) {
	if format.BitDepth != 16 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16)", format.BitDepth)
	}
	if format.Channels < 1 {
		return nil, fmt.Errorf("invalid channel count: %d", format.Channels)
	}
	if format.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", format.SampleRate)
	}
	return &PCMDecoder{format: format}, nil
}

// Decode reads r to the end
func (d *PCMDecoder) Decode(r io.Reader) (*audio.PCM, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	if d.format.Channels == 1 {
		return audio.NewPCM(d.format.SampleRate, data[:len(data)&^1]), nil
	}

	samples := audio.BytesToInt16s(data)
	wide := make([]int32, len(samples))
	for i, s := range samples {
		wide[i] = audio.SampleFromInt16(s)
	}
	mono := audio.DownmixToMono(wide, d.format.Channels)
	return audio.NewPCM(d.format.SampleRate, audio.Int16sToBytes(mono)), nil
}
