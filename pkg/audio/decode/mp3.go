// ABOUTME: MP3 sample decoder
// ABOUTME: Decodes MP3 files with go-mp3 and downmixes to mono
package decode

import (
	"fmt"
	"io"

	"github.com/Sendspin/notewave/pkg/audio"
	"github.com/hajimehoshi/go-mp3"
)

// MP3Decoder decodes MP3 files
type MP3Decoder struct{}

// NewMP3 creates an MP3 decoder
func NewMP3() Decoder {
	return &MP3Decoder{}
}

// Decode reads a complete MP3 stream
func (d *MP3Decoder) Decode(r io.Reader) (*audio.PCM, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	// go-mp3 always produces interleaved 16-bit stereo
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}

	samples := audio.BytesToInt16s(data)
	wide := make([]int32, len(samples))
	for i, s := range samples {
		wide[i] = audio.SampleFromInt16(s)
	}

	mono := audio.DownmixToMono(wide, 2)
	return audio.NewPCM(dec.SampleRate(), audio.Int16sToBytes(mono)), nil
}
