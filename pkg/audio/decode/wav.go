// ABOUTME: WAV sample decoder
// ABOUTME: Decodes RIFF/WAVE PCM files with go-audio/wav
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/Sendspin/notewave/pkg/audio"
	"github.com/go-audio/wav"
)

// WAVDecoder decodes WAV files
type WAVDecoder struct{}

// NewWAV creates a WAV decoder
func NewWAV() Decoder {
	return &WAVDecoder{}
}

// Decode reads a complete WAV file
func (d *WAVDecoder) Decode(r io.Reader) (*audio.PCM, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read WAV data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, errors.New("invalid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV samples: %w", err)
	}

	bitDepth := int(dec.SampleBitDepth())
	if bitDepth == 0 {
		return nil, errors.New("unknown WAV bit depth")
	}
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	wide := make([]int32, len(buf.Data))
	for i, v := range buf.Data {
		if bitDepth == 8 {
			// 8-bit WAV is unsigned
			v -= 128
		}
		wide[i] = scaleTo24(int32(v), bitDepth)
	}

	mono := audio.DownmixToMono(wide, channels)
	return audio.NewPCM(buf.Format.SampleRate, audio.Int16sToBytes(mono)), nil
}
