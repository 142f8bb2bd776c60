// ABOUTME: FLAC sample decoder
// ABOUTME: Decodes FLAC files frame by frame with mewkiz/flac
package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/Sendspin/notewave/pkg/audio"
	"github.com/mewkiz/flac"
)

// FLACDecoder decodes FLAC files
type FLACDecoder struct{}

// NewFLAC creates a FLAC decoder
func NewFLAC() Decoder {
	return &FLACDecoder{}
}

// Decode reads every frame of a FLAC stream
func (d *FLACDecoder) Decode(r io.Reader) (*audio.PCM, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}

	channels := int(stream.Info.NChannels)
	bitDepth := int(stream.Info.BitsPerSample)
	if channels < 1 {
		return nil, fmt.Errorf("invalid FLAC channel count: %d", channels)
	}

	var wide []int32
	for {
		frame, err := stream.ParseNext()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to parse FLAC frame: %w", err)
		}

		for i := 0; i < int(frame.BlockSize); i++ {
			for ch := 0; ch < channels; ch++ {
				wide = append(wide, scaleTo24(frame.Subframes[ch].Samples[i], bitDepth))
			}
		}
	}

	mono := audio.DownmixToMono(wide, channels)
	return audio.NewPCM(int(stream.Info.SampleRate), audio.Int16sToBytes(mono)), nil
}
