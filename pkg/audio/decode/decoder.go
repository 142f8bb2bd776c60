// ABOUTME: Decoder interface definition and file-extension dispatch
// ABOUTME: Common interface for all sample file decoders
package decode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sendspin/notewave/pkg/audio"
)

// ErrUnsupportedFormat is returned for file types without a decoder
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// DefaultRawFormat is assumed for headerless .pcm/.raw files
var DefaultRawFormat = audio.Mono16(22050)

// Decoder decodes a whole sample file into mono 16-bit PCM
type Decoder interface {
	Decode(r io.Reader) (*audio.PCM, error)
}

// ForFile picks a decoder from the file extension
func ForFile(path string) (Decoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".wave":
		return NewWAV(), nil
	case ".mp3":
		return NewMP3(), nil
	case ".flac":
		return NewFLAC(), nil
	case ".pcm", ".raw":
		return NewPCM(DefaultRawFormat)
	}
	return nil, fmt.Errorf("%w: %q (supported: .wav, .mp3, .flac, .pcm, .raw)", ErrUnsupportedFormat, ext)
}

// DecodeFile opens and decodes path
func DecodeFile(path string) (*audio.PCM, error) {
	dec, err := ForFile(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample file: %w", err)
	}
	defer f.Close()

	pcm, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return pcm, nil
}

// scaleTo24 brings an integer sample of the given bit depth into the
// 24-bit range used by audio.SampleToInt16
func scaleTo24(sample int32, bitDepth int) int32 {
	switch {
	case bitDepth == 24:
		return sample
	case bitDepth < 24:
		return sample << (24 - bitDepth)
	default:
		return sample >> (bitDepth - 24)
	}
}
