// ABOUTME: Encoder interface definition
// ABOUTME: Common interface for all audio encoders and selection by file extension
package encode

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for unknown output extensions
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Encoder writes 16-bit mono PCM bytes in some container
type Encoder interface {
	io.Writer

	// Close flushes the container. It does not close the underlying writer.
	Close() error
}

// ForFile returns an encoder for path's extension writing to w
func ForFile(path string, w io.WriteSeeker, sampleRate int) (Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return NewWAV(w, sampleRate)
	case ".pcm", ".raw":
		return NewPCM(w), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
}

// frames splits p into whole 16-bit frames, carrying an odd byte over in
// pending
type frames struct {
	pending []byte
}

func (f *frames) take(p []byte) []byte {
	if len(f.pending) > 0 {
		p = append(f.pending, p...)
		f.pending = nil
	}
	if len(p)%2 == 1 {
		f.pending = []byte{p[len(p)-1]}
		p = p[:len(p)-1]
	}
	return p
}
