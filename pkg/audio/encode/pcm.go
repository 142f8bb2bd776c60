// ABOUTME: Raw PCM audio encoder
// ABOUTME: Writes whole 16-bit little-endian frames with no header
package encode

import (
	"fmt"
	"io"
)

// PCMEncoder writes headerless PCM
type PCMEncoder struct {
	w io.Writer
	frames
}

// NewPCM creates a raw PCM encoder
func NewPCM(w io.Writer) *PCMEncoder {
	return &PCMEncoder{w: w}
}

// Write writes the whole frames in p and reports all of p as consumed
func (e *PCMEncoder) Write(p []byte) (int, error) {
	data := e.take(p)
	if len(data) == 0 {
		return len(p), nil
	}
	if _, err := e.w.Write(data); err != nil {
		return 0, fmt.Errorf("failed to write pcm: %w", err)
	}
	return len(p), nil
}

// Close drops a dangling half frame
func (e *PCMEncoder) Close() error {
	e.pending = nil
	return nil
}
