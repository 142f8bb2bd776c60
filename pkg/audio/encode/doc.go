// ABOUTME: Audio encoder package for writing rendered notes to files
// ABOUTME: Provides Encoder interface and implementations for raw PCM and WAV
// Package encode writes 16-bit little-endian mono PCM, the format a note
// stream produces, to files.
//
// Supports: raw PCM, WAV
//
// Encoders accept arbitrary byte counts and only ever emit whole frames;
// a trailing odd byte is held until the next Write.
//
// Example:
//
//	enc, err := encode.ForFile("out.wav", f, 22050)
//	_, err = io.Copy(enc, stream)
//	err = enc.Close()
package encode
