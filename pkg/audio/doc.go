// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, PCM types and 16-bit sample conversion functions
// Package audio provides the PCM types shared by the notewave packages.
//
// Everything the resampler touches is 16-bit little-endian mono PCM:
//   - Format: describes a stream (sample rate, channels, bit depth)
//   - PCM: decoded bytes plus their Format
//
// It also provides conversions between packed bytes, int16 and the
// 24-bit-in-int32 representation produced by the FLAC and MP3 decoders.
//
// Example:
//
//	pcm := audio.NewPCM(22050, audio.Int16sToBytes(samples))
//	frames := pcm.Frames()
package audio
