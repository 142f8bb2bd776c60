// ABOUTME: Audio output package for playing instrument streams
// ABOUTME: Provides Output interface with oto and headless backends
// Package output plays PCM readers on an audio device.
//
// Each instrument stream gets its own Player; the oto backend lets the
// device mix concurrent players. The Null backend consumes readers at
// real-time pace without a device.
//
// Example:
//
//	out := output.NewOto()
//	err := out.Open(22050, 1)
//	p, err := out.Play(stream)
package output
