// ABOUTME: Pitch-shifting sample playback package
// ABOUTME: Selects the closest recorded note and streams it resampled
// Package musicwave plays an instrument from a small bank of recorded notes.
//
// Each slot holds one decoded sample tagged with the semitone it was
// recorded at. BeginPlayback picks a slot for the requested pitch, looks up
// the equal-tempered speed ratio for the difference and arms a 24.8
// fixed-point cursor. Pull then emits 16-bit little-endian mono frames
// until the byte budget of the note is used up.
//
// Resampler is single-threaded. Stream wraps it with a mutex and an
// io.Reader so an audio backend can pull while another goroutine
// triggers notes.
//
// Example:
//
//	r := musicwave.New(bank)
//	r.ConfigureSlots(2)
//	r.LoadSlot(0, "c4.wav", 60)
//	r.LoadSlot(1, "c5.wav", 72)
//	r.BeginPlayback(64, 44100)
//	n := r.Pull(buf)
package musicwave
