// ABOUTME: Equal-tempered pitch ratio lookup package
// ABOUTME: Maps semitone offsets to playback speed ratios
// Package pitch precomputes equal-tempered frequency ratios.
//
// A Table covers a closed range of semitone offsets around a reference
// pitch. The zero offset is exactly 1.0; each step up multiplies by the
// twelfth root of two and each step down by its reciprocal.
//
// Example:
//
//	t := pitch.Build(pitch.DefaultMin, pitch.DefaultMax)
//	step := pitch.StepFor(t.RatioAt(7)) // 24.8 fixed-point cursor advance
package pitch
