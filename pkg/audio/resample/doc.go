// ABOUTME: Audio sample rate conversion package using linear interpolation
// ABOUTME: Brings decoded note samples to the output sample rate
// Package resample converts mono 16-bit audio between sample rates.
//
// Sample files are recorded at whatever rate their author chose; the note
// resampler assumes they already match the output rate. Converter does that
// one-off conversion at load time with linear interpolation and a 16.16
// fixed-point position.
//
// Example:
//
//	c := resample.New(44100, 22050)
//	out := c.Convert(samples)
package resample
