// ABOUTME: Sample bank package for decoded note recordings
// ABOUTME: Loads sample files once and serves them as musicwave waves
// Package samplebank decodes sample files into PCM at one output rate and
// caches them by name.
//
// A Bank satisfies musicwave.Loader, so it can be handed straight to
// Resampler.LoadSlot:
//
//	bank := samplebank.New(samplebank.Config{Dir: "samples", SampleRate: 22050})
//	r.LoadSlot(0, "piano_c4.wav", 60, bank)
package samplebank
