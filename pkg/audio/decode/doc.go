// ABOUTME: Audio decoder package for note sample files
// ABOUTME: Provides Decoder interface and WAV, MP3, FLAC and raw PCM decoders
// Package decode turns sample files into 16-bit mono PCM.
//
// Supports: WAV (8/16/24/32-bit), MP3, FLAC and headerless 16-bit PCM.
//
// All decoders keep the file's native sample rate and average
// multi-channel input down to mono; rate conversion is left to the caller.
//
// Example:
//
//	pcm, err := decode.DecodeFile("samples/piano_c4.wav")
package decode
