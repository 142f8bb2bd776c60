// ABOUTME: Audio type definitions
// ABOUTME: Defines audio formats, mono PCM buffers and sample conversions
package audio

import (
	"encoding/binary"
	"time"
)

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23

	// FrameBytes is the size of one mono 16-bit frame
	FrameBytes = 2
)

// Format describes audio stream format
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// Mono16 returns the 16-bit mono format at the given rate
func Mono16(sampleRate int) Format {
	return Format{SampleRate: sampleRate, Channels: 1, BitDepth: 16}
}

// PCM holds decoded 16-bit little-endian audio
type PCM struct {
	Format Format
	Data   []byte
}

// NewPCM wraps mono 16-bit bytes
func NewPCM(sampleRate int, data []byte) *PCM {
	return &PCM{Format: Mono16(sampleRate), Data: data}
}

// Frames returns the number of whole frames in the buffer
func (p *PCM) Frames() int {
	if p.Format.Channels <= 1 {
		return len(p.Data) / FrameBytes
	}
	return len(p.Data) / (FrameBytes * p.Format.Channels)
}

// Duration returns the playback length at the buffer's sample rate
func (p *PCM) Duration() time.Duration {
	if p.Format.SampleRate == 0 {
		return 0
	}
	return time.Duration(p.Frames()) * time.Second / time.Duration(p.Format.SampleRate)
}

// SampleToInt16 converts int32 sample to int16 (for 16-bit playback)
func SampleToInt16(sample int32) int16 {
	// Right-shift to convert 24-bit to 16-bit range
	return int16(sample >> 8)
}

// SampleFromInt16 converts int16 sample to int32 (left-justified in 24-bit)
func SampleFromInt16(sample int16) int32 {
	return int32(sample) << 8
}

// Int16sToBytes packs samples as little-endian bytes
func Int16sToBytes(samples []int16) []byte {
	out := make([]byte, len(samples)*FrameBytes)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*FrameBytes:], uint16(s))
	}
	return out
}

// BytesToInt16s unpacks little-endian bytes; a trailing odd byte is ignored
func BytesToInt16s(data []byte) []int16 {
	out := make([]int16, len(data)/FrameBytes)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(data[i*FrameBytes:]))
	}
	return out
}

// DownmixToMono averages interleaved 24-bit-range samples into 16-bit mono
func DownmixToMono(samples []int32, channels int) []int16 {
	if channels <= 0 {
		channels = 1
	}
	frames := len(samples) / channels
	out := make([]int16, frames)
	for i := 0; i < frames; i++ {
		var sum int64
		for ch := 0; ch < channels; ch++ {
			sum += int64(samples[i*channels+ch])
		}
		out[i] = SampleToInt16(int32(sum / int64(channels)))
	}
	return out
}

// BytesForDuration returns the even byte count of mono 16-bit audio lasting d
func BytesForDuration(sampleRate int, d time.Duration) int {
	frames := int(int64(sampleRate) * int64(d) / int64(time.Second))
	return frames * FrameBytes
}
