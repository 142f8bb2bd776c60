// ABOUTME: Tests for audio types
// ABOUTME: Tests sample conversion, packing and mono downmix helpers
package audio

import (
	"testing"
	"time"
)

func TestSampleConversions(t *testing.T) {
	tests := []struct {
		name  string
		in16  int16
		out32 int32
	}{
		{"zero", 0, 0},
		{"positive", 100, 100 << 8},
		{"negative", -100, -100 << 8},
		{"max", 32767, 32767 << 8},
		{"min", -32768, -32768 << 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SampleFromInt16(tt.in16); got != tt.out32 {
				t.Errorf("SampleFromInt16: expected %d, got %d", tt.out32, got)
			}
			if got := SampleToInt16(tt.out32); got != tt.in16 {
				t.Errorf("SampleToInt16: expected %d, got %d", tt.in16, got)
			}
		})
	}
}

func TestInt16BytesRoundTrip(t *testing.T) {
	samples := []int16{0, 1, -1, 1000, -1000, 32767, -32768}

	data := Int16sToBytes(samples)
	if len(data) != len(samples)*FrameBytes {
		t.Fatalf("expected %d bytes, got %d", len(samples)*FrameBytes, len(data))
	}

	// Little-endian layout of 1000 (0x03E8)
	if data[6] != 0xE8 || data[7] != 0x03 {
		t.Errorf("expected LE bytes e8 03, got %02x %02x", data[6], data[7])
	}

	back := BytesToInt16s(data)
	for i := range samples {
		if back[i] != samples[i] {
			t.Errorf("sample %d: expected %d, got %d", i, samples[i], back[i])
		}
	}
}

func TestBytesToInt16sOddLength(t *testing.T) {
	got := BytesToInt16s([]byte{0x01, 0x00, 0x02})
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("expected [1], got %v", got)
	}
}

func TestDownmixToMono(t *testing.T) {
	stereo := []int32{
		SampleFromInt16(100), SampleFromInt16(300),
		SampleFromInt16(-200), SampleFromInt16(200),
	}

	mono := DownmixToMono(stereo, 2)
	if len(mono) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(mono))
	}
	if mono[0] != 200 {
		t.Errorf("frame 0: expected 200, got %d", mono[0])
	}
	if mono[1] != 0 {
		t.Errorf("frame 1: expected 0, got %d", mono[1])
	}
}

func TestPCMFramesAndDuration(t *testing.T) {
	pcm := NewPCM(22050, make([]byte, 22050*FrameBytes))

	if pcm.Frames() != 22050 {
		t.Errorf("expected 22050 frames, got %d", pcm.Frames())
	}
	if pcm.Duration() != time.Second {
		t.Errorf("expected 1s, got %v", pcm.Duration())
	}
}

func TestBytesForDuration(t *testing.T) {
	if got := BytesForDuration(22050, 500*time.Millisecond); got != 22050 {
		t.Errorf("expected 22050 bytes, got %d", got)
	}
	if got := BytesForDuration(44100, 0); got != 0 {
		t.Errorf("expected 0 bytes, got %d", got)
	}
}
