// ABOUTME: Linear sample rate converter for mono 16-bit audio
// ABOUTME: Uses a 16.16 fixed-point source position per output frame
package resample

const (
	fracBits = 16
	fracOne  = 1 << fracBits
	fracMask = fracOne - 1
)

// Converter performs linear interpolation between two sample rates
type Converter struct {
	inputRate  int
	outputRate int
	step       int64 // 16.16 source frames per output frame
}

// New creates a converter from inputRate to outputRate
func New(inputRate, outputRate int) *Converter {
	if inputRate <= 0 {
		inputRate = outputRate
	}
	c := &Converter{
		inputRate:  inputRate,
		outputRate: outputRate,
	}
	if outputRate > 0 {
		c.step = (int64(inputRate) << fracBits) / int64(outputRate)
	}
	return c
}

// Identity reports whether conversion is a no-op
func (c *Converter) Identity() bool {
	return c.inputRate == c.outputRate || c.outputRate <= 0
}

// OutputFrames returns how many frames Convert produces for n input frames
func (c *Converter) OutputFrames(n int) int {
	if c.Identity() {
		return n
	}
	if n == 0 {
		return 0
	}
	return int(int64(n) * int64(c.outputRate) / int64(c.inputRate))
}

// Convert returns src resampled to the output rate
func (c *Converter) Convert(src []int16) []int16 {
	if c.Identity() {
		out := make([]int16, len(src))
		copy(out, src)
		return out
	}

	n := c.OutputFrames(len(src))
	out := make([]int16, n)
	if len(src) == 0 {
		return out
	}

	last := len(src) - 1
	var pos int64
	for i := 0; i < n; i++ {
		idx := int(pos >> fracBits)
		if idx >= last {
			out[i] = src[last]
		} else {
			frac := pos & fracMask
			s0 := int64(src[idx])
			s1 := int64(src[idx+1])
			out[i] = int16(s0 + ((s1-s0)*frac)>>fracBits)
		}
		pos += c.step
	}

	return out
}
