// Package adc scales raw analog-to-digital converter counts into volts.
package adc

const (
	// DefaultBits matches TinyGo's machine.ADC.Get, which always returns a
	// 16-bit left-aligned value regardless of the hardware resolution.
	DefaultBits = 16
	// DefaultVRef is the ADC reference voltage in volts (Arduino Uno AVCC).
	DefaultVRef = 5.0
)

// Converter maps raw counts of a Bits-wide converter onto 0..VRef volts.
type Converter struct {
	Bits int
	VRef float32
}

// New creates a Converter, using defaults for zero values.
func New(bits int, vref float32) Converter {
	if bits <= 0 || bits > 32 {
		bits = DefaultBits
	}
	if vref <= 0 {
		vref = DefaultVRef
	}
	return Converter{Bits: bits, VRef: vref}
}

// FullScale returns the largest raw count.
func (c Converter) FullScale() uint32 {
	return uint32(1)<<uint(c.Bits) - 1
}

// Voltage converts a raw count to volts. Counts above full scale are clamped.
func (c Converter) Voltage(raw uint32) float32 {
	fs := c.FullScale()
	if raw > fs {
		raw = fs
	}
	return float32(raw) / float32(fs) * c.VRef
}

// Average reads n consecutive raw counts and returns their rounded mean.
// n <= 1 performs a single read.
func Average(read func() uint16, n int) uint16 {
	if n <= 1 {
		return read()
	}

	var sum uint32
	for i := 0; i < n; i++ {
		sum += uint32(read())
	}
	return uint16((sum + uint32(n)/2) / uint32(n))
}
