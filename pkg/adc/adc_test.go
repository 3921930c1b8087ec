package adc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	c := New(0, 0)
	assert.Equal(t, DefaultBits, c.Bits)
	assert.Equal(t, float32(DefaultVRef), c.VRef)

	c = New(40, -1)
	assert.Equal(t, DefaultBits, c.Bits)
	assert.Equal(t, float32(DefaultVRef), c.VRef)
}

func TestConverter_FullScale(t *testing.T) {
	assert.Equal(t, uint32(1023), New(10, 5).FullScale())
	assert.Equal(t, uint32(4095), New(12, 3.3).FullScale())
	assert.Equal(t, uint32(65535), New(16, 5).FullScale())
}

func TestConverter_Voltage(t *testing.T) {
	tests := []struct {
		name string
		bits int
		vref float32
		raw  uint32
		want float32
	}{
		{"zero", 10, 5.0, 0, 0.0},
		{"full scale 10 bit", 10, 5.0, 1023, 5.0},
		{"half 10 bit", 10, 5.0, 512, 2.5},
		{"full scale 16 bit", 16, 5.0, 65535, 5.0},
		{"quarter 16 bit", 16, 5.0, 16384, 1.25},
		{"clamped", 10, 5.0, 5000, 5.0},
		{"3.3V reference", 12, 3.3, 4095, 3.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.bits, tt.vref).Voltage(tt.raw)
			assert.InDelta(t, tt.want, got, 0.005, "Voltage(%d) = %f, want %f", tt.raw, got, tt.want)
		})
	}
}

func TestAverage(t *testing.T) {
	values := []uint16{100, 200, 300, 401}
	i := 0
	read := func() uint16 {
		v := values[i%len(values)]
		i++
		return v
	}

	assert.Equal(t, uint16(250), Average(read, 4))
	assert.Equal(t, 4, i)

	i = 0
	assert.Equal(t, uint16(100), Average(read, 1))
	assert.Equal(t, 1, i)

	i = 0
	assert.Equal(t, uint16(100), Average(read, 0))
	assert.Equal(t, 1, i)
}

func TestAverage_NoOverflow(t *testing.T) {
	read := func() uint16 { return 65535 }
	assert.Equal(t, uint16(65535), Average(read, 64))
}
