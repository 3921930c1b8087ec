package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFahrenheitToCelsius(t *testing.T) {
	tests := []struct {
		name string
		f    float64
		want float64
	}{
		{"freezing", 32.0, 0.0},
		{"boiling", 212.0, 100.0},
		{"minus forty", -40.0, -40.0},
		{"table 20F", 20.0, -6.6667},
		{"table 128F", 128.0, 53.3333},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FahrenheitToCelsius(tt.f), 0.0001)
		})
	}

	assert.Equal(t, 0.0, FahrenheitToCelsius(32.0))
	assert.Equal(t, 100.0, FahrenheitToCelsius(212.0))
}

func TestMillibarToAtm(t *testing.T) {
	tests := []struct {
		name string
		mb   float32
		want float32
	}{
		{"standard", 1013, 1.013},
		{"table low", 950, 0.950},
		{"table high", 1050, 1.050},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MillibarToAtm(tt.mb), 1e-6)
		})
	}

	assert.Equal(t, float32(1), MillibarToAtm(1000))
}
