package device

import (
	"math"
	"time"

	"github.com/itohio/gowx/pkg/calibration"
	"github.com/itohio/gowx/pkg/config"
	"github.com/itohio/gowx/pkg/station"
)

// NewMock creates a local device fed by simulated sensor voltages.
func NewMock(cfg *config.MockConfig) *Local {
	if cfg == nil {
		cfg = &config.MockConfig{
			Interval:   2 * time.Second,
			Period:     10 * time.Minute,
			NoiseLevel: 0.02,
		}
	}

	return NewLocal(newMockSampler(cfg, time.Now), calibration.Default(), cfg.Interval, DefaultBufferSize)
}

// mockSampler produces a slow sine sweep over the 0-5 V range per channel,
// each channel phase shifted, plus a small deterministic ripple.
type mockSampler struct {
	period time.Duration
	noise  float64
	start  time.Time
	now    func() time.Time
}

func newMockSampler(cfg *config.MockConfig, now func() time.Time) *mockSampler {
	period := cfg.Period
	if period <= 0 {
		period = 10 * time.Minute
	}
	return &mockSampler{
		period: period,
		noise:  cfg.NoiseLevel,
		start:  now(),
		now:    now,
	}
}

// Sample returns the simulated voltage of a channel.
func (m *mockSampler) Sample(ch station.Channel) (float32, error) {
	elapsed := m.now().Sub(m.start)

	phase := 2 * math.Pi * (elapsed.Seconds()/m.period.Seconds() + float64(ch)/station.NumChannels)
	v := 2.5 + 2.4*math.Sin(phase)

	// Ripple
	t := float64(elapsed.Milliseconds())
	v += (math.Sin(t*0.0031+float64(ch)) + math.Cos(t*0.0017)) * m.noise * 0.5

	return float32(math.Max(0, math.Min(5, v))), nil
}
