package device

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/itohio/gowx/pkg/calibration"
	"github.com/itohio/gowx/pkg/station"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closingSampler struct {
	closed atomic.Bool
}

func (c *closingSampler) Sample(ch station.Channel) (float32, error) {
	return 2.5, nil
}

func (c *closingSampler) Close() error {
	c.closed.Store(true)
	return nil
}

func TestLocal_Measures(t *testing.T) {
	sampler := &closingSampler{}
	dev := NewLocal(sampler, calibration.Default(), 10*time.Millisecond, 0)
	require.NoError(t, dev.Connect())
	assert.True(t, dev.IsConnected())
	assert.Error(t, dev.Connect())

	for i := 0; i < 2; i++ {
		select {
		case s := <-dev.Samples():
			assert.Equal(t, 50.0, s.Reading.WindDirection)
			assert.Equal(t, 180.0, s.Reading.WindSpeed)
			assert.Equal(t, 1.0, s.Reading.Pressure)
		case <-time.After(5 * time.Second):
			t.Fatal("no sample received")
		}
	}

	require.NoError(t, dev.Close())
	assert.False(t, dev.IsConnected())
	assert.True(t, sampler.closed.Load())

	for range dev.Samples() {
	}
}

func TestLocal_SkipsFailedCycles(t *testing.T) {
	var calls atomic.Int32
	sampler := station.SamplerFunc(func(ch station.Channel) (float32, error) {
		// Fail the whole first cycle.
		if calls.Add(1) == 1 {
			return 0, errors.New("i2c nack")
		}
		return 0, nil
	})

	dev := NewLocal(sampler, calibration.Default(), 5*time.Millisecond, 4)
	require.NoError(t, dev.Connect())
	defer dev.Close()

	select {
	case s := <-dev.Samples():
		assert.InDelta(t, 0.95, s.Reading.Pressure, 1e-6)
	case <-time.After(5 * time.Second):
		t.Fatal("no sample after failed cycle")
	}
}

func TestNewLocal_Defaults(t *testing.T) {
	dev := NewLocal(station.SamplerFunc(func(station.Channel) (float32, error) { return 0, nil }), calibration.Default(), 0, 0)
	assert.Equal(t, station.DefaultInterval, dev.interval)
	assert.Equal(t, DefaultBufferSize, cap(dev.samples))
}
