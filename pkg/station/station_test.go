package station

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/itohio/gowx/pkg/calibration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSampler returns a constant voltage per channel.
type fixedSampler [NumChannels]float32

func (f fixedSampler) Sample(ch Channel) (float32, error) {
	return f[ch], nil
}

func TestChannel_Column(t *testing.T) {
	assert.Equal(t, calibration.WindDirection, WindDirection.Column())
	assert.Equal(t, calibration.WindSpeed, WindSpeed.Column())
	assert.Equal(t, calibration.Temperature, Temperature.Column())
	assert.Equal(t, calibration.Pressure, Pressure.Column())
	assert.Equal(t, calibration.Voltage, Channel(7).Column())
	assert.Equal(t, "wind speed", WindSpeed.String())
	assert.Equal(t, "invalid", Channel(7).String())
}

func TestMeasure_EndToEnd(t *testing.T) {
	st := New(calibration.Default(), fixedSampler{2.500, 2.500, 0.781, 2.500})

	r, err := st.Measure()
	require.NoError(t, err)

	assert.Equal(t, 50.0, r.WindDirection)
	assert.Equal(t, 180.0, r.WindSpeed)
	assert.InDelta(t, -6.6667, r.Temperature, 0.0001)
	assert.Equal(t, 1.0, r.Pressure)
}

func TestMeasure_Extremes(t *testing.T) {
	low, err := New(calibration.Default(), fixedSampler{-1, 0, -0.5, 0}).Measure()
	require.NoError(t, err)
	assert.Equal(t, 0.0, low.WindDirection)
	assert.Equal(t, 0.0, low.WindSpeed)
	assert.InDelta(t, -17.7778, low.Temperature, 0.0001)
	assert.InDelta(t, 0.95, low.Pressure, 1e-6)

	high, err := New(calibration.Default(), fixedSampler{5, 6, 100, 5.2}).Measure()
	require.NoError(t, err)
	assert.Equal(t, 100.0, high.WindDirection)
	assert.Equal(t, 360.0, high.WindSpeed)
	assert.InDelta(t, 53.3333, high.Temperature, 0.0001)
	assert.InDelta(t, 1.05, high.Pressure, 1e-6)
}

func TestMeasure_SamplesInReportOrder(t *testing.T) {
	var order []Channel
	st := New(calibration.Default(), SamplerFunc(func(ch Channel) (float32, error) {
		order = append(order, ch)
		return 0, nil
	}))

	_, err := st.Measure()
	require.NoError(t, err)
	assert.Equal(t, []Channel{WindDirection, WindSpeed, Temperature, Pressure}, order)
}

func TestMeasure_SamplerError(t *testing.T) {
	errADC := errors.New("adc busy")
	st := New(calibration.Default(), SamplerFunc(func(ch Channel) (float32, error) {
		if ch == Temperature {
			return 0, errADC
		}
		return 1, nil
	}))

	_, err := st.Measure()
	assert.ErrorIs(t, err, errADC)
	assert.Contains(t, err.Error(), "temperature")
}

func TestMeasure_EmptyTable(t *testing.T) {
	st := New(calibration.Table{}, fixedSampler{})

	_, err := st.Measure()
	assert.ErrorIs(t, err, calibration.ErrEmptyTable)
}

func TestRun_ReportsUntilCancelled(t *testing.T) {
	st := New(calibration.Default(), fixedSampler{1.25, 1.25, 1.25, 1.25})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got []Reading
	err := st.Run(ctx, time.Millisecond, ReporterFunc(func(r Reading) error {
		got = append(got, r)
		if len(got) == 3 {
			cancel()
		}
		return nil
	}))

	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, got, 3)
	for _, r := range got {
		assert.Equal(t, 25.0, r.WindDirection)
		assert.Equal(t, 90.0, r.WindSpeed)
		assert.InDelta(t, 0.0, r.Temperature, 1e-9)
		assert.InDelta(t, 0.975, r.Pressure, 1e-6)
	}
}

func TestRun_WaitsInterval(t *testing.T) {
	st := New(calibration.Default(), fixedSampler{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stamps []time.Time
	err := st.Run(ctx, 50*time.Millisecond, ReporterFunc(func(r Reading) error {
		stamps = append(stamps, time.Now())
		if len(stamps) == 2 {
			cancel()
		}
		return nil
	}))

	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, stamps, 2)
	assert.GreaterOrEqual(t, stamps[1].Sub(stamps[0]), 50*time.Millisecond)
}

func TestRun_ReporterError(t *testing.T) {
	st := New(calibration.Default(), fixedSampler{})
	errSink := errors.New("uart gone")

	err := st.Run(context.Background(), time.Millisecond, ReporterFunc(func(r Reading) error {
		return errSink
	}))
	assert.ErrorIs(t, err, errSink)
}

func TestRun_AlreadyCancelled(t *testing.T) {
	st := New(calibration.Default(), fixedSampler{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := st.Run(ctx, 0, ReporterFunc(func(r Reading) error {
		called = true
		return nil
	}))
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
