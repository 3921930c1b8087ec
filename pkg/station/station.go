// Package station runs the measurement cycle of the weather station:
// sample the four analog channels, resolve each one through the
// calibration table, convert to reporting units and hand the result to a
// Reporter.
package station

import (
	"context"
	"fmt"
	"time"

	"github.com/itohio/gowx/pkg/calibration"
	"github.com/itohio/gowx/pkg/units"
)

// DefaultInterval is the time between two reports.
const DefaultInterval = 2000 * time.Millisecond

// Channel identifies one of the analog sensor inputs.
type Channel int

const (
	WindDirection Channel = iota
	WindSpeed
	Temperature
	Pressure

	// NumChannels is the number of analog inputs.
	NumChannels = 4
)

// Channels lists all channels in report order.
var Channels = [NumChannels]Channel{WindDirection, WindSpeed, Temperature, Pressure}

// Column returns the calibration column holding the channel's values.
func (c Channel) Column() calibration.Column {
	switch c {
	case WindDirection:
		return calibration.WindDirection
	case WindSpeed:
		return calibration.WindSpeed
	case Temperature:
		return calibration.Temperature
	case Pressure:
		return calibration.Pressure
	default:
		return calibration.Voltage
	}
}

// String returns the channel name.
func (c Channel) String() string {
	if col := c.Column(); col.Valid() {
		return col.String()
	}
	return "invalid"
}

// Sampler returns the voltage currently present on a channel, in the same
// domain as the calibration table's reference voltages (0-5 V).
type Sampler interface {
	Sample(ch Channel) (float32, error)
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc func(ch Channel) (float32, error)

// Sample calls f(ch).
func (f SamplerFunc) Sample(ch Channel) (float32, error) {
	return f(ch)
}

// Reading is the result of one measurement cycle.
type Reading struct {
	WindDirection float64 `json:"wind_direction_deg"`
	WindSpeed     float64 `json:"wind_speed_mph"`
	Temperature   float64 `json:"temp_c"`
	Pressure      float64 `json:"pressure_atm"`
}

// Reporter consumes readings, one per cycle.
type Reporter interface {
	Report(r Reading) error
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(r Reading) error

// Report calls f(r).
func (f ReporterFunc) Report(r Reading) error {
	return f(r)
}

// Station ties a sampler to a calibration table.
type Station struct {
	table   calibration.Table
	sampler Sampler
}

// New creates a station that samples from s and resolves through table.
func New(table calibration.Table, s Sampler) *Station {
	return &Station{
		table:   table,
		sampler: s,
	}
}

// Resolve samples one channel and returns its table value in table units.
func (s *Station) Resolve(ch Channel) (float32, error) {
	v, err := s.sampler.Sample(ch)
	if err != nil {
		return 0, fmt.Errorf("sample %s: %w", ch, err)
	}

	value, err := s.table.Resolve(v, ch.Column())
	if err != nil {
		return 0, fmt.Errorf("resolve %s: %w", ch, err)
	}
	return value, nil
}

// Measure performs one cycle: all channels are sampled in report order,
// resolved, and temperature and pressure are converted to °C and atm.
func (s *Station) Measure() (Reading, error) {
	var values [NumChannels]float32
	for _, ch := range Channels {
		v, err := s.Resolve(ch)
		if err != nil {
			return Reading{}, err
		}
		values[ch] = v
	}

	return Reading{
		WindDirection: float64(values[WindDirection]),
		WindSpeed:     float64(values[WindSpeed]),
		Temperature:   units.FahrenheitToCelsius(float64(values[Temperature])),
		Pressure:      float64(units.MillibarToAtm(values[Pressure])),
	}, nil
}

// Run measures and reports every interval until ctx is done.
// The first report is produced immediately. Run returns the first
// sampling or reporting error, or ctx.Err() once ctx is done.
func (s *Station) Run(ctx context.Context, interval time.Duration, r Reporter) error {
	if interval <= 0 {
		interval = DefaultInterval
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		reading, err := s.Measure()
		if err != nil {
			return err
		}
		if err := r.Report(reading); err != nil {
			return fmt.Errorf("report: %w", err)
		}

		timer.Reset(interval)
	}
}
