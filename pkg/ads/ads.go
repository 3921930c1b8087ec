// Package ads samples the station channels from a TI ADS1115 on the I²C bus.
//
// AIN0..AIN3 carry wind direction, wind speed, temperature and pressure,
// each measured single-ended against GND.
package ads

import (
	"errors"
	"fmt"

	"github.com/itohio/gowx/pkg/config"
	"github.com/itohio/gowx/pkg/station"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/host/v3"
)

// pin is the subset of ads1x15.PinADC used by the sampler.
type pin interface {
	Read() (analog.Sample, error)
	Halt() error
}

var inputs = [station.NumChannels]ads1x15.Channel{
	station.WindDirection: ads1x15.Channel0,
	station.WindSpeed:     ads1x15.Channel1,
	station.Temperature:   ads1x15.Channel2,
	station.Pressure:      ads1x15.Channel3,
}

// Sampler reads channel voltages from an ADS1115.
type Sampler struct {
	bus  i2c.BusCloser
	pins [station.NumChannels]pin
}

var _ station.Sampler = (*Sampler)(nil)

// Open initializes the host drivers, opens the I²C bus and configures one
// single-ended input per station channel.
func Open(cfg config.ADS1115Config) (*Sampler, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return nil, fmt.Errorf("i2c open %q: %w", cfg.Bus, err)
	}

	dev, err := ads1x15.NewADS1115(bus, &ads1x15.Opts{I2cAddress: cfg.Address})
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("ads1115 init: %w", err)
	}

	s := &Sampler{bus: bus}
	maxV := physic.ElectricPotential(cfg.MaxVoltage * float64(physic.Volt))
	rate := physic.Frequency(cfg.RateHz) * physic.Hertz

	for _, ch := range station.Channels {
		p, err := dev.PinForChannel(inputs[ch], maxV, rate, ads1x15.SaveEnergy)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("ads1115 %s input: %w", ch, err)
		}
		s.pins[ch] = p
	}

	return s, nil
}

// Sample returns the voltage on the input wired to ch.
func (s *Sampler) Sample(ch station.Channel) (float32, error) {
	if ch < 0 || int(ch) >= len(s.pins) || s.pins[ch] == nil {
		return 0, fmt.Errorf("ads1115: no input for channel %d", int(ch))
	}

	sample, err := s.pins[ch].Read()
	if err != nil {
		return 0, fmt.Errorf("ads1115 read %s: %w", ch, err)
	}
	return volts(sample.V), nil
}

// Close halts all inputs and closes the bus.
func (s *Sampler) Close() error {
	var errs []error
	for i, p := range s.pins {
		if p == nil {
			continue
		}
		if err := p.Halt(); err != nil {
			errs = append(errs, err)
		}
		s.pins[i] = nil
	}
	if s.bus != nil {
		if err := s.bus.Close(); err != nil {
			errs = append(errs, err)
		}
		s.bus = nil
	}
	return errors.Join(errs...)
}

func volts(v physic.ElectricPotential) float32 {
	return float32(float64(v) / float64(physic.Volt))
}
