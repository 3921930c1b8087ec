//go:build tinygo

//go:generate tinygo flash -target=arduino

package main

import (
	"context"
	"machine"

	"github.com/itohio/gowx/pkg/adc"
	"github.com/itohio/gowx/pkg/calibration"
	"github.com/itohio/gowx/pkg/report"
	"github.com/itohio/gowx/pkg/station"
)

var (
	adcs [station.NumChannels]machine.ADC
	conv = adc.New(ADC_BITS, ADC_REFERENCE_V)
	uart = machine.UART0
)

func main() {
	machine.InitADC()

	// Configure ADC pins
	for ch, pin := range channelPins {
		pin.Configure(machine.PinConfig{Mode: machine.PinInput})
		adcs[ch] = machine.ADC{Pin: pin}
		adcs[ch].Configure(machine.ADCConfig{})
	}

	// Configure UART for reports
	uart.Configure(machine.UARTConfig{
		BaudRate: UART_BAUD_RATE,
	})

	st := station.New(calibration.Default(), station.SamplerFunc(sample))
	w := report.NewWriter(uart)

	// Run only returns if a report could not be written; keep going.
	for {
		if err := st.Run(context.Background(), REPORT_INTERVAL, w); err != nil {
			println("report failed:", err.Error())
		}
	}
}

// sample reads a channel and scales it to volts.
func sample(ch station.Channel) (float32, error) {
	raw := adc.Average(adcs[ch].Get, OVERSAMPLE)
	return conv.Voltage(uint32(raw)), nil
}
