//go:build tinygo

package main

import (
	"machine"
	"time"
)

const (
	// Reporting configuration
	REPORT_INTERVAL = 2000 * time.Millisecond // Time between reports
	OVERSAMPLE      = 4                       // ADC reads averaged per channel sample

	// ADC configuration
	ADC_REFERENCE_V = 5.0 // AVCC reference (Arduino Uno)
	ADC_BITS        = 16  // machine.ADC.Get always returns 16-bit left-aligned values

	// Serial configuration
	// Report is ~110 bytes every 2 s; 9600 baud moves ~960 bytes/s.
	UART_BAUD_RATE = 9600
)

// Analog inputs in station.Channels order:
// wind direction, wind speed, temperature, pressure.
var channelPins = [4]machine.Pin{
	machine.ADC0,
	machine.ADC1,
	machine.ADC2,
	machine.ADC3,
}
