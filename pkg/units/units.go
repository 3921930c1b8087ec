// Package units converts table values into the units that are reported.
package units

// FahrenheitToCelsius converts a temperature in °F to °C.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) / 1.8
}

// MillibarToAtm converts a pressure in millibar to atmospheres.
// The conversion uses 1 atm = 1000 mb.
func MillibarToAtm(mb float32) float32 {
	return mb / 1000
}
