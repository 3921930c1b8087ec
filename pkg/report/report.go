// Package report formats station readings as the text report emitted on the
// serial line and parses such reports back into readings.
//
// A report is one line per quantity followed by an empty line:
//
//	WIND DIRECTION= 50.00 DEGREES
//	WIND SPEED= 180.00 MPH
//	TEMPERATURE= -6.67 Degrees C
//	PRESSURE= 1.00 ATM
//
// The package avoids fmt so it can be used from the firmware.
package report

import (
	"io"
	"strconv"

	"github.com/itohio/gowx/pkg/station"
)

// DefaultPrecision is the number of decimals printed per value.
const DefaultPrecision = 2

const newline = "\r\n"

type field struct {
	label string
	unit  string
}

var fields = [station.NumChannels]field{
	station.WindDirection: {"WIND DIRECTION", "DEGREES"},
	station.WindSpeed:     {"WIND SPEED", "MPH"},
	station.Temperature:   {"TEMPERATURE", "Degrees C"},
	station.Pressure:      {"PRESSURE", "ATM"},
}

// Label returns the report label of a channel.
func Label(ch station.Channel) string {
	return fields[ch].label
}

// Unit returns the report unit of a channel.
func Unit(ch station.Channel) string {
	return fields[ch].unit
}

func values(r station.Reading) [station.NumChannels]float64 {
	return [station.NumChannels]float64{
		station.WindDirection: r.WindDirection,
		station.WindSpeed:     r.WindSpeed,
		station.Temperature:   r.Temperature,
		station.Pressure:      r.Pressure,
	}
}

// Append appends the report for r to dst using prec decimals per value.
func Append(dst []byte, r station.Reading, prec int) []byte {
	vals := values(r)
	for _, ch := range station.Channels {
		dst = append(dst, fields[ch].label...)
		dst = append(dst, "= "...)
		dst = strconv.AppendFloat(dst, vals[ch], 'f', prec, 64)
		dst = append(dst, ' ')
		dst = append(dst, fields[ch].unit...)
		dst = append(dst, newline...)
	}
	return append(dst, newline...)
}

// Writer writes reports to an io.Writer. It implements station.Reporter.
type Writer struct {
	w         io.Writer
	precision int
	buf       []byte
}

var _ station.Reporter = (*Writer)(nil)

// NewWriter creates a Writer with DefaultPrecision.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:         w,
		precision: DefaultPrecision,
		buf:       make([]byte, 0, 128),
	}
}

// SetPrecision sets the number of decimals. Negative values select the
// shortest representation that round-trips.
func (w *Writer) SetPrecision(prec int) {
	w.precision = prec
}

// Report writes a single report for r.
func (w *Writer) Report(r station.Reading) error {
	w.buf = Append(w.buf[:0], r, w.precision)
	_, err := w.w.Write(w.buf)
	return err
}
