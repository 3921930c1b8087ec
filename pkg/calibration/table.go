// Package calibration holds the sensor calibration table and the
// nearest-match lookup used to turn a measured voltage into a sensor value.
package calibration

// Column selects a field of a Row.
type Column int

const (
	// Voltage is the reference voltage. It is the search key and never a result column.
	Voltage Column = iota
	WindDirection
	WindSpeed
	Temperature // °F
	Pressure    // mb

	numColumns
)

// String returns the column name.
func (c Column) String() string {
	switch c {
	case Voltage:
		return "voltage"
	case WindDirection:
		return "wind direction"
	case WindSpeed:
		return "wind speed"
	case Temperature:
		return "temperature"
	case Pressure:
		return "pressure"
	default:
		return "invalid"
	}
}

// Valid reports whether c can be returned by Resolve.
func (c Column) Valid() bool {
	return c > Voltage && c < numColumns
}

// Row is a single calibration entry: a reference voltage followed by the
// values derived for it, indexed by Column.
type Row [numColumns]float32

// Voltage returns the row's reference voltage.
func (r Row) Voltage() float32 {
	return r[Voltage]
}

// Table is an immutable ordered set of calibration rows.
// The zero value is an empty table.
type Table struct {
	rows []Row
}

// New creates a table from the given rows. The rows are copied.
func New(rows ...Row) Table {
	t := Table{rows: make([]Row, len(rows))}
	copy(t.rows, rows)
	return t
}

// Default returns the shipped calibration table.
func Default() Table {
	return defaultTable
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.rows)
}

// Row returns the i-th row. It panics if i is out of range.
func (t Table) Row(i int) Row {
	return t.rows[i]
}

// Rows returns a copy of all rows.
func (t Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Sensor output for 0-5 V in 1/32 steps. Voltages are rounded to mV.
var defaultTable = Table{rows: []Row{
	{0.000, 0.000, 0.00, 0.0, 950},
	{0.156, 3.125, 11.25, 4.0, 953},
	{0.313, 6.250, 22.50, 8.0, 956},
	{0.469, 9.375, 33.75, 12.0, 959},
	{0.625, 12.500, 45.00, 16.0, 963},
	{0.781, 15.625, 56.25, 20.0, 966},
	{0.938, 18.750, 67.50, 24.0, 969},
	{1.094, 21.875, 78.75, 28.0, 972},
	{1.250, 25.000, 90.00, 32.0, 975},
	{1.406, 28.125, 101.25, 36.0, 978},
	{1.563, 31.250, 112.50, 40.0, 981},
	{1.719, 34.375, 123.75, 44.0, 984},
	{1.875, 37.500, 135.00, 48.0, 988},
	{2.031, 40.625, 146.25, 52.0, 991},
	{2.188, 43.750, 157.50, 56.0, 994},
	{2.344, 46.875, 168.75, 60.0, 997},
	{2.500, 50.000, 180.00, 64.0, 1000},
	{2.656, 53.125, 191.25, 68.0, 1003},
	{2.813, 56.250, 202.50, 72.0, 1006},
	{2.969, 59.375, 213.75, 76.0, 1009},
	{3.125, 62.500, 225.00, 80.0, 1013},
	{3.281, 65.625, 236.25, 84.0, 1016},
	{3.438, 68.750, 247.50, 88.0, 1019},
	{3.594, 71.875, 258.75, 92.0, 1022},
	{3.750, 75.000, 270.00, 96.0, 1025},
	{3.906, 78.125, 281.25, 100.0, 1028},
	{4.063, 81.250, 292.50, 104.0, 1031},
	{4.219, 84.375, 303.75, 108.0, 1034},
	{4.375, 87.500, 315.00, 112.0, 1038},
	{4.531, 90.625, 326.25, 116.0, 1041},
	{4.688, 93.750, 337.50, 120.0, 1044},
	{4.844, 96.875, 348.75, 124.0, 1047},
	{5.000, 100.000, 360.00, 128.0, 1050},
}}
