package calibration

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

var (
	// ErrEmptyTable is returned when resolving against a table without rows.
	ErrEmptyTable = errors.New("calibration table is empty")
	// ErrInvalidColumn is returned for columns that cannot be resolved.
	ErrInvalidColumn = errors.New("invalid calibration column")
)

// Resolve returns the value in column col of the row whose reference voltage
// is closest to v. On equal distance the earlier row wins.
//
// Any v is accepted; values beyond the table range resolve to the nearest
// end of the table.
func (t Table) Resolve(v float32, col Column) (float32, error) {
	if !col.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidColumn, int(col))
	}
	if len(t.rows) == 0 {
		return 0, ErrEmptyTable
	}

	closest := t.rows[0][col]
	minDiff := math32.Abs(v - t.rows[0][Voltage])

	for _, row := range t.rows[1:] {
		diff := math32.Abs(v - row[Voltage])
		if diff < minDiff {
			closest = row[col]
			minDiff = diff
		}
	}

	return closest, nil
}

// MustResolve is like Resolve but panics on an empty table or invalid column.
func (t Table) MustResolve(v float32, col Column) float32 {
	value, err := t.Resolve(v, col)
	if err != nil {
		panic(err)
	}
	return value
}
