package report

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/itohio/gowx/pkg/station"
)

var (
	// ErrMalformed is returned for a report block that cannot be parsed.
	ErrMalformed = errors.New("malformed report")
	// ErrIncomplete is returned for a report block missing some quantities.
	ErrIncomplete = errors.New("incomplete report")
)

// Scanner reads reports from a stream, one block at a time.
type Scanner struct {
	sc *bufio.Scanner
}

// NewScanner creates a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{sc: bufio.NewScanner(r)}
}

// Next returns the next report. A block that fails to parse is skipped as a
// whole and reported as an error wrapping ErrMalformed or ErrIncomplete; the
// following call continues with the next block. Next returns io.EOF at the
// end of the stream, or the underlying read error.
func (s *Scanner) Next() (station.Reading, error) {
	var lines []string
	for s.sc.Scan() {
		line := strings.TrimSpace(s.sc.Text())
		if line == "" {
			if len(lines) == 0 {
				continue
			}
			return ParseBlock(lines)
		}
		lines = append(lines, line)
	}

	if err := s.sc.Err(); err != nil {
		return station.Reading{}, err
	}
	if len(lines) > 0 {
		return ParseBlock(lines)
	}
	return station.Reading{}, io.EOF
}

// ParseBlock parses the lines of a single report, in any order.
func ParseBlock(lines []string) (station.Reading, error) {
	var (
		vals [station.NumChannels]float64
		seen [station.NumChannels]bool
	)

	for _, line := range lines {
		ch, v, err := ParseLine(line)
		if err != nil {
			return station.Reading{}, err
		}
		if seen[ch] {
			return station.Reading{}, wrap(ErrMalformed, "duplicate "+Label(ch))
		}
		seen[ch] = true
		vals[ch] = v
	}

	for _, ch := range station.Channels {
		if !seen[ch] {
			return station.Reading{}, wrap(ErrIncomplete, "missing "+Label(ch))
		}
	}

	return station.Reading{
		WindDirection: vals[station.WindDirection],
		WindSpeed:     vals[station.WindSpeed],
		Temperature:   vals[station.Temperature],
		Pressure:      vals[station.Pressure],
	}, nil
}

// ParseLine parses a single "<LABEL>= <value> <UNIT>" line.
func ParseLine(line string) (station.Channel, float64, error) {
	label, rest, ok := strings.Cut(line, "=")
	if !ok {
		return 0, 0, wrap(ErrMalformed, "missing '=' in "+strconv.Quote(line))
	}
	label = strings.TrimSpace(label)

	ch, ok := channelForLabel(label)
	if !ok {
		return 0, 0, wrap(ErrMalformed, "unknown label "+strconv.Quote(label))
	}

	value, unit, _ := strings.Cut(strings.TrimSpace(rest), " ")
	if unit = strings.TrimSpace(unit); unit != fields[ch].unit {
		return 0, 0, wrap(ErrMalformed, label+": unexpected unit "+strconv.Quote(unit))
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, 0, wrap(ErrMalformed, label+": "+err.Error())
	}
	return ch, v, nil
}

func channelForLabel(label string) (station.Channel, bool) {
	for _, ch := range station.Channels {
		if fields[ch].label == label {
			return ch, true
		}
	}
	return 0, false
}

type parseError struct {
	kind error
	msg  string
}

func (e *parseError) Error() string { return e.kind.Error() + ": " + e.msg }
func (e *parseError) Unwrap() error { return e.kind }

func wrap(kind error, msg string) error {
	return &parseError{kind: kind, msg: msg}
}
