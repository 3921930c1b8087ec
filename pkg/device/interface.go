// Package device provides sources of station readings on the host: the
// firmware over a serial line, a local sampler, or a simulation.
package device

import (
	"time"

	"github.com/itohio/gowx/pkg/station"
)

// DefaultBufferSize is the default size for the samples channel buffer.
const DefaultBufferSize = 16

// Sample is a reading together with the time it was received or measured.
type Sample struct {
	Timestamp time.Time
	Reading   station.Reading
}

// Device defines the interface for reading sources (real or mocked).
type Device interface {
	Connect() error
	Close() error
	Samples() <-chan Sample
	IsConnected() bool
}

// Ensure Serial implements Device.
var _ Device = (*Serial)(nil)

// Ensure Local implements Device.
var _ Device = (*Local)(nil)
