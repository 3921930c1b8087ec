package device

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/itohio/gowx/pkg/calibration"
	"github.com/itohio/gowx/pkg/station"
)

// Local runs the measurement cycle on the host against a station.Sampler,
// e.g. an ADC attached to the I²C bus.
type Local struct {
	station  *station.Station
	sampler  station.Sampler
	interval time.Duration

	samples   chan Sample
	done      chan struct{}
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool

	now func() time.Time
}

// NewLocal creates a device measuring from s every interval. If s implements
// io.Closer it is closed together with the device.
func NewLocal(s station.Sampler, table calibration.Table, interval time.Duration, bufSize int) *Local {
	if interval <= 0 {
		interval = station.DefaultInterval
	}
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Local{
		station:  station.New(table, s),
		sampler:  s,
		interval: interval,
		samples:  make(chan Sample, bufSize),
		done:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
		now:      time.Now,
	}
}

// Connect starts the measurement loop.
func (l *Local) Connect() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.connected {
		return fmt.Errorf("already connected")
	}
	if l.ctx.Err() != nil {
		return fmt.Errorf("device closed")
	}

	l.connected = true
	go l.measure()

	return nil
}

// Close stops the measurement loop and waits until the samples channel is closed.
func (l *Local) Close() error {
	l.mu.Lock()
	if !l.connected {
		l.mu.Unlock()
		return nil
	}
	l.cancel()
	l.connected = false
	l.mu.Unlock()

	<-l.done

	if c, ok := l.sampler.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("failed to close sampler: %w", err)
		}
	}
	return nil
}

// Samples returns the channel for reading samples.
func (l *Local) Samples() <-chan Sample {
	return l.samples
}

// IsConnected returns whether the measurement loop is running.
func (l *Local) IsConnected() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.connected
}

// measure runs the station and forwards its readings. Failed cycles are
// logged and skipped.
func (l *Local) measure() {
	defer close(l.done)
	defer close(l.samples)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		reading, err := l.station.Measure()
		if err != nil {
			log.Printf("Measurement failed: %v", err)
		} else {
			select {
			case l.samples <- Sample{Timestamp: l.now(), Reading: reading}:
			case <-l.ctx.Done():
				return
			default:
				log.Printf("Samples channel full, dropping sample")
			}
		}

		select {
		case <-l.ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
