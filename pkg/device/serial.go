package device

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/itohio/gowx/pkg/report"
	"go.bug.st/serial"
)

// DefaultBaudRate is the baud rate used by the firmware.
const DefaultBaudRate = 9600

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial reads reports printed by the firmware on a serial port.
type Serial struct {
	port     string
	baudRate int
	bufSize  int

	conn      io.ReadCloser
	samples   chan Sample
	done      chan struct{}
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool

	// open is replaced in tests.
	open func(port string, baudRate int) (io.ReadCloser, error)
	now  func() time.Time
}

// New creates a new Serial device with the specified port, baud rate, and buffer size.
func New(port string, baudRate int, bufSize int) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if bufSize == 0 {
		bufSize = DefaultBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Serial{
		port:     port,
		baudRate: baudRate,
		bufSize:  bufSize,
		samples:  make(chan Sample, bufSize),
		done:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
		open:     openSerial,
		now:      time.Now,
	}
}

func openSerial(port string, baudRate int) (io.ReadCloser, error) {
	return serial.Open(port, &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Connect opens the serial port and starts reading reports.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return fmt.Errorf("already connected")
	}
	if d.ctx.Err() != nil {
		return fmt.Errorf("device closed")
	}

	conn, err := d.open(d.port, d.baudRate)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	d.conn = conn
	d.connected = true

	go d.readSamples(conn)

	return nil
}

// Close closes the port and waits until the samples channel is closed.
func (d *Serial) Close() error {
	d.mu.Lock()
	if !d.connected {
		d.mu.Unlock()
		return nil
	}

	d.cancel()

	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			log.Printf("Error closing serial port: %v", err)
		}
		d.conn = nil
	}

	d.connected = false
	d.mu.Unlock()

	<-d.done
	return nil
}

// Samples returns the channel for reading samples.
func (d *Serial) Samples() <-chan Sample {
	return d.samples
}

// IsConnected returns whether the device is currently connected.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// readSamples parses reports from the port until it is closed.
func (d *Serial) readSamples(conn io.Reader) {
	defer close(d.done)
	defer close(d.samples)

	scanner := report.NewScanner(conn)
	for {
		reading, err := scanner.Next()
		if d.ctx.Err() != nil {
			return
		}
		switch {
		case err == nil:
		case errors.Is(err, report.ErrMalformed), errors.Is(err, report.ErrIncomplete):
			log.Printf("Skipping report: %v", err)
			continue
		case errors.Is(err, io.EOF):
			return
		default:
			log.Printf("Error reading from serial port: %v", err)
			return
		}

		select {
		case d.samples <- Sample{Timestamp: d.now(), Reading: reading}:
		case <-d.ctx.Done():
			return
		default:
			log.Printf("Samples channel full, dropping sample")
		}
	}
}
