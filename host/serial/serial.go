// Package serial opens the board's telemetry UART from the host.
package serial

import (
	"errors"
	"io"
)

// ErrNilConfig is returned by Open when no configuration is given
var ErrNilConfig = errors.New("serial: config cannot be nil")

// Port represents a serial port.
// Implementations: native serial (github.com/tarm/serial) or an in-memory
// stream for testing.
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate (USB CDC ignores this)
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the board's UART settings for device
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}
