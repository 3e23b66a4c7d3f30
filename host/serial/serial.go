// Package serial opens the meter's CDC serial port on the host side.
package serial

import (
	"io"
)

// Port is the serial stream the collector reads measurement lines from.
// The abstraction keeps the native implementation swappable for an
// in-memory one in tests.
type Port interface {
	io.ReadWriteCloser

	// Flush drops any buffered data.
	Flush() error
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g. "/dev/ttyACM0", "COM3").
	Device string

	// Baud rate. USB CDC ignores it, but a real UART bridge will not.
	Baud int

	// Read timeout in milliseconds, 0 for blocking reads.
	ReadTimeout int
}

// DefaultConfig returns the stock collector setup: blocking reads, since a
// meter waiting on an edge may stay silent for as long as the signal does.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 0,
	}
}
