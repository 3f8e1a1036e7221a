// Package serial opens the host end of the SCI telemetry link.
package serial

import (
	"errors"
	"io"
)

// Port is the host side of the link. Native ports use
// github.com/tarm/serial; tests substitute in-memory pipes.
type Port interface {
	io.ReadWriteCloser

	// Flush discards bytes received but not yet read
	Flush() error
}

var ErrNoDevice = errors.New("serial: no device configured")

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string `yaml:"device"`

	// Baud rate; the plot stream runs at 2 Mbaud
	Baud int `yaml:"baud"`

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int `yaml:"read_timeout_ms"`
}

// DefaultConfig returns the 8N1, 2 Mbaud setup the plot block transmits
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        2000000,
		ReadTimeout: 100,
	}
}

// Validate checks the fields Open needs
func (c *Config) Validate() error {
	if c.Device == "" {
		return ErrNoDevice
	}
	if c.Baud <= 0 {
		return errors.New("serial: baud must be positive")
	}
	if c.ReadTimeout < 0 {
		return errors.New("serial: read timeout must not be negative")
	}
	return nil
}
