package core

import "dspblocks/telemetry"

// SCIDriver is the serial transmit path the plot block streams through.
// The embedded TxQueue is what the telemetry ring drains into.
type SCIDriver interface {
	telemetry.TxQueue

	// Init configures the port for 8N1 at baud with the TX FIFO enabled
	// and the TX interrupt masked.
	Init(baud uint32) error

	// SetTxHandler installs the function run on every TX FIFO interrupt.
	// A nil handler detaches it.
	SetTxHandler(h func())
}

var sciDriver SCIDriver

// SetSCIDriver is called by target-specific code to register its driver.
func SetSCIDriver(d SCIDriver) {
	sciDriver = d
}

// MustSCI returns the configured driver or panics if missing.
func MustSCI() SCIDriver {
	if sciDriver == nil {
		panic("SCI driver not configured")
	}
	return sciDriver
}
