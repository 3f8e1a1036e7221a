// Package telemetry implements the SCI plot stream: a fixed ring of float32
// samples drained by the transmit interrupt into the SCI FIFO, and the
// receiver-side synchroniser for the resulting byte stream.
package telemetry

import "errors"

// Sample is one measurement tick as sent over the wire.
type Sample float32

const (
	// Sentinel is stored in slot 0 of every ring and sent once per lap of the
	// read cursor so receivers can find sample boundaries.
	Sentinel Sample = 123456.789

	// DefaultCapacity is the ring size used by the plot block, sentinel slot
	// included.
	DefaultCapacity = 70

	// BatchSize is the number of samples moved per transmit interrupt. Four
	// samples fill the 16-byte SCI TX FIFO.
	BatchSize = 4

	// SampleSize is the encoded size of one sample in bytes.
	SampleSize = 4
)

var (
	// ErrCapacity is returned for rings that cannot hold the sentinel plus at
	// least one live sample.
	ErrCapacity = errors.New("telemetry: ring capacity must be at least 2")
)

// TxQueue is the transmit side of a serial peripheral as seen by Drain.
//
// None of these methods may call back into the ring; on hardware the ISR
// stays masked until Drain returns.
type TxQueue interface {
	// PushByte places one byte in the hardware transmit FIFO.
	PushByte(b byte)

	// SetTxInterrupt enables or disables the "FIFO has room" interrupt.
	SetTxInterrupt(enabled bool)

	// AckTxInterrupt clears the pending interrupt flag so it can fire again.
	AckTxInterrupt()
}

// State is the transmitter state.
type State uint8

const (
	// Idle means the transmit interrupt is off and no real data is pending.
	Idle State = iota
	// Draining means the interrupt is armed and samples remain to be sent.
	Draining
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Draining:
		return "draining"
	default:
		return "unknown"
	}
}
