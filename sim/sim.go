// Package sim models the F2837x peripheral registers used by the device
// blocks so a model can run on a host. A Board implements every core HAL
// driver and is installed with Install.
package sim

import (
	"errors"
	"io"

	"dspblocks/core"
)

var ErrNotConfigured = errors.New("sim: peripheral not configured")

// Board bundles the simulated peripherals.
type Board struct {
	GPIO *GPIO
	ADC  *ADC
	PWM  *PWM
	SCI  *SCI
}

// NewBoard builds a board whose SCI line writes to line. A nil line
// discards the transmitted bytes.
func NewBoard(line io.Writer) *Board {
	return &Board{
		GPIO: NewGPIO(),
		ADC:  NewADC(),
		PWM:  NewPWM(),
		SCI:  NewSCI(line),
	}
}

// Install registers the board as the core drivers.
func (b *Board) Install() {
	core.SetGPIODriver(b.GPIO)
	core.SetADCDriver(b.ADC)
	core.SetPWMDriver(b.PWM)
	core.SetSCIDriver(b.SCI)
}
