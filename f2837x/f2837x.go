// Package f2837x holds the register-layout lookups of the TMS320F2837xD
// peripherals used by the device blocks: GPIO data banks, ePWM output
// routing, ADC SOC slots and SCI baud dividers.
package f2837x

import "errors"

var (
	ErrInvalidPin    = errors.New("f2837x: GPIO pin out of range")
	ErrInvalidOutput = errors.New("f2837x: unknown ePWM output")
	ErrInvalidModule = errors.New("f2837x: unknown ADC module")
	ErrInvalidSOC    = errors.New("f2837x: SOC out of range")
	ErrInvalidChan   = errors.New("f2837x: ADC channel out of range")
	ErrNoADCInt      = errors.New("f2837x: all ADC interrupts in use")
	ErrInvalidBaud   = errors.New("f2837x: baud rate out of range")
)
