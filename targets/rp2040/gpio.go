//go:build rp2040

package main

import (
	"machine"

	"dspblocks/core"
	"dspblocks/f2837x"
)

// numPins is GPIO0..GPIO29
const numPins = 30

// RPGPIODriver implements core.GPIODriver on the RP2040 pins. Block pin
// numbers map one to one; numbers past GPIO29 are rejected.
type RPGPIODriver struct {
	configured map[core.GPIOPin]machine.Pin
}

func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{
		configured: make(map[core.GPIOPin]machine.Pin),
	}
}

func (d *RPGPIODriver) configure(pin core.GPIOPin, mode machine.PinMode) error {
	if pin >= numPins {
		return f2837x.ErrInvalidPin
	}
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: mode})
	d.configured[pin] = p
	return nil
}

func (d *RPGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	return d.configure(pin, machine.PinOutput)
}

func (d *RPGPIODriver) ConfigureInputPullUp(pin core.GPIOPin) error {
	return d.configure(pin, machine.PinInputPullup)
}

func (d *RPGPIODriver) ConfigureInputPullDown(pin core.GPIOPin) error {
	return d.configure(pin, machine.PinInputPulldown)
}

func (d *RPGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	p, ok := d.configured[pin]
	if !ok {
		return f2837x.ErrInvalidPin
	}
	p.Set(value)
	return nil
}

func (d *RPGPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	p, ok := d.configured[pin]
	if !ok {
		return false, f2837x.ErrInvalidPin
	}
	return p.Get(), nil
}

func (d *RPGPIODriver) ReadPin(pin core.GPIOPin) bool {
	v, _ := d.GetPin(pin)
	return v
}
