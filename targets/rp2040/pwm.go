//go:build rp2040

package main

import (
	"machine"

	"dspblocks/f2837x"
)

// tbclkNS is the ePWM time-base clock period (TBCLK = 100 MHz). An
// up-down period lasts 2*TBPRD clocks.
const tbclkNS = 10

// pwmSlice abstracts TinyGo's unexported *pwmGroup
type pwmSlice interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

type epwmState struct {
	slice   pwmSlice
	channel uint8
	period  uint16
}

// RPPWMDriver implements core.PWMDriver on the RP2040 PWM slices. An
// ePWM output drives the RP2040 pin with its GPIO number, so out1a..out8b
// land on GPIO0..GPIO15.
type RPPWMDriver struct {
	outputs map[string]*epwmState
}

func NewRPPWMDriver() *RPPWMDriver {
	return &RPPWMDriver{outputs: make(map[string]*epwmState)}
}

func (d *RPPWMDriver) Configure(out f2837x.EPWMOutput, period, compare uint16) error {
	pin := machine.Pin(out.GPIO)
	slice := sliceFor(out.GPIO)
	err := slice.Configure(machine.PWMConfig{
		Period: uint64(period) * 2 * tbclkNS,
	})
	if err != nil {
		return err
	}
	ch, err := slice.Channel(pin)
	if err != nil {
		return err
	}
	st := &epwmState{slice: slice, channel: ch, period: period}
	d.outputs[out.Name] = st
	st.set(compare)
	return nil
}

func (d *RPPWMDriver) SetCompare(out f2837x.EPWMOutput, compare uint16) error {
	st, ok := d.outputs[out.Name]
	if !ok {
		return f2837x.ErrInvalidOutput
	}
	st.set(compare)
	return nil
}

func (d *RPPWMDriver) Disable(out f2837x.EPWMOutput) error {
	st, ok := d.outputs[out.Name]
	if !ok {
		return nil
	}
	st.slice.Set(st.channel, 0)
	delete(d.outputs, out.Name)
	return nil
}

// set converts CMPA into the RP2040 level: the ePWM output is high while
// the counter is above CMPA.
func (st *epwmState) set(compare uint16) {
	if compare > st.period {
		compare = st.period
	}
	top := uint64(st.slice.Top())
	high := top * uint64(st.period-compare) / uint64(st.period)
	st.slice.Set(st.channel, uint32(high))
}

// sliceFor returns the PWM slice of a GPIO: (gpio >> 1) & 7
func sliceFor(gpio int) pwmSlice {
	switch (gpio >> 1) & 7 {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}
