// Package ads1115 drives a TI ADS1115 16-bit converter over I2C as a
// four-channel, 12-bit ADC that never blocks the sample period.
package ads1115

import (
	"errors"

	"tinygo.org/x/drivers"
)

// DefaultAddress is the bus address with ADDR tied to ground
const DefaultAddress = 0x48

// Register map and config fields
const (
	regConv    = 0x00
	regConfig  = 0x01
	osSingle   = 1 << 15   // write: start a conversion; read: 1 when idle
	muxSingle0 = 0x4 << 12 // AIN0 vs GND; AINn adds n
	pga4V096   = 0x1 << 9  // +-4.096 V full scale
	modeSingle = 1 << 8
	rate860    = 0x7 << 5
	compOff    = 0x3
)

// NumChannels is AIN0..AIN3
const NumChannels = 4

var ErrChannel = errors.New("ads1115: channel out of range")

// Device is one converter. Conversions are pipelined: Read hands back the
// last finished result of a channel and starts the next conversion if the
// converter is free, so no call waits on the 1.2 ms conversion time at
// 860 SPS. A value therefore lags its Read by at least one call, and with
// sample periods shorter than a conversion a channel repeats its previous
// value until the converter catches up.
type Device struct {
	bus     drivers.I2C
	Address uint16

	last [NumChannels]uint16
	busy int // channel being converted, -1 when idle
	buf  [3]byte
}

// New returns a converter on bus at DefaultAddress
func New(bus drivers.I2C) *Device {
	return &Device{bus: bus, Address: DefaultAddress, busy: -1}
}

// Read returns the latest 12-bit count of AINch against ground. It is 0
// until the first conversion of ch has finished.
func (d *Device) Read(ch int) (uint16, error) {
	if ch < 0 || ch >= NumChannels {
		return 0, ErrChannel
	}

	if d.busy >= 0 {
		idle, err := d.idle()
		if err != nil {
			return 0, err
		}
		if !idle {
			return d.last[ch], nil
		}
		v, err := d.result()
		if err != nil {
			return 0, err
		}
		d.last[d.busy] = v
		d.busy = -1
	}

	if err := d.start(ch); err != nil {
		return 0, err
	}
	d.busy = ch
	return d.last[ch], nil
}

// Busy reports the channel being converted, or -1
func (d *Device) Busy() int {
	return d.busy
}

func (d *Device) start(ch int) error {
	cfg := uint16(osSingle | (muxSingle0 + ch<<12) | pga4V096 | modeSingle | rate860 | compOff)
	d.buf[0] = regConfig
	d.buf[1] = byte(cfg >> 8)
	d.buf[2] = byte(cfg)
	return d.bus.Tx(d.Address, d.buf[:3], nil)
}

func (d *Device) idle() (bool, error) {
	d.buf[0] = regConfig
	if err := d.bus.Tx(d.Address, d.buf[:1], d.buf[1:3]); err != nil {
		return false, err
	}
	return d.buf[1]&0x80 != 0, nil
}

// result reads the conversion register as a 12-bit count; negative
// readings clamp to 0.
func (d *Device) result() (uint16, error) {
	d.buf[0] = regConv
	if err := d.bus.Tx(d.Address, d.buf[:1], d.buf[1:3]); err != nil {
		return 0, err
	}
	v := int16(uint16(d.buf[1])<<8 | uint16(d.buf[2]))
	if v < 0 {
		return 0, nil
	}
	return uint16(v) >> 3, nil
}
