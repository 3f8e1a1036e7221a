//go:build rp2040

package main

import (
	"errors"
	"machine"
	"sync"

	"dspblocks/f2837x"
	"dspblocks/targets/ads1115"
)

var errNoExternalADC = errors.New("ADC modules C and D need an ADS1115")

type socSlot struct {
	configured bool
	channel    int
}

// RPADCDriver implements core.ADCDriver. Modules A and B use the on-chip
// converter (ADC0..ADC3); modules C and D are channels of an external
// ADS1115 on I2C whose results lag one conversion (see package ads1115).
// Counts are returned as 12-bit values like the F2837x.
type RPADCDriver struct {
	mu      sync.Mutex
	slots   [4][f2837x.MaxSOC + 1]socSlot
	ints    [4]f2837x.ADCIntAllocator
	onchip  [4]*machine.ADC
	ext     *ads1115.Device
	started bool
}

// NewRPADCDriver creates the driver; ext may be nil when no ADS1115 is
// fitted.
func NewRPADCDriver(ext *ads1115.Device) *RPADCDriver {
	return &RPADCDriver{ext: ext}
}

func (d *RPADCDriver) ConfigureChannel(module f2837x.ADCModule, channel, soc int) error {
	if !module.Valid() {
		return f2837x.ErrInvalidModule
	}
	if err := f2837x.ValidateSOC(soc); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	switch module {
	case f2837x.ADCA, f2837x.ADCB:
		if channel < 0 || channel > 3 {
			return f2837x.ErrInvalidChan
		}
		if !d.started {
			machine.InitADC()
			d.started = true
		}
		if d.onchip[channel] == nil {
			adc := machine.ADC{Pin: machine.ADC0 + machine.Pin(channel)}
			adc.Configure(machine.ADCConfig{})
			d.onchip[channel] = &adc
		}
	default:
		if d.ext == nil {
			return errNoExternalADC
		}
		if channel < 0 || channel > 3 {
			return f2837x.ErrInvalidChan
		}
	}

	if _, err := d.ints[module.Index()].Assign(soc); err != nil {
		return err
	}
	d.slots[module.Index()][soc] = socSlot{configured: true, channel: channel}
	return nil
}

func (d *RPADCDriver) ReadSOC(module f2837x.ADCModule, soc int) (uint16, error) {
	if !module.Valid() {
		return 0, f2837x.ErrInvalidModule
	}
	if err := f2837x.ValidateSOC(soc); err != nil {
		return 0, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	slot := d.slots[module.Index()][soc]
	if !slot.configured {
		return 0, errors.New("SOC not configured")
	}

	if module == f2837x.ADCA || module == f2837x.ADCB {
		// machine.ADC.Get scales the 12-bit result to 16 bits
		return d.onchip[slot.channel].Get() >> 4, nil
	}
	return d.ext.Read(slot.channel)
}
