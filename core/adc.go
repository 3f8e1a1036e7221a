// Analog input block
package core

import "dspblocks/f2837x"

// AnalogIn converts one ADC input per sample period. Str names the module
// ("A" to "D"), IntPar[0] the ADCIN channel and IntPar[1] the SOC slot.
// The output is the raw 12-bit count.
type AnalogIn struct {
	Module  f2837x.ADCModule
	Channel int
	SOC     int
}

func (d *AnalogIn) Init(b *Block) error {
	if len(b.IntPar) < 2 {
		return ErrMissingParam
	}
	m, err := f2837x.ParseADCModule(b.Str)
	if err != nil {
		return err
	}
	if err := f2837x.ValidateChannel(b.IntPar[0]); err != nil {
		return err
	}
	if err := f2837x.ValidateSOC(b.IntPar[1]); err != nil {
		return err
	}
	d.Module = m
	d.Channel = b.IntPar[0]
	d.SOC = b.IntPar[1]
	return MustADC().ConfigureChannel(d.Module, d.Channel, d.SOC)
}

func (d *AnalogIn) Output(b *Block) error {
	v, err := MustADC().ReadSOC(d.Module, d.SOC)
	if err != nil {
		return err
	}
	return b.setOutput(0, float64(v))
}

func (d *AnalogIn) Terminate(b *Block) error {
	return nil
}
