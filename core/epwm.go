// ePWM output block
package core

import "dspblocks/f2837x"

// EPWM runs an ePWM output named by Str ("out1a" to "out8b") with period
// IntPar[0] and duty IntPar[1] percent. When the block has an input port
// its value replaces the duty, in percent, every sample period.
type EPWM struct {
	Out    f2837x.EPWMOutput
	Period uint16
	Duty   int
}

func (d *EPWM) Init(b *Block) error {
	if len(b.IntPar) < 2 {
		return ErrMissingParam
	}
	out, err := f2837x.LookupEPWMOutput(b.Str)
	if err != nil {
		return err
	}
	if b.IntPar[0] < 1 || b.IntPar[0] > 0xFFFF {
		return ErrInvalidPeriod
	}
	d.Out = out
	d.Period = uint16(b.IntPar[0])
	d.Duty = clampDuty(b.IntPar[1])
	return MustPWM().Configure(out, d.Period, f2837x.CompareFromDuty(d.Period, d.Duty))
}

func (d *EPWM) Output(b *Block) error {
	if len(b.U) == 0 {
		return nil
	}
	u, err := b.input(0)
	if err != nil {
		return err
	}
	duty := 0
	if u > 0 {
		duty = clampDuty(int(u + 0.5))
	}
	if duty == d.Duty {
		return nil
	}
	d.Duty = duty
	return MustPWM().SetCompare(d.Out, f2837x.CompareFromDuty(d.Period, duty))
}

func (d *EPWM) Terminate(b *Block) error {
	return MustPWM().Disable(d.Out)
}

func clampDuty(duty int) int {
	if duty < 0 {
		return 0
	}
	if duty > 100 {
		return 100
	}
	return duty
}
