// Digital I/O blocks
package core

// Signal levels written to block outputs
const (
	SignalLow  = 0.0
	SignalHigh = 1.0

	// signalThreshold splits a real-valued input into a logic level
	signalThreshold = 0.5
)

func level(v bool) float64 {
	if v {
		return SignalHigh
	}
	return SignalLow
}

// InputGPIO samples a pin with its pull-up enabled and outputs 1.0 or 0.0.
// The pin number is IntPar[1]. A pin outside the bank table is left
// unconfigured and reads low.
type InputGPIO struct {
	Pin   GPIOPin
	valid bool
}

func (d *InputGPIO) Init(b *Block) error {
	if len(b.IntPar) < 2 {
		return ErrMissingParam
	}
	pin, err := checkPin(b.IntPar[1])
	if err != nil {
		DebugPrintln("[GPIO] " + b.Name + ": pin " + itoa(b.IntPar[1]) + " not mapped, reading low")
		d.valid = false
		return nil
	}
	if err := MustGPIO().ConfigureInputPullUp(pin); err != nil {
		return err
	}
	d.Pin = pin
	d.valid = true
	return nil
}

func (d *InputGPIO) Output(b *Block) error {
	v := false
	if d.valid {
		v = MustGPIO().ReadPin(d.Pin)
	}
	return b.setOutput(0, level(v))
}

func (d *InputGPIO) Terminate(b *Block) error {
	return nil
}

// OutputGPIO drives pin IntPar[0] high while its input exceeds 0.5 and
// leaves it low on terminate.
type OutputGPIO struct {
	Pin GPIOPin
}

func (d *OutputGPIO) Init(b *Block) error {
	if len(b.IntPar) < 1 {
		return ErrMissingParam
	}
	pin, err := checkPin(b.IntPar[0])
	if err != nil {
		return err
	}
	gpio := MustGPIO()
	if err := gpio.ConfigureOutput(pin); err != nil {
		return err
	}
	d.Pin = pin
	return gpio.SetPin(pin, false)
}

func (d *OutputGPIO) Output(b *Block) error {
	u, err := b.input(0)
	if err != nil {
		return err
	}
	return MustGPIO().SetPin(d.Pin, u > signalThreshold)
}

func (d *OutputGPIO) Terminate(b *Block) error {
	return MustGPIO().SetPin(d.Pin, false)
}
