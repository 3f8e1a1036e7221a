package core

// LED drives an indicator on pin IntPar[0]. With IntPar[1] == 1 the LED is
// wired active low, like LED1 and LED2 on the F28379D LaunchPad (GPIO31
// and GPIO34), and the pin is inverted.
type LED struct {
	Pin       GPIOPin
	ActiveLow bool
}

func (d *LED) Init(b *Block) error {
	if len(b.IntPar) < 1 {
		return ErrMissingParam
	}
	pin, err := checkPin(b.IntPar[0])
	if err != nil {
		return err
	}
	d.Pin = pin
	d.ActiveLow = b.intParam(1, 0) == 1

	gpio := MustGPIO()
	if err := gpio.ConfigureOutput(pin); err != nil {
		return err
	}
	return d.set(false)
}

func (d *LED) Output(b *Block) error {
	u, err := b.input(0)
	if err != nil {
		return err
	}
	return d.set(u > signalThreshold)
}

func (d *LED) Terminate(b *Block) error {
	return d.set(false)
}

func (d *LED) set(on bool) error {
	return MustGPIO().SetPin(d.Pin, on != d.ActiveLow)
}
