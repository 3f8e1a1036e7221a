package core

// DefaultDebounce is the number of equal consecutive samples a button
// needs before its state changes.
const DefaultDebounce = 3

// Button reads a push button wired between pin IntPar[0] and ground, so
// the pin reads low while pressed. The output is 1.0 while pressed. The
// pressed state only changes after IntPar[1] consecutive samples agree.
type Button struct {
	Pin      GPIOPin
	Debounce int

	pressed bool
	count   int
}

func (d *Button) Init(b *Block) error {
	if len(b.IntPar) < 1 {
		return ErrMissingParam
	}
	pin, err := checkPin(b.IntPar[0])
	if err != nil {
		return err
	}
	d.Pin = pin
	d.Debounce = b.intParam(1, DefaultDebounce)
	if d.Debounce < 1 {
		d.Debounce = 1
	}
	d.pressed = false
	d.count = 0
	return MustGPIO().ConfigureInputPullUp(pin)
}

func (d *Button) Output(b *Block) error {
	raw := !MustGPIO().ReadPin(d.Pin)
	if raw == d.pressed {
		d.count = 0
	} else {
		d.count++
		if d.count >= d.Debounce {
			d.pressed = raw
			d.count = 0
		}
	}
	return b.setOutput(0, level(d.pressed))
}

func (d *Button) Terminate(b *Block) error {
	return nil
}

// Pressed returns the debounced state
func (d *Button) Pressed() bool {
	return d.pressed
}
