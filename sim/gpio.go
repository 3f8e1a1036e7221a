package sim

import (
	"sync"

	"dspblocks/core"
	"dspblocks/f2837x"
)

// gpioBank holds the registers of one 32-pin bank.
type gpioBank struct {
	mux uint32 // 1 = configured as GPIO by a block
	dir uint32 // GPxDIR, 1 = output
	pud uint32 // GPxPUD, 1 = pull-up disabled
	dat uint32 // output latch

	driven uint32 // pins with an external level applied
	ext    uint32 // external level
}

// GPIO simulates the GPIO data banks. Outputs read back their latch;
// inputs read the external level when driven, else high with the pull-up
// enabled and low without it.
type GPIO struct {
	mu    sync.Mutex
	banks [f2837x.NumBanks]gpioBank
}

func NewGPIO() *GPIO {
	g := &GPIO{}
	for i := range g.banks {
		g.banks[i].pud = 0xFFFFFFFF
	}
	return g
}

func (g *GPIO) bank(pin core.GPIOPin) (*gpioBank, uint32, error) {
	b, mask, err := f2837x.BankOf(int(pin))
	if err != nil {
		return nil, 0, err
	}
	return &g.banks[b], mask, nil
}

func (g *GPIO) ConfigureOutput(pin core.GPIOPin) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	b, mask, err := g.bank(pin)
	if err != nil {
		return err
	}
	b.mux |= mask
	b.dir |= mask
	return nil
}

func (g *GPIO) configureInput(pin core.GPIOPin, pullUp bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	b, mask, err := g.bank(pin)
	if err != nil {
		return err
	}
	b.mux |= mask
	b.dir &^= mask
	if pullUp {
		b.pud &^= mask
	} else {
		b.pud |= mask
	}
	return nil
}

func (g *GPIO) ConfigureInputPullUp(pin core.GPIOPin) error {
	return g.configureInput(pin, true)
}

func (g *GPIO) ConfigureInputPullDown(pin core.GPIOPin) error {
	return g.configureInput(pin, false)
}

// SetPin writes GPxSET or GPxCLEAR
func (g *GPIO) SetPin(pin core.GPIOPin, value bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	b, mask, err := g.bank(pin)
	if err != nil {
		return err
	}
	if value {
		b.dat |= mask
	} else {
		b.dat &^= mask
	}
	return nil
}

func (g *GPIO) GetPin(pin core.GPIOPin) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	b, mask, err := g.bank(pin)
	if err != nil {
		return false, err
	}
	return b.read()&mask != 0, nil
}

func (g *GPIO) ReadPin(pin core.GPIOPin) bool {
	v, _ := g.GetPin(pin)
	return v
}

// read composes GPxDAT as the CPU sees it
func (b *gpioBank) read() uint32 {
	out := b.dat & b.dir
	in := ^b.dir
	external := b.ext & b.driven
	floating := ^b.driven & ^b.pud
	return out | in&(external|floating)
}

// Drive applies an external level to pin, as a button or signal would.
func (g *GPIO) Drive(pin core.GPIOPin, level bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	b, mask, err := g.bank(pin)
	if err != nil {
		return err
	}
	b.driven |= mask
	if level {
		b.ext |= mask
	} else {
		b.ext &^= mask
	}
	return nil
}

// Release removes the external level from pin
func (g *GPIO) Release(pin core.GPIOPin) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	b, mask, err := g.bank(pin)
	if err != nil {
		return err
	}
	b.driven &^= mask
	return nil
}

// Output reports the latch of a pin configured as output. ok is false for
// pins that are not outputs.
func (g *GPIO) Output(pin core.GPIOPin) (level, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	b, mask, err := g.bank(pin)
	if err != nil || b.dir&mask == 0 {
		return false, false
	}
	return b.dat&mask != 0, true
}

// Bank returns the GPxDAT value of bank as read by the CPU
func (g *GPIO) Bank(bank f2837x.Bank) uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.banks[bank].read()
}
