package sim

import (
	"sync"

	"dspblocks/f2837x"
)

// VRef is the ADC reference voltage of the LaunchPad.
const VRef = 3.0

// Source returns the voltage on an ADCIN pin.
type Source func(module f2837x.ADCModule, channel int) float64

type socCtl struct {
	configured bool
	chsel      int
	acqps      int
}

type adcModule struct {
	soc    [f2837x.MaxSOC + 1]socCtl
	result [f2837x.MaxSOC + 1]uint16
	ints   f2837x.ADCIntAllocator
}

// ADC simulates the four converters. Conversions sample the Source and
// quantise against VRef.
type ADC struct {
	mu      sync.Mutex
	modules [4]adcModule
	source  Source
}

func NewADC() *ADC {
	return &ADC{}
}

// SetSource installs the function feeding the analog inputs
func (a *ADC) SetSource(s Source) {
	a.mu.Lock()
	a.source = s
	a.mu.Unlock()
}

func (a *ADC) ConfigureChannel(module f2837x.ADCModule, channel, soc int) error {
	if !module.Valid() {
		return f2837x.ErrInvalidModule
	}
	if err := f2837x.ValidateChannel(channel); err != nil {
		return err
	}
	if err := f2837x.ValidateSOC(soc); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	m := &a.modules[module.Index()]
	if _, err := m.ints.Assign(soc); err != nil {
		return err
	}
	m.soc[soc] = socCtl{configured: true, chsel: channel, acqps: f2837x.ADCAcqWindow}
	return nil
}

// ReadSOC forces the SOC, converts and clears its interrupt flag
func (a *ADC) ReadSOC(module f2837x.ADCModule, soc int) (uint16, error) {
	if !module.Valid() {
		return 0, f2837x.ErrInvalidModule
	}
	if err := f2837x.ValidateSOC(soc); err != nil {
		return 0, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	m := &a.modules[module.Index()]
	ctl := m.soc[soc]
	if !ctl.configured {
		return 0, ErrNotConfigured
	}

	var v float64
	if a.source != nil {
		v = a.source(module, ctl.chsel)
	}
	m.result[soc] = quantise(v)
	return m.result[soc], nil
}

// Result returns the last conversion of soc
func (a *ADC) Result(module f2837x.ADCModule, soc int) uint16 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.modules[module.Index()].result[soc]
}

// Interrupt returns the ADCINT line assigned to soc, or 0
func (a *ADC) Interrupt(module f2837x.ADCModule, soc int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.modules[module.Index()].ints.Lookup(soc)
}

func quantise(v float64) uint16 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= VRef {
		return f2837x.ADCMax
	}
	return uint16(v/VRef*f2837x.ADCMax + 0.5)
}
