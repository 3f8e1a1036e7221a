// Package blocksim runs a demo model on the simulated board: an ADC
// sampling a sine wave into the plot block, a button driving an LED and a
// free-running ePWM output.
package blocksim

import (
	"math"

	"dspblocks/core"
	"dspblocks/f2837x"
	"dspblocks/sim"
)

// Demo is a built model with the blocks tests and the runner poke at.
type Demo struct {
	Model  *core.Model
	ADC    *core.Block
	Plot   *core.Block
	Button *core.Block
	LED    *core.Block
	PWM    *core.Block
}

// Build creates the demo blocks and wires them. The model is not
// initialised.
func Build(cfg *Config) (*Demo, error) {
	var d Demo
	var err error

	specs := []struct {
		dst **core.Block
		cfg core.BlockConfig
	}{
		{&d.ADC, core.BlockConfig{Kind: "adcblk", Name: "adc", Outputs: 1, Str: "A", IntPar: []int{0, 0}}},
		{&d.Plot, core.BlockConfig{Kind: "delfinoPlotblk", Name: "plot", Inputs: 1, IntPar: []int{cfg.Plot.Baud, cfg.Plot.Capacity}}},
		{&d.Button, core.BlockConfig{Kind: "buttonblk", Name: "button", Outputs: 1, IntPar: []int{cfg.Button.Pin, cfg.Button.Debounce}}},
		{&d.LED, core.BlockConfig{Kind: "ledblk", Name: "led", Inputs: 1, IntPar: []int{cfg.Button.LED, 1}}},
		{&d.PWM, core.BlockConfig{Kind: "epwmblk", Name: "pwm", Str: cfg.PWM.Output, IntPar: []int{cfg.PWM.Period, cfg.PWM.Duty}}},
	}
	for _, s := range specs {
		if *s.dst, err = core.NewBlock(s.cfg); err != nil {
			return nil, err
		}
	}
	if err := core.Connect(d.ADC, 0, d.Plot, 0); err != nil {
		return nil, err
	}
	if err := core.Connect(d.Button, 0, d.LED, 0); err != nil {
		return nil, err
	}

	d.Model = core.NewModel("blocksim", cfg.Tsamp, d.ADC, d.Plot, d.Button, d.LED, d.PWM)
	return &d, nil
}

// SineSource feeds ADCINA0 with the configured wave, timed by the core
// clock. Other inputs read 0 V.
func SineSource(sc SignalConfig) sim.Source {
	return func(m f2837x.ADCModule, ch int) float64 {
		if m != f2837x.ADCA || ch != 0 {
			return 0
		}
		t := float64(core.GetTime()) / core.TimerFreq
		return sc.Offset + sc.Amplitude*math.Sin(2*math.Pi*sc.Frequency*t)
	}
}

// ButtonLevel returns the pin level of the simulated button at time t
// seconds: released (high) for the first half of each period.
func ButtonLevel(bc ButtonConfig, t float64) bool {
	phase := math.Mod(t, bc.Period)
	return phase < bc.Period/2
}
