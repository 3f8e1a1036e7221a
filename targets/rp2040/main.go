//go:build rp2040

package main

import (
	"machine"
	"time"

	"dspblocks/core"
	"dspblocks/targets/ads1115"
)

// Board wiring of the demo model
const (
	sciTxPin  = machine.GPIO16
	buttonPin = 20
	ledPin    = 25 // on-board LED
	demoTsamp = 0.001
)

var (
	sci     *PIOSCI
	model   *core.Model
	faults  uint32
	stepErr error
)

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	core.SetDebugWriter(func(s string) {
		machine.Serial.Write([]byte(s))
		machine.Serial.Write([]byte("\r\n"))
	})
	core.SetDebugEnabled(true)
	core.InitAsyncDebug()

	UpdateSystemTime()

	// ADC modules C and D live on an ADS1115 on I2C0
	var ext *ads1115.Device
	if err := machine.I2C0.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz}); err == nil {
		ext = ads1115.New(machine.I2C0)
	}

	core.SetGPIODriver(NewRPGPIODriver())
	core.SetADCDriver(NewRPADCDriver(ext))
	core.SetPWMDriver(NewRPPWMDriver())
	sci = NewPIOSCI(0, 0, sciTxPin)
	core.SetSCIDriver(sci)

	model, err = buildModel()
	if err == nil {
		err = model.Init()
	}
	if err == nil {
		err = model.Start()
	}
	if err != nil {
		core.DebugPrintln("[MAIN] " + err.Error())
		blinkForever()
	}

	for {
		func() {
			defer func() {
				if r := recover(); r != nil {
					faults++
				}
			}()

			UpdateSystemTime()
			core.ProcessTimers()
			sci.Poll()

			if e := model.Err(); e != nil && stepErr == nil {
				stepErr = e
				core.DebugAsync("[MAIN] model stopped: " + e.Error())
				core.DumpEvents()
			}
		}()
		time.Sleep(50 * time.Microsecond)
	}
}

// buildModel creates the demo: ADCINA0 into the plot block, a button
// driving the LED and an ePWM at 10 kHz, 25% duty.
func buildModel() (*core.Model, error) {
	adc, err := core.NewBlock(core.BlockConfig{Kind: "adcblk", Name: "adc", Outputs: 1, Str: "A", IntPar: []int{0, 0}})
	if err != nil {
		return nil, err
	}
	plot, err := core.NewBlock(core.BlockConfig{Kind: "delfinoPlotblk", Name: "plot", Inputs: 1})
	if err != nil {
		return nil, err
	}
	button, err := core.NewBlock(core.BlockConfig{Kind: "buttonblk", Name: "button", Outputs: 1, IntPar: []int{buttonPin}})
	if err != nil {
		return nil, err
	}
	led, err := core.NewBlock(core.BlockConfig{Kind: "ledblk", Name: "led", Inputs: 1, IntPar: []int{ledPin}})
	if err != nil {
		return nil, err
	}
	pwm, err := core.NewBlock(core.BlockConfig{Kind: "epwmblk", Name: "pwm", Str: "out1a", IntPar: []int{5000, 25}})
	if err != nil {
		return nil, err
	}
	if err := core.Connect(adc, 0, plot, 0); err != nil {
		return nil, err
	}
	if err := core.Connect(button, 0, led, 0); err != nil {
		return nil, err
	}
	return core.NewModel("rp2040-demo", demoTsamp, adc, plot, button, led, pwm), nil
}

func blinkForever() {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(100 * time.Millisecond)
	}
}
