package core

import "dspblocks/f2837x"

// PWMDriver is the ePWM interface the epwm block uses. Period and compare
// are time-base counts; the driver runs the module in up-down count mode,
// setting the output on compare-A up and clearing it on compare-A down.
type PWMDriver interface {
	// Configure muxes the output pin and starts the time base
	Configure(out f2837x.EPWMOutput, period, compare uint16) error

	// SetCompare updates CMPA of a configured output
	SetCompare(out f2837x.EPWMOutput, compare uint16) error

	// Disable stops the module and forces the output low
	Disable(out f2837x.EPWMOutput) error
}

var pwmDriver PWMDriver

// SetPWMDriver is called by target-specific code to register its driver.
func SetPWMDriver(d PWMDriver) {
	pwmDriver = d
}

// MustPWM returns the configured driver or panics if missing.
func MustPWM() PWMDriver {
	if pwmDriver == nil {
		panic("PWM driver not configured")
	}
	return pwmDriver
}
