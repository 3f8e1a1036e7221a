package core

import "dspblocks/f2837x"

// ADCDriver is the analog input interface the adc block uses. A
// conversion result is the raw 12-bit count of one SOC.
type ADCDriver interface {
	// ConfigureChannel binds soc of module to the given input channel and
	// arms its end-of-conversion interrupt.
	ConfigureChannel(module f2837x.ADCModule, channel, soc int) error

	// ReadSOC triggers soc, waits for its conversion and returns the count.
	ReadSOC(module f2837x.ADCModule, soc int) (uint16, error)
}

var adcDriver ADCDriver

// SetADCDriver is called by target-specific code to register its driver.
func SetADCDriver(d ADCDriver) {
	adcDriver = d
}

// MustADC returns the configured driver or panics if missing.
func MustADC() ADCDriver {
	if adcDriver == nil {
		panic("ADC driver not configured")
	}
	return adcDriver
}
