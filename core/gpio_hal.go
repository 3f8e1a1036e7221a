package core

import "dspblocks/f2837x"

// GPIOPin is a device GPIO number (0..f2837x.MaxPin).
type GPIOPin uint32

// GPIODriver is the digital I/O interface the device blocks use.
// Targets implement it over their pin registers.
type GPIODriver interface {
	// ConfigureOutput muxes pin as a GPIO and sets it as an output
	ConfigureOutput(pin GPIOPin) error

	// ConfigureInputPullUp sets pin as an input with the pull-up enabled
	ConfigureInputPullUp(pin GPIOPin) error

	// ConfigureInputPullDown sets pin as an input with the pull-up disabled
	ConfigureInputPullDown(pin GPIOPin) error

	// SetPin drives an output high (true) or low (false)
	SetPin(pin GPIOPin, value bool) error

	// GetPin reads the pin level
	GetPin(pin GPIOPin) (bool, error)

	// ReadPin reads the pin level, reporting low on error
	ReadPin(pin GPIOPin) bool
}

var gpioDriver GPIODriver

// SetGPIODriver is called by target-specific code to register its driver.
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// MustGPIO returns the configured driver or panics if missing.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("GPIO driver not configured")
	}
	return gpioDriver
}

// checkPin rejects pin numbers outside the bank table.
func checkPin(pin int) (GPIOPin, error) {
	if _, _, err := f2837x.BankOf(pin); err != nil {
		return 0, err
	}
	return GPIOPin(pin), nil
}
