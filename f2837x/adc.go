package f2837x

// ADCModule is one of the four converters, 'A' to 'D'.
type ADCModule byte

const (
	ADCA ADCModule = 'A'
	ADCB ADCModule = 'B'
	ADCC ADCModule = 'C'
	ADCD ADCModule = 'D'
)

const (
	// MaxSOC is the highest start-of-conversion slot.
	MaxSOC = 15

	// MaxChannel is the highest single-ended input, ADCIN15.
	MaxChannel = 15

	// ADCMax is the full-scale 12-bit result.
	ADCMax = 4095

	// ADCAcqWindow is the ACQPS value written for every SOC.
	ADCAcqWindow = 14

	// NumADCInts is the number of ADCINT lines per module.
	NumADCInts = 4
)

func (m ADCModule) String() string {
	return "ADC" + string(rune(m))
}

// ParseADCModule accepts "A" to "D".
func ParseADCModule(s string) (ADCModule, error) {
	if len(s) != 1 || s[0] < 'A' || s[0] > 'D' {
		return 0, ErrInvalidModule
	}
	return ADCModule(s[0]), nil
}

// Valid reports whether m names one of the four converters.
func (m ADCModule) Valid() bool {
	return m >= ADCA && m <= ADCD
}

// Index returns 0 for module A through 3 for module D.
func (m ADCModule) Index() int {
	return int(m - ADCA)
}

// ValidateSOC checks the SOC slot number.
func ValidateSOC(soc int) error {
	if soc < 0 || soc > MaxSOC {
		return ErrInvalidSOC
	}
	return nil
}

// ValidateChannel checks the ADCIN input number.
func ValidateChannel(ch int) error {
	if ch < 0 || ch > MaxChannel {
		return ErrInvalidChan
	}
	return nil
}

// ADCIntAllocator hands out ADCINT1..4 to SOCs first-free, the way the ADC
// block maps each configured SOC to an end-of-conversion interrupt.
type ADCIntAllocator struct {
	used [NumADCInts]bool
	soc  [NumADCInts]int
}

// Assign maps soc to a free interrupt line and returns its 1-based number.
// A SOC that already owns a line keeps it.
func (a *ADCIntAllocator) Assign(soc int) (int, error) {
	if err := ValidateSOC(soc); err != nil {
		return 0, err
	}
	for i := range a.used {
		if a.used[i] && a.soc[i] == soc {
			return i + 1, nil
		}
	}
	for i := range a.used {
		if !a.used[i] {
			a.used[i] = true
			a.soc[i] = soc
			return i + 1, nil
		}
	}
	return 0, ErrNoADCInt
}

// Lookup returns the interrupt line owned by soc, or 0.
func (a *ADCIntAllocator) Lookup(soc int) int {
	for i := range a.used {
		if a.used[i] && a.soc[i] == soc {
			return i + 1
		}
	}
	return 0
}
