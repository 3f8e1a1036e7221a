package f2837x

// Bank is one 32-bit GPIO data register group (GPADAT, GPBDAT, ...).
type Bank uint8

const (
	BankA Bank = iota
	BankB
	BankC
	BankD
	BankE
	BankF
	NumBanks
)

// MaxPin is the highest GPIO number on the device. Bank F only has nine pins.
const MaxPin = 168

func (b Bank) String() string {
	if b >= NumBanks {
		return "GP?"
	}
	return "GP" + string(rune('A'+b))
}

// BankOf returns the data bank of pin and its bit mask within that bank.
func BankOf(pin int) (Bank, uint32, error) {
	if pin < 0 || pin > MaxPin {
		return 0, 0, ErrInvalidPin
	}
	return Bank(pin / 32), 1 << uint(pin%32), nil
}
