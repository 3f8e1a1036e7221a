package f2837x

import (
	"errors"
	"testing"
)

func TestBankOf(t *testing.T) {
	tests := []struct {
		pin  int
		bank Bank
		mask uint32
	}{
		{0, BankA, 1 << 0},
		{31, BankA, 1 << 31},
		{34, BankB, 1 << 2},
		{64, BankC, 1 << 0},
		{127, BankD, 1 << 31},
		{133, BankE, 1 << 5},
		{168, BankF, 1 << 8},
	}
	for _, tt := range tests {
		bank, mask, err := BankOf(tt.pin)
		if err != nil {
			t.Errorf("BankOf(%d) failed: %v", tt.pin, err)
			continue
		}
		if bank != tt.bank || mask != tt.mask {
			t.Errorf("BankOf(%d) = %v/%#x, want %v/%#x", tt.pin, bank, mask, tt.bank, tt.mask)
		}
	}

	for _, pin := range []int{-1, 169, 500} {
		if _, _, err := BankOf(pin); !errors.Is(err, ErrInvalidPin) {
			t.Errorf("BankOf(%d): expected ErrInvalidPin, got %v", pin, err)
		}
	}

	if BankC.String() != "GPC" {
		t.Errorf("expected GPC, got %s", BankC.String())
	}
}

func TestLookupEPWMOutput(t *testing.T) {
	o, err := LookupEPWMOutput("out3b")
	if err != nil {
		t.Fatalf("LookupEPWMOutput failed: %v", err)
	}
	if o.Module != 3 || o.GPIO != 5 || o.Channel != ChannelB {
		t.Errorf("unexpected routing %+v", o)
	}

	o, err = LookupEPWMOutput("out8a")
	if err != nil || o.Module != 8 || o.GPIO != 14 {
		t.Errorf("out8a: got %+v, %v", o, err)
	}

	for _, name := range []string{"out7a", "OUT1A", "", "out9b"} {
		if _, err := LookupEPWMOutput(name); !errors.Is(err, ErrInvalidOutput) {
			t.Errorf("LookupEPWMOutput(%q): expected ErrInvalidOutput, got %v", name, err)
		}
	}

	if n := len(EPWMOutputs()); n != 14 {
		t.Errorf("expected 14 outputs, got %d", n)
	}
}

func TestCompareFromDuty(t *testing.T) {
	tests := []struct {
		period uint16
		duty   int
		want   uint16
	}{
		{1000, 0, 1000},
		{1000, 25, 750},
		{1000, 50, 500},
		{1000, 100, 0},
		{1000, -5, 1000},
		{1000, 150, 0},
		{2000, 75, 500},
	}
	for _, tt := range tests {
		if got := CompareFromDuty(tt.period, tt.duty); got != tt.want {
			t.Errorf("CompareFromDuty(%d, %d) = %d, want %d", tt.period, tt.duty, got, tt.want)
		}
	}
}

func TestParseADCModule(t *testing.T) {
	m, err := ParseADCModule("C")
	if err != nil || m != ADCC || m.Index() != 2 {
		t.Errorf("ParseADCModule(C) = %v, %v", m, err)
	}
	if m.String() != "ADCC" {
		t.Errorf("expected ADCC, got %s", m.String())
	}
	for _, s := range []string{"", "E", "a", "AB"} {
		if _, err := ParseADCModule(s); !errors.Is(err, ErrInvalidModule) {
			t.Errorf("ParseADCModule(%q): expected ErrInvalidModule, got %v", s, err)
		}
	}
}

func TestADCIntAllocator(t *testing.T) {
	var a ADCIntAllocator

	for i, soc := range []int{0, 5, 9, 15} {
		line, err := a.Assign(soc)
		if err != nil {
			t.Fatalf("Assign(%d) failed: %v", soc, err)
		}
		if line != i+1 {
			t.Errorf("Assign(%d) = ADCINT%d, want ADCINT%d", soc, line, i+1)
		}
	}

	if line, err := a.Assign(5); err != nil || line != 2 {
		t.Errorf("reassigning SOC5 should keep ADCINT2, got %d, %v", line, err)
	}
	if _, err := a.Assign(3); !errors.Is(err, ErrNoADCInt) {
		t.Errorf("expected ErrNoADCInt, got %v", err)
	}
	if _, err := a.Assign(16); !errors.Is(err, ErrInvalidSOC) {
		t.Errorf("expected ErrInvalidSOC, got %v", err)
	}
	if a.Lookup(9) != 3 || a.Lookup(1) != 0 {
		t.Errorf("unexpected lookups %d %d", a.Lookup(9), a.Lookup(1))
	}
}

func TestBaudRegisters(t *testing.T) {
	// The stock SCIA setup writes HBAUD=0x0A, LBAUD=0x2B for 9600 baud.
	hi, lo, err := BaudRegisters(LSPCLK, 9600)
	if err != nil {
		t.Fatalf("BaudRegisters failed: %v", err)
	}
	if hi != 0x0A || lo != 0x2B {
		t.Errorf("expected 0x0A/0x2B, got %#02x/%#02x", hi, lo)
	}

	hi, lo, err = BaudRegisters(LSPCLK, DefaultBaud)
	if err != nil {
		t.Fatalf("BaudRegisters(2M) failed: %v", err)
	}
	if got := ActualBaud(LSPCLK, hi, lo); got < 1900000 || got > 2300000 {
		t.Errorf("2 Mbaud setting gives %d baud", got)
	}

	// baud*8 overflows 32 bits from 1<<29; 0x20000190 would wrap to a valid divider
	for _, baud := range []uint32{0, 100, 50000000, 1 << 29, 0x20000190, 0x20000001, 0xFFFFFFFF} {
		if _, _, err := BaudRegisters(LSPCLK, baud); !errors.Is(err, ErrInvalidBaud) {
			t.Errorf("BaudRegisters(%d): expected ErrInvalidBaud, got %v", baud, err)
		}
	}
}

func TestValidateChannel(t *testing.T) {
	for _, ch := range []int{0, 7, MaxChannel} {
		if err := ValidateChannel(ch); err != nil {
			t.Errorf("ValidateChannel(%d) = %v", ch, err)
		}
	}
	for _, ch := range []int{-1, MaxChannel + 1} {
		if err := ValidateChannel(ch); !errors.Is(err, ErrInvalidChan) {
			t.Errorf("ValidateChannel(%d): expected ErrInvalidChan, got %v", ch, err)
		}
	}
}
