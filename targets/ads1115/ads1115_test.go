package ads1115

import (
	"errors"
	"testing"
)

// fakeBus models the converter registers. A started conversion stays busy
// for `delay` config reads.
type fakeBus struct {
	raw     [NumChannels]int16
	delay   int
	pending int
	mux     int
	conv    int16
	starts  []int
	fail    error
}

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	if b.fail != nil {
		return b.fail
	}
	if addr != DefaultAddress {
		return errors.New("no device at address")
	}
	switch {
	case len(w) == 3 && w[0] == regConfig:
		cfg := uint16(w[1])<<8 | uint16(w[2])
		if cfg&osSingle == 0 {
			return errors.New("conversion not started")
		}
		b.mux = int(cfg>>12&0x7) - 4
		b.starts = append(b.starts, b.mux)
		b.pending = b.delay
		b.conv = b.raw[b.mux]
	case len(w) == 1 && w[0] == regConfig:
		r[0], r[1] = 0, 0
		if b.pending > 0 {
			b.pending--
		} else {
			r[0] = 0x80
		}
	case len(w) == 1 && w[0] == regConv:
		r[0] = byte(uint16(b.conv) >> 8)
		r[1] = byte(b.conv)
	default:
		return errors.New("unexpected transfer")
	}
	return nil
}

func (b *fakeBus) ReadRegister(addr uint8, r uint8, buf []byte) error {
	return b.Tx(uint16(addr), []byte{r}, buf)
}

func (b *fakeBus) WriteRegister(addr uint8, r uint8, buf []byte) error {
	return b.Tx(uint16(addr), append([]byte{r}, buf...), nil)
}

func TestReadPipelinesConversion(t *testing.T) {
	bus := &fakeBus{}
	bus.raw[0] = 4000 << 3
	d := New(bus)

	v, err := d.Read(0)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0 || d.Busy() != 0 {
		t.Errorf("expected 0 and a conversion started, got %d busy=%d", v, d.Busy())
	}

	v, err = d.Read(0)
	if err != nil {
		t.Fatal(err)
	}
	if v != 4000 {
		t.Errorf("expected 4000 from the finished conversion, got %d", v)
	}
	if len(bus.starts) != 2 {
		t.Errorf("expected the next conversion started, got %v", bus.starts)
	}
}

func TestReadDoesNotWaitForBusyConverter(t *testing.T) {
	bus := &fakeBus{delay: 2}
	bus.raw[1] = 100 << 3
	d := New(bus)

	d.Read(1)
	for i := 0; i < 2; i++ {
		v, err := d.Read(1)
		if err != nil {
			t.Fatal(err)
		}
		if v != 0 {
			t.Errorf("call %d: expected previous value while busy, got %d", i, v)
		}
	}
	if len(bus.starts) != 1 {
		t.Errorf("expected no new conversion while busy, got %v", bus.starts)
	}
	if v, _ := d.Read(1); v != 100 {
		t.Errorf("expected 100 once idle, got %d", v)
	}
}

func TestReadSharesConverterBetweenChannels(t *testing.T) {
	bus := &fakeBus{}
	bus.raw[2] = 1000 << 3
	bus.raw[3] = 2000 << 3
	d := New(bus)

	for step := 0; step < 3; step++ {
		a, err := d.Read(2)
		if err != nil {
			t.Fatal(err)
		}
		b, err := d.Read(3)
		if err != nil {
			t.Fatal(err)
		}
		if step > 0 && (a != 1000 || b != 2000) {
			t.Errorf("step %d: expected 1000/2000, got %d/%d", step, a, b)
		}
	}
	want := []int{2, 3, 2, 3, 2, 3}
	if len(bus.starts) != len(want) {
		t.Fatalf("expected starts %v, got %v", want, bus.starts)
	}
	for i := range want {
		if bus.starts[i] != want[i] {
			t.Errorf("start %d: expected AIN%d, got AIN%d", i, want[i], bus.starts[i])
		}
	}
}

func TestReadClampsNegative(t *testing.T) {
	bus := &fakeBus{}
	bus.raw[0] = -50
	d := New(bus)
	d.Read(0)
	if v, _ := d.Read(0); v != 0 {
		t.Errorf("expected negative reading clamped to 0, got %d", v)
	}
}

func TestReadErrors(t *testing.T) {
	d := New(&fakeBus{})
	for _, ch := range []int{-1, NumChannels} {
		if _, err := d.Read(ch); !errors.Is(err, ErrChannel) {
			t.Errorf("channel %d: expected ErrChannel, got %v", ch, err)
		}
	}

	busErr := errors.New("bus stuck")
	d = New(&fakeBus{fail: busErr})
	if _, err := d.Read(0); !errors.Is(err, busErr) {
		t.Errorf("expected bus error, got %v", err)
	}
	if d.Busy() != -1 {
		t.Errorf("expected converter idle after a failed start")
	}
}
