package core

import (
	"errors"
	"testing"

	"dspblocks/f2837x"
)

func TestInputGPIOReadsPin(t *testing.T) {
	m := setupMocks(t)
	b := mustBlock(t, BlockConfig{Kind: "inputGPIOblk", Outputs: 1, IntPar: []int{0, 41}})
	mustDispatch(t, FlagInit, b)

	if m.gpio.mode[41] != modePullUp {
		t.Fatalf("expected pin 41 configured with pull-up")
	}
	mustDispatch(t, FlagOutput, b)
	if b.Y[0][0] != SignalHigh {
		t.Errorf("expected idle pull-up to read 1, got %v", b.Y[0][0])
	}
	m.gpio.level[41] = false
	mustDispatch(t, FlagOutput, b)
	if b.Y[0][0] != SignalLow {
		t.Errorf("expected 0, got %v", b.Y[0][0])
	}
}

func TestInputGPIOUnmappedPinReadsLow(t *testing.T) {
	m := setupMocks(t)
	b := mustBlock(t, BlockConfig{Kind: "inputGPIOblk", Outputs: 1, IntPar: []int{0, f2837x.MaxPin + 1}})
	mustDispatch(t, FlagInit, b)
	b.Y[0][0] = 5
	mustDispatch(t, FlagOutput, b)
	if b.Y[0][0] != SignalLow {
		t.Errorf("expected unmapped pin to read 0, got %v", b.Y[0][0])
	}
	if len(m.gpio.mode) != 0 {
		t.Errorf("expected no pin configured, got %v", m.gpio.mode)
	}
}

func TestOutputGPIOThreshold(t *testing.T) {
	m := setupMocks(t)
	b := mustBlock(t, BlockConfig{Kind: "outputGPIOblk", Inputs: 1, IntPar: []int{65}})
	mustDispatch(t, FlagInit, b)

	tests := []struct {
		in   float64
		want bool
	}{
		{0, false},
		{0.5, false},
		{0.51, true},
		{3.3, true},
		{-1, false},
	}
	for _, tt := range tests {
		b.U[0][0] = tt.in
		mustDispatch(t, FlagOutput, b)
		if m.gpio.level[65] != tt.want {
			t.Errorf("input %v: expected pin %v", tt.in, tt.want)
		}
	}

	b.U[0][0] = 1
	mustDispatch(t, FlagOutput, b)
	mustDispatch(t, FlagEnd, b)
	if m.gpio.level[65] {
		t.Errorf("expected pin low after terminate")
	}
}

func TestOutputGPIORejectsBadPin(t *testing.T) {
	setupMocks(t)
	b := mustBlock(t, BlockConfig{Kind: "outputGPIOblk", Inputs: 1, IntPar: []int{200}})
	if err := Dispatch(FlagInit, b); !errors.Is(err, f2837x.ErrInvalidPin) {
		t.Errorf("expected ErrInvalidPin, got %v", err)
	}
	b = mustBlock(t, BlockConfig{Kind: "outputGPIOblk", Inputs: 1})
	if err := Dispatch(FlagInit, b); !errors.Is(err, ErrMissingParam) {
		t.Errorf("expected ErrMissingParam, got %v", err)
	}
}

func TestLEDPolarity(t *testing.T) {
	m := setupMocks(t)
	red := mustBlock(t, BlockConfig{Kind: "ledblk", Inputs: 1, IntPar: []int{31, 1}})
	ext := mustBlock(t, BlockConfig{Kind: "ledblk", Inputs: 1, IntPar: []int{2}})
	mustDispatch(t, FlagInit, red)
	mustDispatch(t, FlagInit, ext)

	if !m.gpio.level[31] || m.gpio.level[2] {
		t.Fatalf("expected both LEDs off after init: pin31=%v pin2=%v", m.gpio.level[31], m.gpio.level[2])
	}

	red.U[0][0], ext.U[0][0] = 1, 1
	mustDispatch(t, FlagOutput, red)
	mustDispatch(t, FlagOutput, ext)
	if m.gpio.level[31] || !m.gpio.level[2] {
		t.Errorf("expected both LEDs on: pin31=%v pin2=%v", m.gpio.level[31], m.gpio.level[2])
	}

	mustDispatch(t, FlagEnd, red)
	mustDispatch(t, FlagEnd, ext)
	if !m.gpio.level[31] || m.gpio.level[2] {
		t.Errorf("expected both LEDs off after terminate")
	}
}

func TestButtonDebounce(t *testing.T) {
	m := setupMocks(t)
	b := mustBlock(t, BlockConfig{Kind: "buttonblk", Outputs: 1, IntPar: []int{41}})
	mustDispatch(t, FlagInit, b)
	btn := b.Device.(*Button)
	if btn.Debounce != DefaultDebounce {
		t.Fatalf("expected default debounce %d, got %d", DefaultDebounce, btn.Debounce)
	}

	// pin levels per sample, low = pressed
	levels := []bool{true, false, true, false, false, false, false, true, true, false, true, true, true}
	want := []float64{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 0}
	for i, lv := range levels {
		m.gpio.level[41] = lv
		mustDispatch(t, FlagOutput, b)
		if b.Y[0][0] != want[i] {
			t.Errorf("sample %d: expected %v, got %v", i, want[i], b.Y[0][0])
		}
	}
}

func TestButtonDebounceParam(t *testing.T) {
	m := setupMocks(t)
	b := mustBlock(t, BlockConfig{Kind: "buttonblk", Outputs: 1, IntPar: []int{41, 1}})
	mustDispatch(t, FlagInit, b)

	m.gpio.level[41] = false
	mustDispatch(t, FlagOutput, b)
	if b.Y[0][0] != 1 {
		t.Errorf("expected immediate press with debounce 1")
	}
}
