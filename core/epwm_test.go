package core

import (
	"errors"
	"testing"

	"dspblocks/f2837x"
)

func TestEPWMConfigure(t *testing.T) {
	m := setupMocks(t)
	b := mustBlock(t, BlockConfig{Kind: "epwmblk", Str: "out2a", IntPar: []int{1000, 25}})
	mustDispatch(t, FlagInit, b)

	s := m.pwm.out["out2a"]
	if s == nil || !s.enabled {
		t.Fatalf("expected out2a configured")
	}
	if s.period != 1000 || s.compare != 750 {
		t.Errorf("expected period 1000 compare 750, got %d %d", s.period, s.compare)
	}

	// Without an input port the duty stays fixed.
	mustDispatch(t, FlagOutput, b)
	if s.updates != 0 {
		t.Errorf("expected no compare updates, got %d", s.updates)
	}

	mustDispatch(t, FlagEnd, b)
	if s.enabled {
		t.Errorf("expected out2a disabled after terminate")
	}
}

func TestEPWMRuntimeDuty(t *testing.T) {
	m := setupMocks(t)
	b := mustBlock(t, BlockConfig{Kind: "epwmblk", Inputs: 1, Str: "out8b", IntPar: []int{2000, 50}})
	mustDispatch(t, FlagInit, b)
	s := m.pwm.out["out8b"]

	tests := []struct {
		in      float64
		compare uint16
		updates int
	}{
		{50, 1000, 0},
		{10, 1800, 1},
		{10.2, 1800, 1},
		{150, 0, 2},
		{-3, 2000, 3},
	}
	for _, tt := range tests {
		b.U[0][0] = tt.in
		mustDispatch(t, FlagOutput, b)
		if s.compare != tt.compare || s.updates != tt.updates {
			t.Errorf("duty %v: expected compare %d after %d updates, got %d after %d",
				tt.in, tt.compare, tt.updates, s.compare, s.updates)
		}
	}
}

func TestEPWMInitErrors(t *testing.T) {
	setupMocks(t)
	b := mustBlock(t, BlockConfig{Kind: "epwmblk", Str: "out7a", IntPar: []int{1000, 50}})
	if err := Dispatch(FlagInit, b); !errors.Is(err, f2837x.ErrInvalidOutput) {
		t.Errorf("expected ErrInvalidOutput, got %v", err)
	}
	b = mustBlock(t, BlockConfig{Kind: "epwmblk", Str: "out1a", IntPar: []int{0, 50}})
	if err := Dispatch(FlagInit, b); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}
