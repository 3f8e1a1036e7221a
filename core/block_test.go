package core

import (
	"errors"
	"testing"
)

// recordDevice logs every call into a shared journal.
type recordDevice struct {
	journal *[]string
	failOn  Flag
}

func (d *recordDevice) call(b *Block, flag Flag) error {
	*d.journal = append(*d.journal, b.Name+":"+flag.String())
	if d.failOn == flag {
		return errors.New("boom")
	}
	return nil
}

func (d *recordDevice) Init(b *Block) error      { return d.call(b, FlagInit) }
func (d *recordDevice) Output(b *Block) error    { return d.call(b, FlagOutput) }
func (d *recordDevice) Terminate(b *Block) error { return d.call(b, FlagEnd) }

func TestBuiltinDeviceKinds(t *testing.T) {
	want := []string{"inputGPIOblk", "outputGPIOblk", "buttonblk", "ledblk", "adcblk", "epwmblk", "delfinoPlotblk"}
	reg := newBuiltinRegistry()
	got := reg.Kinds()
	if len(got) != len(want) {
		t.Fatalf("expected %d kinds, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kind %d: expected %s, got %s", i, want[i], got[i])
		}
		if _, err := reg.New(want[i]); err != nil {
			t.Errorf("New(%s) failed: %v", want[i], err)
		}
	}
}

func TestNewBlockUnknownKind(t *testing.T) {
	if _, err := NewBlock(BlockConfig{Kind: "scopeblk"}); !errors.Is(err, ErrUnknownDevice) {
		t.Errorf("expected ErrUnknownDevice, got %v", err)
	}
}

func TestNewBlockPorts(t *testing.T) {
	b := mustBlock(t, BlockConfig{Kind: "ledblk", Inputs: 1, IntPar: []int{31, 1}})
	if b.Name != "ledblk" {
		t.Errorf("expected name to default to kind, got %q", b.Name)
	}
	if len(b.U) != 1 || len(b.U[0]) != 1 || len(b.Y) != 0 {
		t.Errorf("unexpected ports U=%v Y=%v", b.U, b.Y)
	}
}

func TestConnectSharesSignal(t *testing.T) {
	src := mustBlock(t, BlockConfig{Kind: "buttonblk", Outputs: 1})
	dst := mustBlock(t, BlockConfig{Kind: "ledblk", Inputs: 1})

	if err := Connect(src, 0, dst, 0); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	src.Y[0][0] = 1
	if dst.U[0][0] != 1 {
		t.Errorf("expected connected input to follow output")
	}
	if err := Connect(src, 1, dst, 0); !errors.Is(err, ErrMissingPort) {
		t.Errorf("expected ErrMissingPort, got %v", err)
	}
}

func TestDispatchRoutesFlags(t *testing.T) {
	var journal []string
	b := &Block{Name: "b", Device: &recordDevice{journal: &journal}}

	for _, f := range []Flag{FlagInit, FlagOutput, FlagStateUpdate, FlagEnd} {
		if err := Dispatch(f, b); err != nil {
			t.Fatalf("Dispatch(%v) failed: %v", f, err)
		}
	}
	want := []string{"b:init", "b:output", "b:end"}
	if len(journal) != len(want) {
		t.Fatalf("expected %v, got %v", want, journal)
	}
	for i := range want {
		if journal[i] != want[i] {
			t.Errorf("call %d: expected %s, got %s", i, want[i], journal[i])
		}
	}

	if err := Dispatch(Flag(9), b); !errors.Is(err, ErrUnknownFlag) {
		t.Errorf("expected ErrUnknownFlag, got %v", err)
	}
}

func TestDispatchWrapsDeviceError(t *testing.T) {
	var journal []string
	b := &Block{Name: "adc0", Device: &recordDevice{journal: &journal, failOn: FlagOutput}}

	err := Dispatch(FlagOutput, b)
	var be *BlockError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BlockError, got %v", err)
	}
	if be.Block != "adc0" || be.Flag != FlagOutput {
		t.Errorf("unexpected error context %+v", be)
	}
	if err.Error() != "block adc0 output: boom" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestRegisterDeviceReplaces(t *testing.T) {
	reg := NewDeviceRegistry()
	var journal []string
	reg.Register("x", func() Device { return &InputGPIO{} })
	reg.Register("x", func() Device { return &recordDevice{journal: &journal} })

	if kinds := reg.Kinds(); len(kinds) != 1 {
		t.Errorf("expected one kind, got %v", kinds)
	}
	d, err := reg.New("x")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := d.(*recordDevice); !ok {
		t.Errorf("expected replaced factory, got %T", d)
	}
}
