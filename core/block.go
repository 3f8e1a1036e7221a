// Device blocks for generated control models.
// Every block follows the same lifecycle: init once, output every sample
// period, terminate on model shutdown.
package core

import "errors"

// Flag selects the lifecycle phase a block is called for.
type Flag int

const (
	FlagInit        Flag = 1
	FlagOutput      Flag = 2
	FlagStateUpdate Flag = 3
	FlagEnd         Flag = 4
)

func (f Flag) String() string {
	switch f {
	case FlagInit:
		return "init"
	case FlagOutput:
		return "output"
	case FlagStateUpdate:
		return "state_update"
	case FlagEnd:
		return "end"
	default:
		return "flag(" + itoa(int(f)) + ")"
	}
}

var (
	ErrUnknownFlag    = errors.New("unknown block flag")
	ErrUnknownDevice  = errors.New("unknown device kind")
	ErrMissingParam   = errors.New("missing block parameter")
	ErrMissingPort    = errors.New("missing block port")
	ErrInvalidPeriod  = errors.New("ePWM period out of range")
	ErrSCIBusy        = errors.New("SCI already streaming for another block")
	ErrNotInitialized = errors.New("block used before init")
)

// Device is the per-block driver. Init configures the hardware from the
// block parameters, Output runs once per sample period and Terminate puts
// the hardware back in a safe state.
type Device interface {
	Init(b *Block) error
	Output(b *Block) error
	Terminate(b *Block) error
}

// Block is one instance in a model: its parameters, its port signals and
// the device that drives it.
type Block struct {
	Name    string
	Kind    string
	U       [][]float64 // input ports
	Y       [][]float64 // output ports
	IntPar  []int
	RealPar []float64
	Str     string

	Device Device
}

// BlockConfig describes a block to build with NewBlock.
type BlockConfig struct {
	Kind    string
	Name    string
	Inputs  int // number of input ports, each of width 1
	Outputs int // number of output ports, each of width 1
	IntPar  []int
	RealPar []float64
	Str     string
}

// BlockError ties a device failure to the block and phase it came from.
type BlockError struct {
	Block string
	Flag  Flag
	Err   error
}

func (e *BlockError) Error() string {
	return "block " + e.Block + " " + e.Flag.String() + ": " + e.Err.Error()
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

// NewBlock builds a block and its device from the global device registry.
func NewBlock(cfg BlockConfig) (*Block, error) {
	dev, err := globalDevices.New(cfg.Kind)
	if err != nil {
		return nil, err
	}

	name := cfg.Name
	if name == "" {
		name = cfg.Kind
	}

	b := &Block{
		Name:    name,
		Kind:    cfg.Kind,
		U:       make([][]float64, cfg.Inputs),
		Y:       make([][]float64, cfg.Outputs),
		IntPar:  cfg.IntPar,
		RealPar: cfg.RealPar,
		Str:     cfg.Str,
		Device:  dev,
	}
	for i := range b.U {
		b.U[i] = make([]float64, 1)
	}
	for i := range b.Y {
		b.Y[i] = make([]float64, 1)
	}
	return b, nil
}

// Connect feeds output port out of src into input port in of dst. The two
// blocks share the signal storage, as generated code does.
func Connect(src *Block, out int, dst *Block, in int) error {
	if out < 0 || out >= len(src.Y) || in < 0 || in >= len(dst.U) {
		return ErrMissingPort
	}
	dst.U[in] = src.Y[out]
	return nil
}

// Dispatch runs the lifecycle phase selected by flag. FlagStateUpdate is a
// no-op: none of the device blocks carry discrete state.
func Dispatch(flag Flag, b *Block) error {
	var err error
	switch flag {
	case FlagInit:
		err = b.Device.Init(b)
	case FlagOutput:
		err = b.Device.Output(b)
	case FlagStateUpdate:
		return nil
	case FlagEnd:
		err = b.Device.Terminate(b)
	default:
		return ErrUnknownFlag
	}
	if err != nil {
		return &BlockError{Block: b.Name, Flag: flag, Err: err}
	}
	return nil
}

// intParam returns b.IntPar[i] or def when the block was built without it.
func (b *Block) intParam(i, def int) int {
	if i < len(b.IntPar) {
		return b.IntPar[i]
	}
	return def
}

// input returns the first element of input port i.
func (b *Block) input(i int) (float64, error) {
	if i >= len(b.U) || len(b.U[i]) == 0 {
		return 0, ErrMissingPort
	}
	return b.U[i][0], nil
}

// setOutput writes the first element of output port i.
func (b *Block) setOutput(i int, v float64) error {
	if i >= len(b.Y) || len(b.Y[i]) == 0 {
		return ErrMissingPort
	}
	b.Y[i][0] = v
	return nil
}
