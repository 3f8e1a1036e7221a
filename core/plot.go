// Telemetry plot block
package core

import (
	"dspblocks/f2837x"
	"dspblocks/telemetry"
	"sync"
)

// Plot streams its input over the SCI port as a float32 telemetry stream.
// Optional IntPar[0] sets the baud rate (default 2 Mbaud) and IntPar[1]
// the ring capacity (default 70). Only one plot block can own the port.
type Plot struct {
	Baud uint32
	Ring *telemetry.Ring

	sci SCIDriver
}

var (
	plotMu    sync.Mutex
	plotOwner *Plot
)

// ActivePlot returns the block currently streaming, or nil.
func ActivePlot() *Plot {
	plotMu.Lock()
	defer plotMu.Unlock()
	return plotOwner
}

func (d *Plot) Init(b *Block) error {
	plotMu.Lock()
	if plotOwner != nil && plotOwner != d {
		plotMu.Unlock()
		return ErrSCIBusy
	}
	plotOwner = d
	plotMu.Unlock()

	baud := b.intParam(0, f2837x.DefaultBaud)
	if baud <= 0 || uint64(baud) > 0xFFFFFFFF {
		d.release()
		return f2837x.ErrInvalidBaud
	}
	d.Baud = uint32(baud)
	capacity := b.intParam(1, telemetry.DefaultCapacity)

	sci := MustSCI()
	if err := sci.Init(d.Baud); err != nil {
		d.release()
		return err
	}
	ring, err := telemetry.New(capacity, sci)
	if err != nil {
		d.release()
		return err
	}
	d.Ring = ring
	d.sci = sci
	sci.SetTxHandler(func() { ring.Drain() })
	DebugPrintln("[PLOT] " + b.Name + ": streaming at " + utoa(d.Baud) + " baud, " + itoa(capacity) + " samples per cycle")
	return nil
}

func (d *Plot) Output(b *Block) error {
	if d.Ring == nil {
		return ErrNotInitialized
	}
	u, err := b.input(0)
	if err != nil {
		return err
	}
	d.Ring.Append(telemetry.Sample(u))
	return nil
}

func (d *Plot) Terminate(b *Block) error {
	if d.Ring != nil {
		d.Ring.Stop()
	}
	if d.sci != nil {
		d.sci.SetTxHandler(nil)
		d.sci = nil
	}
	d.release()
	return nil
}

func (d *Plot) release() {
	plotMu.Lock()
	if plotOwner == d {
		plotOwner = nil
	}
	plotMu.Unlock()
}
