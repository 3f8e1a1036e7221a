// Package plotrx receives the float32 plot stream of a plot block over a
// serial line, splits it into cycles on the sentinel and records them.
package plotrx

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"

	"dspblocks/host/serial"
	"dspblocks/telemetry"
)

// Receiver decodes one plot stream.
type Receiver struct {
	cfg    *Config
	sync   *telemetry.Synchronizer
	csv    *csv.Writer
	print  io.Writer
	logger *log.Logger

	cycles   uint64
	complete uint64
	err      error
}

// NewReceiver writes one CSV row per cycle to out. With cfg.Print set,
// complete cycles are also echoed to print.
func NewReceiver(cfg *Config, out, print io.Writer, logger *log.Logger) (*Receiver, error) {
	s, err := telemetry.NewSynchronizer(cfg.Capacity)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	r := &Receiver{
		cfg:    cfg,
		sync:   s,
		logger: logger,
	}
	if out != nil {
		r.csv = csv.NewWriter(out)
	}
	if cfg.Print {
		r.print = print
	}
	s.SetCycleHandler(r.handleCycle)
	return r, nil
}

func (r *Receiver) handleCycle(c telemetry.Cycle) {
	r.cycles++
	if !c.Complete {
		r.logger.Printf("cycle %d incomplete: %d of %d samples", r.cycles, len(c.Samples), r.cfg.Capacity-1)
	} else {
		r.complete++
	}

	if r.csv != nil && r.err == nil {
		row := make([]string, 0, len(c.Samples)+2)
		row = append(row, strconv.FormatUint(r.cycles, 10), strconv.FormatBool(c.Complete))
		for _, v := range c.Samples {
			row = append(row, formatSample(v))
		}
		if err := r.csv.Write(row); err != nil {
			r.err = fmt.Errorf("write cycle %d: %w", r.cycles, err)
		}
	}

	if r.print != nil && c.Complete {
		fmt.Fprintf(r.print, "cycle %d (%d samples):", r.cycles, len(c.Samples))
		for _, v := range c.Samples {
			fmt.Fprint(r.print, " ", formatSample(v))
		}
		fmt.Fprintln(r.print)
	}
}

func formatSample(v telemetry.Sample) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// Write feeds raw bytes from the line
func (r *Receiver) Write(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n, _ := r.sync.Write(p)
	if r.csv != nil {
		r.csv.Flush()
		if err := r.csv.Error(); err != nil && r.err == nil {
			r.err = err
		}
	}
	return n, r.err
}

// Run reads src until ctx is done. A serial.Port is a live line: read
// timeouts, which tarm/serial reports on Linux as (0, io.EOF), are
// retried and only ctx ends the loop. Any other reader ends at EOF.
func (r *Receiver) Run(ctx context.Context, src io.Reader) error {
	_, live := src.(serial.Port)
	buf := make([]byte, 4096)
	synced := false
	idle := false
	for {
		if err := ctx.Err(); err != nil {
			r.Close()
			return nil
		}
		n, err := src.Read(buf)
		if n > 0 {
			idle = false
			if _, werr := r.Write(buf[:n]); werr != nil {
				return werr
			}
			if !synced && r.sync.Synced() {
				synced = true
				r.logger.Printf("synchronised after %d bytes", r.sync.Stats().Skipped)
			}
		}
		if errors.Is(err, io.EOF) {
			if !live {
				r.Close()
				return nil
			}
			err = nil
		}
		if err != nil {
			return err
		}
		if n == 0 && !idle {
			idle = true
			r.logger.Printf("timeout, waiting for data")
		}
	}
}

// Close ends the current partial cycle and flushes the CSV output
func (r *Receiver) Close() error {
	r.sync.Flush()
	if r.csv != nil {
		r.csv.Flush()
		if err := r.csv.Error(); err != nil && r.err == nil {
			r.err = err
		}
	}
	st := r.sync.Stats()
	r.logger.Printf("%d bytes, %d samples, %d cycles (%d incomplete), %d resyncs",
		st.Bytes, st.Samples, st.Cycles, st.Incomplete, st.Resyncs)
	return r.err
}

// Stats returns the synchroniser counters
func (r *Receiver) Stats() telemetry.SyncStats {
	return r.sync.Stats()
}

// Complete returns the number of full cycles received
func (r *Receiver) Complete() uint64 {
	return r.complete
}
