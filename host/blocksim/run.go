package blocksim

import (
	"context"
	"errors"
	"log"
	"time"

	"dspblocks/core"
	"dspblocks/sim"
)

// Run initialises the demo on board and runs it in real time until ctx is
// done or cfg.Duration elapses, then ends the model. The SCI line shifts
// bytes at the programmed baud rate in its own goroutine.
func Run(ctx context.Context, cfg *Config, board *sim.Board, logger *log.Logger) error {
	d, err := Build(cfg)
	if err != nil {
		return err
	}
	board.ADC.SetSource(SineSource(cfg.Signal))
	board.Install()

	if err := d.Model.Init(); err != nil {
		return err
	}
	if err := d.Model.Start(); err != nil {
		d.Model.End()
		return err
	}

	var cancel context.CancelFunc
	if cfg.Duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Duration*float64(time.Second)))
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	lineDone := make(chan error, 1)
	go func() {
		lineDone <- board.SCI.Run(ctx, time.Millisecond)
	}()

	logger.Printf("model %s running, Tsamp %gs, plot at %d baud", d.Model.Name, cfg.Tsamp, board.SCI.Baud())

	tick := time.Duration(cfg.Tsamp * float64(time.Second))
	if tick < time.Millisecond {
		tick = time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	start := time.Now()
	last := start
	pressed := false
	for running := true; running; {
		select {
		case <-ctx.Done():
			running = false
		case now := <-ticker.C:
			elapsed := now.Sub(start).Seconds()
			level := ButtonLevel(cfg.Button, elapsed)
			board.GPIO.Drive(core.GPIOPin(cfg.Button.Pin), level)
			if !level != pressed {
				pressed = !level
				state := "released"
				if pressed {
					state = "pressed"
				}
				logger.Printf("button %s at %.3fs", state, elapsed)
			}

			core.AdvanceTime(core.TimerFromUS(uint32(now.Sub(last).Microseconds())))
			last = now
			if !d.Model.Running() {
				running = false
			}
		}
	}

	cancel()
	lineErr := <-lineDone
	runErr := d.Model.Err()
	endErr := d.Model.End()
	board.SCI.Pump()

	written, overflows, _ := board.SCI.Counters()
	logger.Printf("ran %d steps (%.3fs model time), %d bytes on the line, %d FIFO overflows",
		d.Model.Steps(), d.Model.RunTime(), written, overflows)
	core.DumpEvents()

	if runErr != nil {
		return runErr
	}
	if endErr != nil {
		return endErr
	}
	if lineErr != nil && !errors.Is(lineErr, context.Canceled) && !errors.Is(lineErr, context.DeadlineExceeded) {
		return lineErr
	}
	return nil
}
