// blocksim runs the demo block model on the simulated F2837x board and
// streams its SCI line to a serial port or a file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"dspblocks/core"
	"dspblocks/host/blocksim"
	"dspblocks/host/plotrx"
	"dspblocks/host/serial"
	"dspblocks/sim"
)

var (
	configPath = flag.String("config", "", "YAML configuration file")
	port       = flag.String("port", "", "Stream the SCI line to this serial device (overrides config)")
	outPath    = flag.String("out", "", "Write the SCI line to this file (overrides config)")
	duration   = flag.Float64("duration", -1, "Run time in seconds, 0 = until interrupted (overrides config)")
	verbose    = flag.Bool("verbose", false, "Enable block debug output")
)

func main() {
	flag.Parse()

	cfg, err := blocksim.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Line.Device = *port
	}
	if *outPath != "" {
		cfg.Line.Output.Path = *outPath
	}
	if *duration >= 0 {
		cfg.Duration = *duration
	}

	logger, logFile := plotrx.NewLogger(cfg.Log, "blocksim: ")
	defer logFile.Close()

	core.SetDebugWriter(func(s string) { logger.Print(s) })
	core.SetDebugEnabled(*verbose)

	var line io.WriteCloser
	switch {
	case cfg.Line.Device != "":
		scfg := serial.DefaultConfig(cfg.Line.Device)
		scfg.Baud = cfg.Plot.Baud
		p, err := serial.Open(scfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		line = p
	default:
		line = plotrx.OpenOutput(cfg.Line.Output, io.Discard)
	}
	defer line.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := blocksim.Run(ctx, cfg, sim.NewBoard(line), logger); err != nil {
		logger.Printf("run: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
