// plotrx receives the telemetry stream of a plot block and writes one CSV
// row per cycle.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dspblocks/host/plotrx"
	"dspblocks/host/serial"
)

var (
	configPath = flag.String("config", "", "YAML configuration file")
	device     = flag.String("device", "", "Serial device path (overrides config)")
	baud       = flag.Int("baud", 0, "Baud rate (overrides config)")
	outPath    = flag.String("out", "", "CSV output file (overrides config, default stdout)")
	cycle      = flag.Int("cycle", 0, "Ring capacity of the plot block; cycles carry capacity-1 samples")
	echo       = flag.Bool("print", false, "Echo complete cycles to stdout")
)

func main() {
	flag.Parse()

	cfg, err := plotrx.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *device != "" {
		cfg.Serial.Device = *device
	}
	if *baud != 0 {
		cfg.Serial.Baud = *baud
	}
	if *outPath != "" {
		cfg.Output.Path = *outPath
	}
	if *cycle != 0 {
		cfg.Capacity = *cycle
	}
	if *echo {
		cfg.Print = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, logFile := plotrx.NewLogger(cfg.Log, "plotrx: ")
	defer logFile.Close()

	out := plotrx.OpenOutput(cfg.Output, os.Stdout)
	defer out.Close()

	port, err := serial.Open(&cfg.Serial)
	if err != nil {
		logger.Printf("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()
	if err := port.Flush(); err != nil {
		logger.Printf("flush: %v", err)
	}

	rx, err := plotrx.NewReceiver(cfg, out, os.Stdout, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Printf("listening on %s at %d baud, %d samples per cycle", cfg.Serial.Device, cfg.Serial.Baud, cfg.Capacity-1)
	if err := rx.Run(ctx, port); err != nil {
		logger.Printf("receive: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
