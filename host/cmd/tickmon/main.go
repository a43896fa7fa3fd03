package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"superloop/host/monitor"
	"superloop/host/serial"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	verbose = flag.Bool("verbose", false, "Enable verbose output")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		log.Error("failed to connect", "err", err)
		os.Exit(1)
	}
	defer port.Close()

	if err := port.Flush(); err != nil {
		log.Debug("flush failed", "err", err)
	}
	log.Info("monitoring", "device", cfg.Device, "baud", cfg.Baud)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	mon := monitor.New(port, log)
	for ctx.Err() == nil {
		// A read timeout with nothing received surfaces as EOF; keep going
		if err := mon.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("read failed", "err", err)
			break
		}
	}

	log.Info("stopped",
		"frames", mon.Frames(),
		"lost", mon.Lost(),
		"restarts", mon.Restarts(),
		"corrupt", mon.CorruptFrames(),
	)
}
