package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"superloop/apps/ledfade"
	"superloop/apps/melody"
	"superloop/apps/telemetry"
	"superloop/config"
	"superloop/core"
	"superloop/hal/hostaudio"
	"superloop/hal/sim"
	"superloop/host/monitor"
	"superloop/protocol"
)

var (
	configPath = flag.String("config", "", "Board config JSON (built-in defaults when empty)")
	duration   = flag.Duration("duration", 10*time.Second, "How long to run (0 = until interrupted)")
	audio      = flag.Bool("audio", false, "Play the buzzer on the host sound card")
	verbose    = flag.Bool("verbose", false, "Log every effector call")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(log); err != nil {
		log.Error("simulation failed", "err", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.BoardConfig, error) {
	if *configPath == "" {
		return config.Default(), nil
	}
	data, err := os.ReadFile(*configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return config.LoadConfig(data)
}

func run(log *slog.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	core.SetDebugWriter(func(s string) { log.Debug(s) })
	core.SetDebugEnabled(*verbose)
	core.InitAsyncDebug()
	defer core.StopAsyncDebug()

	// Effectors
	board := sim.NewStateRecorder()
	board.OnEvent(func(e sim.Event) { log.Debug("effector", "call", e.String()) })
	core.SetLEDDriver(board)
	core.SetToneDriver(board)

	if *audio {
		drv, err := hostaudio.New()
		if err != nil {
			log.Warn("host audio unavailable, buzzer is simulated only", "err", err)
		} else {
			defer drv.Close()
			core.SetToneDriver(drv)
		}
	}

	sys := core.NewSystem()
	d, err := core.NewDispatcher()
	if err != nil {
		return err
	}

	if cfg.MelodyEnabled() {
		if err := d.Register(melody.NewPlayer(core.MustTone(), cfg.MelodyTask())); err != nil {
			return err
		}
	}
	if cfg.LEDFadeEnabled() {
		if err := d.Register(ledfade.NewAnimator(core.MustLED(), cfg.LEDFadeTask())); err != nil {
			return err
		}
	}

	loop := core.NewLoop(sys, d)

	mon := monitor.New(nil, log.With("component", "monitor"))
	var reporter *telemetry.Reporter
	if cfg.TelemetryEnabled() {
		out := protocol.NewScratchOutput()
		tcfg := cfg.TelemetryTask()
		tcfg.Overruns = loop.Overruns
		reporter = telemetry.NewReporter(&sys.Timebase, d, out, tcfg)
		if err := d.Register(reporter); err != nil {
			return err
		}
		if err := d.Register(telemetry.NewLink(out, mon)); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	log.Info("starting super loop",
		"board", cfg.Name,
		"tick", time.Duration(cfg.TickPeriodUS)*time.Microsecond,
		"tasks", len(d.Tasks()),
	)

	ticks := core.StartTickSource(sys, time.Duration(cfg.TickPeriodUS)*time.Microsecond)
	err = loop.Run(ctx)
	ticks.Stop()
	core.StopAsyncDebug()

	for _, t := range d.Tasks() {
		if t.Faulted() {
			log.Warn("task ended in error state", "task", t.Name())
		}
	}

	now := sys.Timebase.Now()
	log.Info("stopped",
		"uptime_ms", now.Millis,
		"passes", d.Passes(),
		"overruns", loop.Overruns(),
		"frames", mon.Frames(),
	)
	if reporter != nil && reporter.Dropped() > 0 {
		log.Warn("telemetry frames dropped", "count", reporter.Dropped())
	}
	if core.IsDebugEnabled() {
		core.DumpTimingRing()
	}

	return stopReason(err)
}

// stopReason maps the loop's exit error to the program result; running out
// the clock or an interrupt is a normal stop.
func stopReason(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
