//go:build rp2040

package main

import (
	"machine"

	"superloop/apps/ledfade"
	"superloop/apps/melody"
	"superloop/apps/telemetry"
	"superloop/core"
	"superloop/protocol"
)

// debugOutput shares the telemetry UART; the host decoder skips the text
const debugOutput = true

// Board pin assignments
const (
	pinBuzzer1   = machine.GPIO16
	pinBuzzer2   = machine.GPIO17
	pinBacklight = machine.GPIO22
)

var ledPins = map[core.LEDChannel]machine.Pin{
	core.LEDWhite:  machine.GPIO2,
	core.LEDPurple: machine.GPIO3,
	core.LEDBlue:   machine.GPIO4,
	core.LEDCyan:   machine.GPIO5,
	core.LEDGreen:  machine.GPIO6,
	core.LEDYellow: machine.GPIO7,
	core.LEDOrange: machine.GPIO8,
	core.LEDRed:    machine.GPIO9,
}

var (
	sys          *core.System
	outputBuffer *protocol.ScratchOutput
)

func main() {
	// CRITICAL: Disable watchdog on boot to clear any previous state
	// It is started again once the loop is about to run
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0}); err != nil {
		return
	}

	machine.Serial.Configure(machine.UARTConfig{BaudRate: 115200})
	core.SetDebugWriter(func(s string) { println(s) })
	core.SetDebugEnabled(debugOutput)
	core.InitAsyncDebug()

	// Effectors
	core.SetToneDriver(NewRP2040ToneDriver(pinBuzzer1, pinBuzzer2))
	core.SetLEDDriver(NewRP2040LEDDriver(ledPins, NewBacklight(pinBacklight)))

	sys = core.NewSystem()
	outputBuffer = protocol.NewScratchOutput()

	d, err := core.NewDispatcher(
		melody.NewPlayer(core.MustTone(), melody.DefaultConfig()),
		ledfade.NewAnimator(core.MustLED(), ledfade.DefaultConfig()),
	)
	if err != nil {
		core.DebugPrintln("[MAIN] dispatcher: " + err.Error())
		return
	}
	loop := core.NewLoop(sys, d)

	reporter := telemetry.NewReporter(&sys.Timebase, d, outputBuffer, telemetry.Config{
		Interval: telemetry.DefaultInterval,
		Overruns: loop.Overruns,
	})
	if err := d.Register(reporter); err != nil {
		core.DebugPrintln("[MAIN] register telemetry: " + err.Error())
		return
	}
	if err := d.Register(telemetry.NewLink(outputBuffer, machine.Serial)); err != nil {
		core.DebugPrintln("[MAIN] register link: " + err.Error())
		return
	}

	if err := loop.Start(); err != nil {
		core.DebugPrintln("[MAIN] start: " + err.Error())
		return
	}

	if wd, err := startWatchdog(); err == nil {
		loop.SetWatchdog(wd)
	} else {
		core.DebugPrintln("[MAIN] watchdog: " + err.Error())
	}

	// Tick last, so the first pass starts on a fresh period
	InitClock(sys, core.TickPeriodUS)

	for {
		loop.Step()
	}
}
