package core

import "context"

// Loop is the super loop: one scheduling pass per tick, then sleep.
type Loop struct {
	sys        *System
	dispatcher *Dispatcher
	watchdog   Watchdog
	overruns   uint32
}

// NewLoop creates a loop over a system context and its dispatcher
func NewLoop(sys *System, d *Dispatcher) *Loop {
	return &Loop{
		sys:        sys,
		dispatcher: d,
		watchdog:   nopWatchdog{},
	}
}

// SetWatchdog sets the watchdog fed once per pass
func (l *Loop) SetWatchdog(w Watchdog) {
	if w == nil {
		w = nopWatchdog{}
	}
	l.watchdog = w
}

// Start initializes every task. Must be called exactly once before Step.
func (l *Loop) Start() error {
	return l.dispatcher.Initialize()
}

// Step runs one scheduling pass, services the watchdog and sleeps until
// the next tick. The only blocking point of the whole system is here.
func (l *Loop) Step() {
	start := l.sys.Timebase.Millis()

	l.dispatcher.RunPass()

	// A tick landing mid-pass means this pass ate into the next period
	if elapsed := l.sys.Timebase.Since(start); elapsed != 0 {
		l.overruns++
		RecordTiming(EvtPassOverrun, 0, start, elapsed, l.dispatcher.Passes())
	}

	l.watchdog.Feed()
	l.sys.Gate.EnterLowPower()
	RecordTiming(EvtWake, 0, l.sys.Timebase.Millis(), 0, 0)
}

// Run starts the tasks and steps forever.
// ctx is only checked between passes; a pass or the gate wait is never interrupted.
func (l *Loop) Run(ctx context.Context) error {
	if !l.dispatcher.Initialized() {
		if err := l.Start(); err != nil {
			return err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.Step()
	}
}

// Overruns returns how many passes outlasted a tick
func (l *Loop) Overruns() uint32 {
	return l.overruns
}
