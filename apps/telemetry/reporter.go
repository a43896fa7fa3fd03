// Package telemetry periodically reports scheduler health as status frames.
package telemetry

import (
	"superloop/core"
	"superloop/protocol"
)

// DefaultInterval is the default report period in ms
const DefaultInterval = 1000

type smState uint8

const (
	stateIdle smState = iota
	stateError
)

// Source provides the scheduler view being reported
type Source interface {
	Tasks() []core.Task
	Passes() uint32
}

// Config holds the reporter settings
type Config struct {
	Interval uint32        // Report period in ms
	Overruns func() uint32 // Optional overrun counter
}

// Reporter is the telemetry task. It emits one frame every Interval ms and
// does nothing on the ticks in between.
type Reporter struct {
	tb     *core.Timebase
	src    Source
	writer *protocol.FrameWriter
	cfg    Config

	state    smState
	lastSent uint32
	sent     uint32
}

// NewReporter creates a telemetry task writing frames into out
func NewReporter(tb *core.Timebase, src Source, out protocol.OutputBuffer, cfg Config) *Reporter {
	r := &Reporter{
		tb:    tb,
		src:   src,
		cfg:   cfg,
		state: stateError,
	}
	if out != nil {
		r.writer = protocol.NewFrameWriter(out)
	}
	return r
}

// Name returns the task name
func (r *Reporter) Name() string {
	return "telemetry"
}

// Initialize checks the settings and arms the first report one interval out
func (r *Reporter) Initialize() {
	if r.cfg.Interval == 0 || r.tb == nil || r.src == nil || r.writer == nil {
		r.state = stateError
		return
	}
	r.lastSent = r.tb.Millis()
	r.state = stateIdle
}

// RunActiveState runs one iteration of the current state
func (r *Reporter) RunActiveState() {
	switch r.state {
	case stateIdle:
		r.idle()
	case stateError:
	}
}

// Faulted reports whether the reporter is shut down
func (r *Reporter) Faulted() bool {
	return r.state == stateError
}

func (r *Reporter) idle() {
	if r.tb.Since(r.lastSent) < r.cfg.Interval {
		return
	}
	now := r.tb.Now()

	r.lastSent += r.cfg.Interval
	if now.Millis-r.lastSent >= r.cfg.Interval {
		// Fell more than a period behind; report once and realign
		r.lastSent = now.Millis
	}

	st := protocol.Status{
		Millis:  now.Millis,
		Seconds: now.Seconds,
		Passes:  r.src.Passes(),
	}
	if r.cfg.Overruns != nil {
		st.Overruns = r.cfg.Overruns()
	}

	tasks := r.src.Tasks()
	st.TaskCount = uint8(len(tasks))
	for i, t := range tasks {
		if i < protocol.MaxStatusTasks && t.Faulted() {
			st.FaultMask |= 1 << uint(i)
		}
	}

	n, err := r.writer.WriteStatus(st)
	if err != nil {
		return
	}
	r.sent++
	core.RecordTiming(core.EvtReport, 0, now.Millis, uint32(n), r.sent)
}

// Sent returns how many frames were written
func (r *Reporter) Sent() uint32 {
	return r.sent
}

// Dropped returns how many frames were lost to a full output buffer
func (r *Reporter) Dropped() uint32 {
	if r.writer == nil {
		return 0
	}
	return r.writer.Dropped()
}
