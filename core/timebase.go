package core

import "sync/atomic"

// Timebase tick constants
const (
	TickPeriodUS    = 1000 // Hardware tick period (1 ms)
	MillisPerSecond = 1000 // Ticks per second counter increment
)

// Time is a consistent snapshot of both Timebase counters
type Time struct {
	Millis  uint32
	Seconds uint32
}

// Timebase owns the system time counters.
// Millis wraps after 2^32 ms (~49 days), Seconds after 2^32 s (~136 years).
// Only the tick handler writes; any context may read.
type Timebase struct {
	millis  uint32
	seconds uint32
	sub     uint32 // Ticks since the last second boundary, tick handler only
}

// Tick advances the timebase by one tick.
// Must only be called from the tick interrupt (or its host stand-in).
func (tb *Timebase) Tick() {
	atomic.AddUint32(&tb.millis, 1)

	tb.sub++
	if tb.sub == MillisPerSecond {
		tb.sub = 0
		atomic.AddUint32(&tb.seconds, 1)
	}
}

// Millis returns the millisecond counter
func (tb *Timebase) Millis() uint32 {
	return atomic.LoadUint32(&tb.millis)
}

// Seconds returns the second counter
func (tb *Timebase) Seconds() uint32 {
	return atomic.LoadUint32(&tb.seconds)
}

// Now returns both counters as one consistent snapshot.
// Seconds is read before and after Millis; a change means a tick crossed a
// second boundary mid-read, so retry.
func (tb *Timebase) Now() Time {
	for {
		s1 := atomic.LoadUint32(&tb.seconds)
		ms := atomic.LoadUint32(&tb.millis)
		s2 := atomic.LoadUint32(&tb.seconds)

		if s1 == s2 {
			return Time{Millis: ms, Seconds: s1}
		}
	}
}

// Since returns the milliseconds elapsed from start, correct across wrap
func (tb *Timebase) Since(start uint32) uint32 {
	return tb.Millis() - start
}

// Preset sets the counters (for testing/hardware integration).
// The sub-second count restarts, so the next second boundary is 1000 ticks away.
func (tb *Timebase) Preset(millis, seconds uint32) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	atomic.StoreUint32(&tb.millis, millis)
	atomic.StoreUint32(&tb.seconds, seconds)
	tb.sub = 0
}
