//go:build rp2040

package main

import (
	"device/rp"
	"runtime/interrupt"

	"superloop/core"
)

// The tick runs off TIMER alarm 1; alarm 0 belongs to the TinyGo runtime.
const tickAlarmBit = 1 << 1

var (
	tickSystem   *core.System
	tickPeriodUS uint32 = core.TickPeriodUS
	tickDeadline uint32
)

// InitClock starts the periodic tick interrupt.
// The RP2040 timer counts microseconds, so the alarm target advances by
// the tick period each time and never drifts.
func InitClock(sys *core.System, periodUS uint32) {
	tickSystem = sys
	tickPeriodUS = periodUS

	intr := interrupt.New(rp.IRQ_TIMER_IRQ_1, timerIRQ)

	tickDeadline = rp.TIMER.TIMERAWL.Get() + tickPeriodUS
	rp.TIMER.INTR.Set(tickAlarmBit)
	rp.TIMER.INTE.SetBits(tickAlarmBit)
	rp.TIMER.ALARM1.Set(tickDeadline)

	intr.SetPriority(0x00)
	intr.Enable()
}

// timerIRQ is the whole tick handler: re-arm, then advance time and open
// the power gate.
func timerIRQ(interrupt.Interrupt) {
	rp.TIMER.INTR.Set(tickAlarmBit)

	tickDeadline += tickPeriodUS
	rp.TIMER.ALARM1.Set(tickDeadline)

	tickSystem.Tick()
}
