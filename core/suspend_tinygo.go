//go:build tinygo

package core

import (
	"device/arm"
	"runtime"
	"runtime/interrupt"
)

// platformSuspend halts the core until the next interrupt.
// Other runnable goroutines (the async debug writer) run first; the loop
// goroutine yields nowhere else.
// The flag is rechecked with interrupts masked: a tick landing between the
// check and WFI stays pending, so WFI returns at once instead of sleeping a
// whole period.
func (g *PowerGate) platformSuspend() {
	runtime.Gosched()

	state := interrupt.Disable()
	if g.Sleeping() {
		arm.Asm("wfi")
	}
	interrupt.Restore(state)
}

// signalWake is a no-op: the tick interrupt itself ends the WFI
func (g *PowerGate) signalWake() {}
