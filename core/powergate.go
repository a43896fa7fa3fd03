package core

import "sync/atomic"

// PowerGate parks the main loop between scheduling passes.
//
// The flag is set by the main loop right before waiting and cleared only by
// the tick handler. If interrupts are globally disabled while waiting, the
// loop never wakes; only the hardware watchdog can recover from that.
type PowerGate struct {
	sleeping uint32 // atomic bool (0 = awake, 1 = sleeping)
	wake     chan struct{}
	suspend  func()
	suspends uint32
}

// NewPowerGate creates a gate using the platform suspend primitive
func NewPowerGate() *PowerGate {
	g := &PowerGate{
		wake: make(chan struct{}, 1),
	}
	g.suspend = g.platformSuspend
	return g
}

// SetSuspender replaces the suspend primitive (for testing).
// fn is called once per wait attempt while the flag is set.
func (g *PowerGate) SetSuspender(fn func()) {
	if fn == nil {
		g.suspend = g.platformSuspend
		return
	}
	g.suspend = fn
}

// Arm sets the sleep flag
func (g *PowerGate) Arm() {
	atomic.StoreUint32(&g.sleeping, 1)
}

// Clear clears the sleep flag and wakes a suspended waiter.
// Called only from the tick handler.
func (g *PowerGate) Clear() {
	atomic.StoreUint32(&g.sleeping, 0)
	g.signalWake()
}

// Sleeping reports whether the flag is set
func (g *PowerGate) Sleeping() bool {
	return atomic.LoadUint32(&g.sleeping) != 0
}

// Wait suspends until the flag reads clear.
// Returns immediately, without suspending, if the flag is already clear.
func (g *PowerGate) Wait() {
	for g.Sleeping() {
		atomic.AddUint32(&g.suspends, 1)
		g.suspend()
	}
}

// EnterLowPower sets the flag and waits for the next tick to clear it
func (g *PowerGate) EnterLowPower() {
	g.Arm()
	g.Wait()
}

// Suspends returns how many times the suspend primitive has been entered
func (g *PowerGate) Suspends() uint32 {
	return atomic.LoadUint32(&g.suspends)
}
