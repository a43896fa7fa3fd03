package core

// Watchdog is the hardware watchdog serviced by the super loop.
// If Feed stops being called (a task never returns, or the loop never
// wakes) the watchdog resets the whole system.
type Watchdog interface {
	Feed()
}

type nopWatchdog struct{}

func (nopWatchdog) Feed() {}
