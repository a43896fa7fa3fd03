//go:build rp2040

package main

import "machine"

// WatchdogTimeoutMS is how long a stuck pass may run before the chip resets
const WatchdogTimeoutMS = 100

// hwWatchdog feeds the RP2040 watchdog once per scheduling pass
type hwWatchdog struct{}

func startWatchdog() (hwWatchdog, error) {
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: WatchdogTimeoutMS}); err != nil {
		return hwWatchdog{}, err
	}
	if err := machine.Watchdog.Start(); err != nil {
		return hwWatchdog{}, err
	}
	return hwWatchdog{}, nil
}

func (hwWatchdog) Feed() {
	machine.Watchdog.Update()
}
