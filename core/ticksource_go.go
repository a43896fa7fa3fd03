//go:build !tinygo

package core

import (
	"sync"
	"time"
)

// TickSource stands in for the hardware tick interrupt on regular Go.
// It calls System.Tick from its own goroutine at a fixed period.
type TickSource struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// StartTickSource starts ticking sys every period
func StartTickSource(sys *System, period time.Duration) *TickSource {
	if period <= 0 {
		period = TickPeriodUS * time.Microsecond
	}

	s := &TickSource{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				sys.Tick()
			}
		}
	}()

	return s
}

// Stop halts the tick source and waits for its goroutine to exit.
// A loop still parked in the power gate stays parked after Stop.
func (s *TickSource) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	<-s.done
}
