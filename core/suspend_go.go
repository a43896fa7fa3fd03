//go:build !tinygo

package core

// platformSuspend blocks until the tick handler posts a wake token (regular Go implementation)
func (g *PowerGate) platformSuspend() {
	<-g.wake
}

// signalWake posts a wake token without blocking; one pending token is enough
func (g *PowerGate) signalWake() {
	select {
	case g.wake <- struct{}{}:
	default:
	}
}
