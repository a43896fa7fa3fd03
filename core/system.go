package core

// System is the process-wide context shared by the tick handler and the main loop.
// Create it once at startup; it is never torn down.
type System struct {
	Timebase Timebase
	Gate     *PowerGate
}

// NewSystem creates a System with zeroed counters and an awake gate
func NewSystem() *System {
	return &System{
		Gate: NewPowerGate(),
	}
}

// Tick is the complete tick interrupt handler body.
// It never runs task code.
func (s *System) Tick() {
	s.Timebase.Tick()
	s.Gate.Clear()
}
