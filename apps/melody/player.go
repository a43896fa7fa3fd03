// Package melody plays a looping melody on a buzzer, one tick at a time.
package melody

import "superloop/core"

type smState uint8

const (
	stateIdle smState = iota
	stateError
)

// Phase is the half of a note the player is in
type Phase uint8

const (
	// PhaseRest is the gap after a note; the next action starts a note
	PhaseRest Phase = iota
	// PhaseSounding is the note itself; the next action starts its rest
	PhaseSounding
)

// Config holds the three parallel melody tables.
// Durations and Rests are in ticks (ms at the standard tick period).
type Config struct {
	Channel   core.ToneChannel
	Tones     []uint16
	Durations []uint16
	Rests     []uint16
}

// DefaultConfig returns the built-in melody on Buzzer1
func DefaultConfig() Config {
	return Config{
		Channel:   core.Buzzer1,
		Tones:     DefaultTones,
		Durations: DefaultDurations,
		Rests:     DefaultRests,
	}
}

// Player is the melody task
type Player struct {
	tone core.ToneDriver
	cfg  Config

	state    smState
	numNotes int
	index    int
	phase    Phase
	timer    uint16
}

// NewPlayer creates a melody task driving tone. Call Initialize before use.
func NewPlayer(tone core.ToneDriver, cfg Config) *Player {
	return &Player{
		tone:  tone,
		cfg:   cfg,
		state: stateError,
		phase: PhaseRest,
	}
}

// Name returns the task name
func (p *Player) Name() string {
	return "melody"
}

// Initialize checks that the three tables have the same, nonzero length.
// On success the player idles at the first note; otherwise it is shut down.
func (p *Player) Initialize() {
	n := len(p.cfg.Tones)
	if n == 0 || n != len(p.cfg.Durations) || n != len(p.cfg.Rests) || p.tone == nil {
		p.state = stateError
		return
	}

	p.numNotes = n
	p.index = 0
	p.phase = PhaseRest
	p.timer = 0
	p.state = stateIdle
}

// RunActiveState runs one iteration of the current state
func (p *Player) RunActiveState() {
	switch p.state {
	case stateIdle:
		p.idle()
	case stateError:
	}
}

// Faulted reports whether the player is shut down
func (p *Player) Faulted() bool {
	return p.state == stateError
}

// idle consumes the tick on the countdown, or performs the next note action
// when the countdown has run out.
func (p *Player) idle() {
	if p.timer != 0 {
		p.timer--
		return
	}

	ch := p.cfg.Channel
	switch p.phase {
	case PhaseRest:
		hz := p.cfg.Tones[p.index]
		if hz != NoTone {
			p.tone.SetToneFrequency(ch, hz)
			p.tone.ToneOn(ch)
		} else {
			p.tone.ToneOff(ch)
		}
		p.timer = p.cfg.Durations[p.index]
		p.phase = PhaseSounding

	case PhaseSounding:
		p.timer = p.cfg.Rests[p.index]
		// A held note (zero rest) runs straight into the next one
		if p.timer != 0 {
			p.tone.ToneOff(ch)
		}
		p.phase = PhaseRest
		p.index = (p.index + 1) % p.numNotes
	}
}

// Index returns the current table entry
func (p *Player) Index() int {
	return p.index
}

// Phase returns the current note phase
func (p *Player) Phase() Phase {
	return p.phase
}

// Countdown returns the ticks left before the next action
func (p *Player) Countdown() uint16 {
	return p.timer
}
