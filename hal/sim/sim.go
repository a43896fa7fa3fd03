// Package sim provides recording effector drivers for tests and the host simulator.
package sim

import (
	"strconv"
	"sync"

	"superloop/core"
)

// Op identifies an effector call
type Op uint8

const (
	OpToneFrequency Op = iota + 1
	OpToneOn
	OpToneOff
	OpLEDLevel
	OpLEDOn
	OpLEDOff
)

// Event is one recorded effector call
type Event struct {
	Op      Op
	Channel uint8
	Value   uint16
}

func (e Event) String() string {
	switch e.Op {
	case OpToneFrequency:
		return "tone" + strconv.Itoa(int(e.Channel)) + " freq=" + strconv.Itoa(int(e.Value))
	case OpToneOn:
		return "tone" + strconv.Itoa(int(e.Channel)) + " on"
	case OpToneOff:
		return "tone" + strconv.Itoa(int(e.Channel)) + " off"
	case OpLEDLevel:
		return core.LEDChannel(e.Channel).String() + " level=" + strconv.Itoa(int(e.Value))
	case OpLEDOn:
		return core.LEDChannel(e.Channel).String() + " on"
	case OpLEDOff:
		return core.LEDChannel(e.Channel).String() + " off"
	default:
		return "unknown"
	}
}

// Recorder implements core.ToneDriver and core.LEDDriver.
// It keeps the current output state and, optionally, every call made.
type Recorder struct {
	mu sync.Mutex

	events  []Event
	record  bool
	onEvent func(Event)

	toneOn   [2]bool
	toneFreq [2]uint16
	ledLevel [core.NumLEDChannels]uint8
}

// NewRecorder creates a recorder that keeps the full call log
func NewRecorder() *Recorder {
	return &Recorder{record: true}
}

// NewStateRecorder creates a recorder that tracks output state only
func NewStateRecorder() *Recorder {
	return &Recorder{}
}

// OnEvent sets a callback invoked for every call
func (r *Recorder) OnEvent(fn func(Event)) {
	r.mu.Lock()
	r.onEvent = fn
	r.mu.Unlock()
}

func (r *Recorder) add(e Event) {
	if r.record {
		r.events = append(r.events, e)
	}
	if r.onEvent != nil {
		r.onEvent(e)
	}
}

func (r *Recorder) SetToneFrequency(ch core.ToneChannel, hz uint16) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(ch) < len(r.toneFreq) {
		r.toneFreq[ch] = hz
	}
	r.add(Event{Op: OpToneFrequency, Channel: uint8(ch), Value: hz})
}

func (r *Recorder) ToneOn(ch core.ToneChannel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(ch) < len(r.toneOn) {
		r.toneOn[ch] = true
	}
	r.add(Event{Op: OpToneOn, Channel: uint8(ch)})
}

func (r *Recorder) ToneOff(ch core.ToneChannel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(ch) < len(r.toneOn) {
		r.toneOn[ch] = false
	}
	r.add(Event{Op: OpToneOff, Channel: uint8(ch)})
}

func (r *Recorder) SetLEDLevel(ch core.LEDChannel, level uint8) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ch < core.NumLEDChannels {
		r.ledLevel[ch] = level
	}
	r.add(Event{Op: OpLEDLevel, Channel: uint8(ch), Value: uint16(level)})
}

func (r *Recorder) LEDOn(ch core.LEDChannel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ch < core.NumLEDChannels {
		r.ledLevel[ch] = core.LEDLevelMax
	}
	r.add(Event{Op: OpLEDOn, Channel: uint8(ch)})
}

func (r *Recorder) LEDOff(ch core.LEDChannel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ch < core.NumLEDChannels {
		r.ledLevel[ch] = 0
	}
	r.add(Event{Op: OpLEDOff, Channel: uint8(ch)})
}

// Events returns a copy of the call log
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Reset clears the call log
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = r.events[:0]
	r.mu.Unlock()
}

// Tone returns whether a tone channel is sounding and at what frequency
func (r *Recorder) Tone(ch core.ToneChannel) (on bool, hz uint16) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(ch) >= len(r.toneOn) {
		return false, 0
	}
	return r.toneOn[ch], r.toneFreq[ch]
}

// LEDLevel returns the last level written to an LED
func (r *Recorder) LEDLevel(ch core.LEDChannel) uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ch >= core.NumLEDChannels {
		return 0
	}
	return r.ledLevel[ch]
}

var (
	_ core.ToneDriver = (*Recorder)(nil)
	_ core.LEDDriver  = (*Recorder)(nil)
)
