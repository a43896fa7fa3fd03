// Package ledfade fades a sequence of LEDs up and down through a duty table.
package ledfade

import "superloop/core"

// TimeBetweenDutyChange is the default number of invocations per duty step
const TimeBetweenDutyChange = 20

type smState uint8

const (
	stateIdle smState = iota
	stateError
)

// DefaultLevels is a 0..100 duty ramp in steps of 5
var DefaultLevels = []uint8{
	0, 5, 10, 15, 20, 25, 30, 35, 40, 45, 50,
	55, 60, 65, 70, 75, 80, 85, 90, 95, 100,
}

// Config holds the animation tables.
// LEDs and Increasing are parallel: entry i fades LEDs[i] up when
// Increasing[i] is set and down otherwise.
type Config struct {
	LEDs                  []core.LEDChannel
	Increasing            []bool
	Levels                []uint8
	TimeBetweenDutyChange uint32
}

// DefaultConfig returns a rainbow cycle over the RGB backlight
func DefaultConfig() Config {
	return Config{
		LEDs: []core.LEDChannel{
			core.LEDLCDRed, core.LEDLCDGreen, core.LEDLCDRed,
			core.LEDLCDBlue, core.LEDLCDGreen, core.LEDLCDRed, core.LEDLCDBlue,
		},
		Increasing:            []bool{true, true, false, true, false, true, false},
		Levels:                DefaultLevels,
		TimeBetweenDutyChange: TimeBetweenDutyChange,
	}
}

// Animator is the LED fade task
type Animator struct {
	leds core.LEDDriver
	cfg  Config

	state      smState
	counter    uint32
	dutyIndex  int
	maxIndex   int
	active     int
	increasing bool
}

// NewAnimator creates an LED fade task. Call Initialize before use.
func NewAnimator(leds core.LEDDriver, cfg Config) *Animator {
	return &Animator{
		leds:  leds,
		cfg:   cfg,
		state: stateError,
	}
}

// Name returns the task name
func (a *Animator) Name() string {
	return "ledfade"
}

// Initialize validates the tables and selects the first LED.
func (a *Animator) Initialize() {
	n := len(a.cfg.LEDs)
	if n == 0 || n != len(a.cfg.Increasing) || len(a.cfg.Levels) < 2 || a.leds == nil {
		a.state = stateError
		return
	}
	for _, led := range a.cfg.LEDs {
		if led >= core.NumLEDChannels {
			a.state = stateError
			return
		}
	}
	if a.cfg.TimeBetweenDutyChange == 0 {
		a.cfg.TimeBetweenDutyChange = TimeBetweenDutyChange
	}

	a.maxIndex = len(a.cfg.Levels) - 1
	a.active = 0
	a.counter = 0
	a.selectLED(0)
	a.state = stateIdle
}

// RunActiveState runs one iteration of the current state
func (a *Animator) RunActiveState() {
	switch a.state {
	case stateIdle:
		a.idle()
	case stateError:
	}
}

// Faulted reports whether the animator is shut down
func (a *Animator) Faulted() bool {
	return a.state == stateError
}

func (a *Animator) idle() {
	a.counter++
	if a.counter < a.cfg.TimeBetweenDutyChange {
		return
	}
	a.counter = 0

	led := a.cfg.LEDs[a.active]
	if a.increasing {
		a.dutyIndex++
		a.leds.SetLEDLevel(led, a.cfg.Levels[a.dutyIndex])
		if a.dutyIndex == a.maxIndex {
			a.selectLED((a.active + 1) % len(a.cfg.LEDs))
		}
		return
	}

	a.dutyIndex--
	a.leds.SetLEDLevel(led, a.cfg.Levels[a.dutyIndex])
	if a.dutyIndex == 0 {
		a.selectLED((a.active + 1) % len(a.cfg.LEDs))
	}
}

// selectLED makes entry i active; its direction decides which end the
// duty index restarts from.
func (a *Animator) selectLED(i int) {
	a.active = i
	a.increasing = a.cfg.Increasing[i]
	if a.increasing {
		a.dutyIndex = 0
	} else {
		a.dutyIndex = a.maxIndex
	}
}

// DutyIndex returns the current duty table index
func (a *Animator) DutyIndex() int {
	return a.dutyIndex
}

// ActiveLED returns the table entry currently fading
func (a *Animator) ActiveLED() int {
	return a.active
}

// Increasing reports the active fade direction
func (a *Animator) Increasing() bool {
	return a.increasing
}
