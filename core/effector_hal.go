package core

import "strconv"

// ToneChannel identifies a tone output (buzzer)
type ToneChannel uint8

// LEDChannel identifies an LED output
type LEDChannel uint8

// Tone outputs
const (
	Buzzer1 ToneChannel = iota
	Buzzer2
)

// LED outputs
const (
	LEDWhite LEDChannel = iota
	LEDPurple
	LEDBlue
	LEDCyan
	LEDGreen
	LEDYellow
	LEDOrange
	LEDRed
	LEDLCDRed
	LEDLCDGreen
	LEDLCDBlue
	NumLEDChannels
)

// LEDLevelMax is the full-on duty level
const LEDLevelMax = 100

// ToneDriver is the abstract tone interface that task code uses.
// Calls are synchronous, non-blocking and idempotent.
type ToneDriver interface {
	// SetToneFrequency sets the output frequency in Hz (takes effect while on)
	SetToneFrequency(ch ToneChannel, hz uint16)

	// ToneOn starts the tone
	ToneOn(ch ToneChannel)

	// ToneOff silences the tone
	ToneOff(ch ToneChannel)
}

// LEDDriver is the abstract LED interface that task code uses.
// Calls are synchronous, non-blocking and idempotent.
type LEDDriver interface {
	// SetLEDLevel sets the duty level, 0 (off) to LEDLevelMax (full on)
	SetLEDLevel(ch LEDChannel, level uint8)

	// LEDOn drives the LED fully on
	LEDOn(ch LEDChannel)

	// LEDOff drives the LED fully off
	LEDOff(ch LEDChannel)
}

// Global singletons used by the firmware entry points.
var (
	toneDriver ToneDriver
	ledDriver  LEDDriver
)

// SetToneDriver is called by target-specific code to register its driver.
func SetToneDriver(d ToneDriver) {
	toneDriver = d
}

// MustTone returns the configured driver or panics if missing.
func MustTone() ToneDriver {
	if toneDriver == nil {
		panic("tone driver not configured")
	}
	return toneDriver
}

// SetLEDDriver is called by target-specific code to register its driver.
func SetLEDDriver(d LEDDriver) {
	ledDriver = d
}

// MustLED returns the configured driver or panics if missing.
func MustLED() LEDDriver {
	if ledDriver == nil {
		panic("LED driver not configured")
	}
	return ledDriver
}

// String returns the channel name used in configs and diagnostics
func (c LEDChannel) String() string {
	if int(c) < len(ledNames) {
		return ledNames[c]
	}
	return "led" + strconv.Itoa(int(c))
}

var ledNames = [...]string{
	LEDWhite:    "white",
	LEDPurple:   "purple",
	LEDBlue:     "blue",
	LEDCyan:     "cyan",
	LEDGreen:    "green",
	LEDYellow:   "yellow",
	LEDOrange:   "orange",
	LEDRed:      "red",
	LEDLCDRed:   "lcd_red",
	LEDLCDGreen: "lcd_green",
	LEDLCDBlue:  "lcd_blue",
}

// ParseLEDChannel maps a config name back to its channel
func ParseLEDChannel(name string) (LEDChannel, bool) {
	for i, n := range ledNames {
		if n == name {
			return LEDChannel(i), true
		}
	}
	return 0, false
}
