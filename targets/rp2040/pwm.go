//go:build rp2040

package main

import (
	"machine"

	"superloop/core"
)

// LEDPWMPeriodNS is the discrete LED PWM period (1 kHz)
const LEDPWMPeriodNS = 1000000

// pwmPeripheral is an interface for PWM hardware peripherals
// This abstracts over TinyGo's unexported *pwmGroup type
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
	SetPeriod(period uint64) error
}

type pwmOutput struct {
	pwm     pwmPeripheral
	channel uint8
	ok      bool
}

// RP2040LEDDriver implements core.LEDDriver.
// Discrete LEDs are PWM outputs; the LCD backlight channels are forwarded
// to the RGB backlight.
type RP2040LEDDriver struct {
	outputs   [core.NumLEDChannels]pwmOutput
	backlight *Backlight
}

// NewRP2040LEDDriver configures a PWM output for every discrete LED pin.
// A pin that cannot be configured stays dark; the other LEDs still work.
func NewRP2040LEDDriver(pins map[core.LEDChannel]machine.Pin, backlight *Backlight) *RP2040LEDDriver {
	d := &RP2040LEDDriver{backlight: backlight}

	for ch, pin := range pins {
		if ch >= core.NumLEDChannels || isBacklight(ch) {
			continue
		}

		// RP2040: GPIO pin N maps to slice (N >> 1) & 0x7, channel N & 1
		pwm := getPWMPeripheral(uint8((uint32(pin) >> 1) & 0x7))
		if err := pwm.Configure(machine.PWMConfig{Period: LEDPWMPeriodNS}); err != nil {
			continue
		}
		channel, err := pwm.Channel(pin)
		if err != nil {
			continue
		}
		pwm.Set(channel, 0)
		d.outputs[ch] = pwmOutput{pwm: pwm, channel: channel, ok: true}
	}
	return d
}

// SetLEDLevel sets an LED brightness, 0 to core.LEDLevelMax
func (d *RP2040LEDDriver) SetLEDLevel(ch core.LEDChannel, level uint8) {
	if level > core.LEDLevelMax {
		level = core.LEDLevelMax
	}
	if isBacklight(ch) {
		if d.backlight != nil {
			d.backlight.SetLevel(ch, level)
		}
		return
	}
	if ch >= core.NumLEDChannels || !d.outputs[ch].ok {
		return
	}

	out := d.outputs[ch]
	// Scale 0-100 to the hardware compare range
	out.pwm.Set(out.channel, uint32(level)*out.pwm.Top()/core.LEDLevelMax)
}

// LEDOn drives an LED fully on
func (d *RP2040LEDDriver) LEDOn(ch core.LEDChannel) {
	d.SetLEDLevel(ch, core.LEDLevelMax)
}

// LEDOff turns an LED off
func (d *RP2040LEDDriver) LEDOff(ch core.LEDChannel) {
	d.SetLEDLevel(ch, 0)
}

func isBacklight(ch core.LEDChannel) bool {
	return ch == core.LEDLCDRed || ch == core.LEDLCDGreen || ch == core.LEDLCDBlue
}

// getPWMPeripheral returns the PWM peripheral for a given slice number
// RP2040 has 8 PWM slices: PWM0-PWM7
func getPWMPeripheral(sliceNum uint8) pwmPeripheral {
	switch sliceNum {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		// Should never happen with proper masking
		return machine.PWM0
	}
}

var _ core.LEDDriver = (*RP2040LEDDriver)(nil)
