//go:build rp2040

package main

import (
	"image/color"
	"machine"
	"runtime/interrupt"

	"tinygo.org/x/drivers/ws2812"

	"superloop/core"
)

// Backlight is the LCD's RGB backlight, a single WS2812 pixel.
// Each colour component follows one LCD LED channel.
type Backlight struct {
	dev   ws2812.Device
	pixel [1]color.RGBA
}

// NewBacklight configures the pixel data pin and blanks the pixel
func NewBacklight(pin machine.Pin) *Backlight {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	b := &Backlight{dev: ws2812.New(pin)}
	b.pixel[0].A = 255
	b.flush()
	return b
}

// SetLevel sets one colour component, 0 to core.LEDLevelMax
func (b *Backlight) SetLevel(ch core.LEDChannel, level uint8) {
	v := uint8(uint16(level) * 255 / core.LEDLevelMax)
	switch ch {
	case core.LEDLCDRed:
		b.pixel[0].R = v
	case core.LEDLCDGreen:
		b.pixel[0].G = v
	case core.LEDLCDBlue:
		b.pixel[0].B = v
	default:
		return
	}
	b.flush()
}

// flush sends the pixel with interrupts held off; the bit timing is
// software generated. One pixel takes about 30 us, well inside a tick.
func (b *Backlight) flush() {
	state := interrupt.Disable()
	b.dev.WriteColors(b.pixel[:])
	interrupt.Restore(state)
}
