//go:build rp2040

package main

import (
	"machine"
	"strconv"

	"tinygo.org/x/drivers/tone"

	"superloop/core"
	"superloop/targets/pio"
)

// pwmBuzzer is a buzzer on a hardware PWM slice
type pwmBuzzer struct {
	speaker tone.Speaker
	hz      uint16
	on      bool
	ok      bool
}

func (b *pwmBuzzer) apply() {
	if !b.ok {
		return
	}
	if !b.on || b.hz == 0 {
		b.speaker.Stop()
		return
	}
	b.speaker.SetPeriod(1e9 / uint64(b.hz))
}

// RP2040ToneDriver implements core.ToneDriver.
// Buzzer1 uses a PWM slice, Buzzer2 a PIO state machine.
type RP2040ToneDriver struct {
	buzzer1 pwmBuzzer
	buzzer2 *pio.ToneGenerator

	freqErrReported bool
}

// NewRP2040ToneDriver sets up both buzzers, silent.
// A buzzer whose hardware cannot be claimed stays silent.
func NewRP2040ToneDriver(pin1, pin2 machine.Pin) *RP2040ToneDriver {
	d := &RP2040ToneDriver{}

	pwm := getPWMPeripheral(uint8((uint32(pin1) >> 1) & 0x7))
	if speaker, err := tone.New(pwm, pin1); err == nil {
		d.buzzer1 = pwmBuzzer{speaker: speaker, ok: true}
		speaker.Stop()
	} else {
		core.DebugAsync("[BUZZER] buzzer1 PWM unavailable: " + err.Error())
	}

	if gen, err := pio.ClaimToneGenerator(uint8(pin2)); err == nil {
		d.buzzer2 = gen
	} else {
		core.DebugAsync("[BUZZER] buzzer2 PIO unavailable: " + err.Error())
	}
	return d
}

func (d *RP2040ToneDriver) SetToneFrequency(ch core.ToneChannel, hz uint16) {
	switch ch {
	case core.Buzzer1:
		d.buzzer1.hz = hz
		if d.buzzer1.on {
			d.buzzer1.apply()
		}
	case core.Buzzer2:
		if d.buzzer2 == nil {
			return
		}
		// The previous pitch keeps playing; report the first failure only
		if err := d.buzzer2.SetFrequency(hz); err != nil && !d.freqErrReported {
			d.freqErrReported = true
			core.DebugAsync("[BUZZER] buzzer2 cannot play " + strconv.Itoa(int(hz)) + " Hz: " + err.Error())
		}
	}
}

func (d *RP2040ToneDriver) ToneOn(ch core.ToneChannel) {
	switch ch {
	case core.Buzzer1:
		d.buzzer1.on = true
		d.buzzer1.apply()
	case core.Buzzer2:
		if d.buzzer2 != nil {
			d.buzzer2.On()
		}
	}
}

func (d *RP2040ToneDriver) ToneOff(ch core.ToneChannel) {
	switch ch {
	case core.Buzzer1:
		d.buzzer1.on = false
		d.buzzer1.apply()
	case core.Buzzer2:
		if d.buzzer2 != nil {
			d.buzzer2.Off()
		}
	}
}

var _ core.ToneDriver = (*RP2040ToneDriver)(nil)
