//go:build rp2040

package pio

// PIO square-wave tone generator using tinygo-org/pio package.
// The program toggles one SET pin with equal high and low halves, so the
// output frequency depends only on the state machine clock divider.

import (
	"errors"
	"machine"
	"time"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// cyclesPerWave is the number of PIO cycles in one output period
// (two instructions of 1 + 31 delay cycles each)
const cyclesPerWave = 64

const toneOrigin = -1 // Let the PIO place the program

var ErrToneNotConfigured = errors.New("pio: tone generator not configured")

// buildToneProgram creates the square-wave PIO program using AssemblerV0
func buildToneProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Set(rp2pio.SetDestPins, 1).Delay(31).Encode(), // 0: set pins, 1 [31]
		asm.Set(rp2pio.SetDestPins, 0).Delay(31).Encode(), // 1: set pins, 0 [31]
		// .wrap
	}
}

// ToneGenerator drives a buzzer pin from one PIO state machine
type ToneGenerator struct {
	pio    *rp2pio.PIO
	sm     rp2pio.StateMachine
	pin    machine.Pin
	offset uint8
	hz     uint16
	on     bool
	ready  bool
}

// NewToneGenerator creates a tone generator.
// pioNum: 0 for PIO0, 1 for PIO1
// smNum: 0-3 for state machine number
func NewToneGenerator(pioNum, smNum uint8) *ToneGenerator {
	var pioHW *rp2pio.PIO
	if pioNum == 0 {
		pioHW = rp2pio.PIO0
	} else {
		pioHW = rp2pio.PIO1
	}

	return &ToneGenerator{
		pio: pioHW,
		sm:  pioHW.StateMachine(smNum),
	}
}

// Init loads the program and leaves the pin driven low
func (g *ToneGenerator) Init(pin machine.Pin) error {
	g.pin = pin
	g.sm.TryClaim()

	program := buildToneProgram()
	offset, err := g.pio.AddProgram(program, toneOrigin)
	if err != nil {
		return err
	}
	g.offset = offset

	g.pin.Configure(machine.PinConfig{Mode: g.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSetPins(g.pin, 1)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)
	g.sm.Init(offset, cfg)

	g.sm.SetPindirsConsecutive(g.pin, 1, true)
	g.sm.SetPinsConsecutive(g.pin, 1, false)

	g.ready = true
	return nil
}

// SetFrequency sets the output frequency; takes effect immediately when on
func (g *ToneGenerator) SetFrequency(hz uint16) error {
	if !g.ready {
		return ErrToneNotConfigured
	}
	if hz == 0 {
		g.Off()
		g.hz = 0
		return nil
	}

	period := time.Second / time.Duration(hz) / cyclesPerWave
	whole, frac, err := rp2pio.ClkDivFromPeriod(uint32(period), uint32(machine.CPUFrequency()))
	if err != nil {
		return err
	}
	g.sm.SetClkDiv(whole, frac)
	g.hz = hz
	return nil
}

// On starts the wave at the last set frequency
func (g *ToneGenerator) On() {
	if !g.ready || g.hz == 0 || g.on {
		return
	}
	g.sm.Restart()
	g.sm.ClkDivRestart()
	g.sm.SetEnabled(true)
	g.on = true
}

// Off stops the wave with the pin low
func (g *ToneGenerator) Off() {
	if !g.ready || !g.on {
		return
	}
	g.sm.SetEnabled(false)
	g.sm.SetPinsConsecutive(g.pin, 1, false)
	g.on = false
}

func machinePin(pin uint8) machine.Pin {
	return machine.Pin(pin)
}

// Frequency returns the configured frequency in Hz
func (g *ToneGenerator) Frequency() uint16 {
	return g.hz
}
