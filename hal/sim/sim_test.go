package sim

import (
	"testing"

	"superloop/core"
)

func TestRecorderState(t *testing.T) {
	r := NewRecorder()

	r.SetToneFrequency(core.Buzzer1, 440)
	r.ToneOn(core.Buzzer1)
	if on, hz := r.Tone(core.Buzzer1); !on || hz != 440 {
		t.Errorf("Tone() = %v, %d; want true, 440", on, hz)
	}
	r.ToneOff(core.Buzzer1)
	if on, _ := r.Tone(core.Buzzer1); on {
		t.Error("Expected buzzer off")
	}

	r.SetLEDLevel(core.LEDLCDBlue, 35)
	if got := r.LEDLevel(core.LEDLCDBlue); got != 35 {
		t.Errorf("LEDLevel() = %d, want 35", got)
	}
	r.LEDOn(core.LEDRed)
	if got := r.LEDLevel(core.LEDRed); got != core.LEDLevelMax {
		t.Errorf("LEDOn level = %d, want %d", got, core.LEDLevelMax)
	}

	want := []string{
		"tone0 freq=440",
		"tone0 on",
		"tone0 off",
		"lcd_blue level=35",
		"red on",
	}
	events := r.Events()
	if len(events) != len(want) {
		t.Fatalf("Expected %d events, got %d", len(want), len(events))
	}
	for i, e := range events {
		if e.String() != want[i] {
			t.Errorf("event %d = %q, want %q", i, e.String(), want[i])
		}
	}

	r.Reset()
	if len(r.Events()) != 0 {
		t.Error("Reset should clear the log")
	}
}

func TestStateRecorderKeepsNoLog(t *testing.T) {
	r := NewStateRecorder()
	var seen int
	r.OnEvent(func(Event) { seen++ })

	r.LEDOff(core.LEDWhite)
	r.ToneOff(core.Buzzer2)

	if len(r.Events()) != 0 {
		t.Error("state recorder should not keep events")
	}
	if seen != 2 {
		t.Errorf("OnEvent saw %d calls, want 2", seen)
	}
}
