package melody

import (
	"testing"

	"superloop/core"
	"superloop/hal/sim"
)

func TestInitializeValidTables(t *testing.T) {
	p := NewPlayer(sim.NewRecorder(), DefaultConfig())
	p.Initialize()

	if p.Faulted() {
		t.Fatal("Default tables should initialize to idle")
	}
	if p.Index() != 0 || p.Phase() != PhaseRest || p.Countdown() != 0 {
		t.Errorf("Expected index 0 / rest / countdown 0, got %d / %d / %d", p.Index(), p.Phase(), p.Countdown())
	}
}

func TestInitializeMismatchedTables(t *testing.T) {
	testCases := []struct {
		name string
		cfg  Config
	}{
		{"short durations", Config{Tones: []uint16{A5, B5}, Durations: []uint16{QN}, Rests: []uint16{RT, RT}}},
		{"short rests", Config{Tones: []uint16{A5, B5}, Durations: []uint16{QN, QN}, Rests: []uint16{RT}}},
		{"long tones", Config{Tones: []uint16{A5, B5, C6}, Durations: []uint16{QN, QN}, Rests: []uint16{RT, RT}}},
		{"empty", Config{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := sim.NewRecorder()
			p := NewPlayer(rec, tc.cfg)
			p.Initialize()

			if !p.Faulted() {
				t.Fatal("Expected player to be faulted")
			}

			for i := 0; i < 100; i++ {
				p.RunActiveState()
			}

			if n := len(rec.Events()); n != 0 {
				t.Errorf("Faulted player made %d effector calls", n)
			}
			if p.Index() != 0 || p.Countdown() != 0 || p.Phase() != PhaseRest {
				t.Error("Faulted player mutated its state")
			}
			if !p.Faulted() {
				t.Error("Faulted player left the error state")
			}
		})
	}
}

func TestPlayerSequence(t *testing.T) {
	rec := sim.NewRecorder()
	p := NewPlayer(rec, Config{
		Channel:   core.Buzzer1,
		Tones:     []uint16{A4, NoTone},
		Durations: []uint16{3, 2},
		Rests:     []uint16{1, 1},
	})
	p.Initialize()

	on := []sim.Event{
		{Op: sim.OpToneFrequency, Channel: 0, Value: A4},
		{Op: sim.OpToneOn, Channel: 0},
	}
	off := []sim.Event{{Op: sim.OpToneOff, Channel: 0}}

	// Expected effector calls for each tick, starting at tick 1
	expected := [][]sim.Event{
		on,  // 1: entry 1 starts, sounding for 3
		nil, // 2
		nil, // 3
		nil, // 4
		off, // 5: rest for 1, advance to entry 2
		nil, // 6
		off, // 7: entry 2 is silent, sounding phase for 2
		nil, // 8
		nil, // 9
		off, // 10: rest for 1, wrap to entry 1
		nil, // 11
		on,  // 12: entry 1 again
	}
	expectedIndex := []int{0, 0, 0, 0, 1, 1, 1, 1, 1, 0, 0, 0}

	for tick, want := range expected {
		rec.Reset()
		p.RunActiveState()
		got := rec.Events()

		if len(got) != len(want) {
			t.Fatalf("Tick %d: expected %v, got %v", tick+1, want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Tick %d call %d: expected %v, got %v", tick+1, i, want[i], got[i])
			}
		}
		if p.Index() != expectedIndex[tick] {
			t.Errorf("Tick %d: expected index %d, got %d", tick+1, expectedIndex[tick], p.Index())
		}
	}
}

func TestPlayerHeldNoteNoGap(t *testing.T) {
	rec := sim.NewRecorder()
	p := NewPlayer(rec, Config{
		Channel:   core.Buzzer2,
		Tones:     []uint16{C5, D5},
		Durations: []uint16{2, 2},
		Rests:     []uint16{HT, HT},
	})
	p.Initialize()

	for i := 0; i < 20; i++ {
		p.RunActiveState()
	}

	for _, e := range rec.Events() {
		if e.Op == sim.OpToneOff {
			t.Fatalf("Held notes should never switch the buzzer off, got %v", e)
		}
		if e.Channel != uint8(core.Buzzer2) {
			t.Errorf("Expected calls on buzzer 2, got %v", e)
		}
	}

	on, hz := rec.Tone(core.Buzzer2)
	if !on || (hz != C5 && hz != D5) {
		t.Errorf("Expected buzzer 2 sounding C5 or D5, got on=%v hz=%d", on, hz)
	}
}

func TestPlayerLoopsDefaultMelody(t *testing.T) {
	cfg := DefaultConfig()
	p := NewPlayer(sim.NewStateRecorder(), cfg)
	p.Initialize()

	// One full pass: each note costs duration+1 and rest+1 ticks
	total := 0
	for i := range cfg.Tones {
		total += int(cfg.Durations[i]) + 1 + int(cfg.Rests[i]) + 1
	}

	for i := 0; i < total; i++ {
		p.RunActiveState()
	}

	if p.Index() != 0 || p.Phase() != PhaseRest || p.Countdown() != 0 {
		t.Errorf("Expected melody back at its start, got index %d phase %d countdown %d",
			p.Index(), p.Phase(), p.Countdown())
	}
}

func TestLookupNames(t *testing.T) {
	if hz, ok := LookupNote("A5S"); !ok || hz != A5S {
		t.Errorf("LookupNote(A5S) = %d, %v", hz, ok)
	}
	if hz, ok := LookupNote("NO"); !ok || hz != NoTone {
		t.Errorf("LookupNote(NO) = %d, %v", hz, ok)
	}
	if _, ok := LookupNote("H9"); ok {
		t.Error("LookupNote should reject unknown names")
	}
	if ms, ok := LookupLength("QN"); !ok || ms != QN {
		t.Errorf("LookupLength(QN) = %d, %v", ms, ok)
	}
}
