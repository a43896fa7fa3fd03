package monitor

import (
	"bytes"
	"context"
	"testing"

	"superloop/protocol"
)

func statusStream(t *testing.T, statuses ...protocol.Status) []byte {
	t.Helper()
	var stream []byte
	for _, st := range statuses {
		var err error
		stream, err = protocol.AppendStatusFrame(stream, st)
		if err != nil {
			t.Fatalf("AppendStatusFrame: %v", err)
		}
	}
	return stream
}

func TestMonitorFeed(t *testing.T) {
	stream := statusStream(t,
		protocol.Status{Seq: 0, Millis: 1000, Seconds: 1, Passes: 1000, TaskCount: 2},
		protocol.Status{Seq: 1, Millis: 2000, Seconds: 2, Passes: 2000, TaskCount: 2},
	)

	m := New(bytes.NewReader(nil), nil)
	var got []protocol.Status
	m.OnStatus(func(st protocol.Status) { got = append(got, st) })

	if n := m.Feed(stream); n != 2 {
		t.Fatalf("Feed() = %d, want 2", n)
	}
	if len(got) != 2 || got[1].Millis != 2000 {
		t.Fatalf("callback statuses = %+v", got)
	}
	last, ok := m.Last()
	if !ok || last.Passes != 2000 {
		t.Errorf("Last() = %+v, %v", last, ok)
	}
	if m.Lost() != 0 {
		t.Errorf("Lost() = %d, want 0", m.Lost())
	}
}

func TestMonitorSplitFeed(t *testing.T) {
	stream := statusStream(t, protocol.Status{Millis: 500, TaskCount: 1})

	m := New(bytes.NewReader(nil), nil)
	if n := m.Feed(stream[:4]); n != 0 {
		t.Fatalf("partial Feed() = %d, want 0", n)
	}
	if n := m.Feed(stream[4:]); n != 1 {
		t.Fatalf("remaining Feed() = %d, want 1", n)
	}
}

func TestMonitorSequenceGap(t *testing.T) {
	stream := statusStream(t,
		protocol.Status{Seq: 14, Millis: 1},
		protocol.Status{Seq: 2, Millis: 2},
	)

	m := New(bytes.NewReader(nil), nil)
	m.Feed(stream)

	// 15, 0, 1 are missing
	if m.Lost() != 3 {
		t.Errorf("Lost() = %d, want 3", m.Lost())
	}
}

func TestMonitorCorruptFrame(t *testing.T) {
	stream := statusStream(t,
		protocol.Status{Seq: 0, Millis: 1},
		protocol.Status{Seq: 1, Millis: 2},
	)
	// Flip a payload bit in the first frame
	stream[4] ^= 0x01

	m := New(bytes.NewReader(nil), nil)
	if n := m.Feed(stream); n != 1 {
		t.Fatalf("Feed() = %d, want 1", n)
	}
	if m.CorruptFrames() == 0 {
		t.Error("corrupt frame not counted")
	}
	if last, _ := m.Last(); last.Millis != 2 {
		t.Errorf("Last().Millis = %d, want 2", last.Millis)
	}
}

func TestMonitorRun(t *testing.T) {
	stream := statusStream(t,
		protocol.Status{Seq: 0, Millis: 1000, TaskCount: 3, FaultMask: 0x4},
		protocol.Status{Seq: 1, Millis: 2000, TaskCount: 3, FaultMask: 0x4},
		protocol.Status{Seq: 2, Millis: 3000, TaskCount: 3, FaultMask: 0x4},
	)

	m := New(bytes.NewReader(stream), nil)
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if m.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", m.Frames())
	}
	last, _ := m.Last()
	if !last.Faulted(2) || last.Faulted(0) {
		t.Errorf("fault mask = %#x", last.FaultMask)
	}
}

func TestMonitorRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := New(bytes.NewReader([]byte{0x7E}), nil)
	if err := m.Run(ctx); err != context.Canceled {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

func TestMonitorAsWriter(t *testing.T) {
	stream := statusStream(t, protocol.Status{Seq: 5, Millis: 42})

	m := New(nil, nil)
	n, err := m.Write(stream)
	if err != nil || n != len(stream) {
		t.Fatalf("Write() = %d, %v", n, err)
	}
	if last, ok := m.Last(); !ok || last.Seq != 5 {
		t.Errorf("Last() = %+v, %v", last, ok)
	}
}

func TestMonitorRestartDetection(t *testing.T) {
	tests := []struct {
		name     string
		before   protocol.Status
		after    protocol.Status
		restarts uint32
	}{
		{
			name:     "reboot within first second",
			before:   protocol.Status{Seq: 5, Millis: 900, Seconds: 0},
			after:    protocol.Status{Seq: 0, Millis: 300, Seconds: 0},
			restarts: 1,
		},
		{
			name:     "reboot after uptime",
			before:   protocol.Status{Seq: 9, Millis: 60000, Seconds: 60},
			after:    protocol.Status{Seq: 0, Millis: 1000, Seconds: 1},
			restarts: 1,
		},
		{
			name:     "millis wraparound",
			before:   protocol.Status{Seq: 3, Millis: 0xFFFFFF00, Seconds: 4294967},
			after:    protocol.Status{Seq: 4, Millis: 744, Seconds: 4294968},
			restarts: 0,
		},
		{
			name:     "normal progress",
			before:   protocol.Status{Seq: 1, Millis: 1000, Seconds: 1},
			after:    protocol.Status{Seq: 2, Millis: 2000, Seconds: 2},
			restarts: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(nil, nil)
			m.Feed(statusStream(t, tt.before, tt.after))

			if m.Restarts() != tt.restarts {
				t.Errorf("Restarts() = %d, want %d", m.Restarts(), tt.restarts)
			}
			// A reboot restarts the sequence; that is not frame loss
			if m.Lost() != 0 {
				t.Errorf("Lost() = %d, want 0", m.Lost())
			}
		})
	}
}
