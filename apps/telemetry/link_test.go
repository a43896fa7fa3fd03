package telemetry

import (
	"bytes"
	"errors"
	"testing"

	"superloop/core"
	"superloop/protocol"
)

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("tx fault") }

func TestLinkFlushesReports(t *testing.T) {
	var tb core.Timebase
	src := &stubSource{tasks: []core.Task{&stubTask{name: "a"}}}
	out := protocol.NewScratchOutput()
	var wire bytes.Buffer

	r := NewReporter(&tb, src, out, Config{Interval: 5})
	l := NewLink(out, &wire)
	r.Initialize()
	l.Initialize()

	for i := 0; i < 12; i++ {
		tb.Tick()
		r.RunActiveState()
		l.RunActiveState()
		if len(out.Result()) != 0 {
			t.Fatalf("tick %d: output not drained", i)
		}
	}

	fifo := protocol.NewFifoBuffer(protocol.MessageMax + 1)
	fifo.Write(wire.Bytes())
	frames := protocol.NewDecoder().Decode(fifo, nil)
	if frames != 2 {
		t.Errorf("Expected 2 frames on the wire, got %d", frames)
	}
	if int(l.Written()) != wire.Len() {
		t.Errorf("Written() = %d, wire has %d bytes", l.Written(), wire.Len())
	}
}

func TestLinkWriteError(t *testing.T) {
	out := protocol.NewScratchOutput()
	l := NewLink(out, failWriter{})
	l.Initialize()

	out.Output([]byte{1, 2, 3})
	l.RunActiveState()

	if l.WriteErrors() != 1 {
		t.Errorf("WriteErrors() = %d, want 1", l.WriteErrors())
	}
	if len(out.Result()) != 0 {
		t.Error("failed write should still drop the buffered bytes")
	}
	if l.Faulted() {
		t.Error("write errors should not shut the link down")
	}
}

func TestLinkMissingWriter(t *testing.T) {
	l := NewLink(protocol.NewScratchOutput(), nil)
	l.Initialize()
	if !l.Faulted() {
		t.Error("Expected link without writer to fault")
	}
}
