package telemetry

import (
	"io"

	"superloop/protocol"
)

// Link drains buffered frames to the transmit path once per pass.
// Register it after the Reporter so a frame goes out in the pass that made it.
type Link struct {
	buf *protocol.ScratchOutput
	w   io.Writer

	state   smState
	written uint32
	errors  uint32
}

// NewLink creates a transmit task flushing buf into w
func NewLink(buf *protocol.ScratchOutput, w io.Writer) *Link {
	return &Link{buf: buf, w: w, state: stateError}
}

// Name returns the task name
func (l *Link) Name() string {
	return "link"
}

// Initialize checks both ends are present
func (l *Link) Initialize() {
	if l.buf == nil || l.w == nil {
		l.state = stateError
		return
	}
	l.buf.Reset()
	l.state = stateIdle
}

// RunActiveState runs one iteration of the current state
func (l *Link) RunActiveState() {
	switch l.state {
	case stateIdle:
		l.flush()
	case stateError:
	}
}

// Faulted reports whether the link is shut down
func (l *Link) Faulted() bool {
	return l.state == stateError
}

// flush writes whatever is buffered. A failed write loses those bytes;
// the monitor sees the gap in the sequence numbers.
func (l *Link) flush() {
	data := l.buf.Result()
	if len(data) == 0 {
		return
	}
	n, err := l.w.Write(data)
	l.written += uint32(n)
	if err != nil {
		l.errors++
	}
	l.buf.Reset()
}

// Written returns the number of bytes handed to the writer
func (l *Link) Written() uint32 {
	return l.written
}

// WriteErrors returns the number of failed writes
func (l *Link) WriteErrors() uint32 {
	return l.errors
}
