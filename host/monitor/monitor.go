// Package monitor decodes the board's status frames from a serial stream.
package monitor

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"superloop/protocol"
)

// Monitor reads status frames and tracks link and task health
type Monitor struct {
	r       io.Reader
	log     *slog.Logger
	rx      *protocol.FifoBuffer
	decoder *protocol.Decoder

	last     protocol.Status
	haveLast bool
	frames   uint32
	lost     uint32
	restarts uint32

	onStatus func(protocol.Status)
}

// New creates a monitor reading from r. A nil logger discards output.
func New(r io.Reader, log *slog.Logger) *Monitor {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Monitor{
		r:       r,
		log:     log,
		rx:      protocol.NewFifoBuffer(1024),
		decoder: protocol.NewDecoder(),
	}
}

// OnStatus sets a callback for every decoded status
func (m *Monitor) OnStatus(fn func(protocol.Status)) {
	m.onStatus = fn
}

// Feed decodes the status frames in data and returns how many were found
func (m *Monitor) Feed(data []byte) int {
	frames := 0
	for len(data) > 0 {
		n := m.rx.Write(data)
		data = data[n:]
		frames += m.decoder.Decode(m.rx, m.handle)

		if n == 0 && m.rx.Free() == 0 {
			// A full buffer with nothing decodable is garbage
			m.rx.Reset()
		}
	}
	return frames
}

// Write feeds p to the decoder so a Monitor can sit directly behind a
// transmit path. It never fails.
func (m *Monitor) Write(p []byte) (int, error) {
	m.Feed(p)
	return len(p), nil
}

// Run reads until ctx is done or the stream ends.
// With a serial read timeout, cancellation is noticed within one timeout.
func (m *Monitor) Run(ctx context.Context) error {
	buf := make([]byte, 256)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := m.r.Read(buf)
		if n > 0 {
			m.Feed(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *Monitor) handle(st protocol.Status) {
	m.frames++

	if m.haveLast {
		// Millis only wraps after ~49 days, when Seconds has moved on by
		// millions; a drop without Seconds advancing is a reboot.
		restarted := st.Millis < m.last.Millis && st.Seconds <= m.last.Seconds

		switch {
		case restarted:
			m.restarts++
			m.log.Warn("board restarted", "uptime_ms", st.Millis, "seq", st.Seq)
		case st.Seq != (m.last.Seq+1)&protocol.MessageSeqMask:
			expected := (m.last.Seq + 1) & protocol.MessageSeqMask
			gap := uint32((st.Seq - expected) & protocol.MessageSeqMask)
			m.lost += gap
			m.log.Warn("status frames lost", "expected_seq", expected, "seq", st.Seq, "lost", gap)
		}

		if !restarted && st.Overruns > m.last.Overruns {
			m.log.Warn("scheduling passes overran the tick", "new", st.Overruns-m.last.Overruns)
		}
	}

	for i := 0; i < int(st.TaskCount) && i < protocol.MaxStatusTasks; i++ {
		if st.Faulted(i) && (!m.haveLast || !m.last.Faulted(i)) {
			m.log.Error("task in error state", "task", i)
		}
	}

	m.log.Info("status",
		"uptime_ms", st.Millis,
		"uptime_s", st.Seconds,
		"passes", st.Passes,
		"tasks", st.TaskCount,
		"fault_mask", st.FaultMask,
	)

	m.last = st
	m.haveLast = true

	if m.onStatus != nil {
		m.onStatus(st)
	}
}

// Last returns the most recent status
func (m *Monitor) Last() (protocol.Status, bool) {
	return m.last, m.haveLast
}

// Frames returns the number of decoded frames
func (m *Monitor) Frames() uint32 {
	return m.frames
}

// Lost returns the number of frames missing from the sequence
func (m *Monitor) Lost() uint32 {
	return m.lost
}

// Restarts returns how many board reboots were seen
func (m *Monitor) Restarts() uint32 {
	return m.restarts
}

// CorruptFrames returns the number of frames rejected by the decoder
func (m *Monitor) CorruptFrames() uint32 {
	return m.decoder.Errors()
}
