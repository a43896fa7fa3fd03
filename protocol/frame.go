package protocol

import "errors"

var (
	ErrFrameTooLarge = errors.New("frame exceeds maximum length")
	ErrOutputFull    = errors.New("output buffer full, frame dropped")
	ErrUnknownMsg    = errors.New("unknown message id")
)

// MaxStatusTasks is the number of tasks a fault mask can describe
const MaxStatusTasks = 32

// Status is one scheduler health report
type Status struct {
	Seq       uint8  // Rolling frame counter (low nibble)
	Millis    uint32 // Timebase millisecond counter
	Seconds   uint32 // Timebase second counter
	Passes    uint32 // Completed scheduling passes
	Overruns  uint32 // Passes that outlasted a tick
	TaskCount uint8  // Registered tasks
	FaultMask uint32 // Bit i set when task i is in its error state
}

// Faulted reports whether task i was in its error state
func (s Status) Faulted(i int) bool {
	if i < 0 || i >= MaxStatusTasks {
		return false
	}
	return s.FaultMask&(1<<uint(i)) != 0
}

// AppendStatusFrame appends a complete status frame to dst
func AppendStatusFrame(dst []byte, st Status) ([]byte, error) {
	start := len(dst)
	dst = append(dst, 0, MessageDest|st.Seq&MessageSeqMask, MsgStatus)
	dst = AppendVLQUint(dst, st.Millis)
	dst = AppendVLQUint(dst, st.Seconds)
	dst = AppendVLQUint(dst, st.Passes)
	dst = AppendVLQUint(dst, st.Overruns)
	dst = AppendVLQUint(dst, uint32(st.TaskCount))
	dst = AppendVLQUint(dst, st.FaultMask)

	length := len(dst) - start + MessageTrailerSize
	if length > MessageLengthMax {
		return dst[:start], ErrFrameTooLarge
	}
	dst[start+MessagePositionLen] = byte(length)
	dst = AppendCRC16(dst, dst[start:])
	return append(dst, MessageValueSync), nil
}

// FrameWriter encodes status frames into a non-blocking sink
type FrameWriter struct {
	out     OutputBuffer
	seq     uint8
	scratch [MessageLengthMax]byte
	dropped uint32
}

// NewFrameWriter creates a FrameWriter over out
func NewFrameWriter(out OutputBuffer) *FrameWriter {
	return &FrameWriter{out: out}
}

// WriteStatus encodes st with the next sequence number.
// The frame is dropped whole, never truncated, if out lacks room.
func (w *FrameWriter) WriteStatus(st Status) (int, error) {
	st.Seq = w.seq
	frame, err := AppendStatusFrame(w.scratch[:0], st)
	if err != nil {
		return 0, err
	}
	if w.out.Free() < len(frame) {
		w.dropped++
		return 0, ErrOutputFull
	}
	w.out.Output(frame)
	w.seq = (w.seq + 1) & MessageSeqMask
	return len(frame), nil
}

// Dropped returns how many frames were discarded for lack of room
func (w *FrameWriter) Dropped() uint32 {
	return w.dropped
}

// Decoder extracts status frames from a byte stream, resynchronizing on
// the sync byte after corruption.
type Decoder struct {
	synchronized bool
	errors       uint32
}

// NewDecoder creates a Decoder; it starts synchronized
func NewDecoder() *Decoder {
	return &Decoder{synchronized: true}
}

// Errors returns how many corrupt frames were discarded
func (d *Decoder) Errors() uint32 {
	return d.errors
}

// Decode consumes complete frames from in and calls fn for each status.
// A trailing partial frame stays in in for the next call.
func (d *Decoder) Decode(in InputBuffer, fn func(Status)) int {
	data := in.Data()
	total := len(data)
	frames := 0

	for len(data) > 0 {
		if !d.synchronized {
			// Skip garbage up to and including the next sync byte
			i := 0
			for i < len(data) && data[i] != MessageValueSync {
				i++
			}
			if i == len(data) {
				data = nil
				break
			}
			data = data[i+1:]
			d.synchronized = true
			continue
		}

		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}
		if len(data) < MessageLengthMin {
			break
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax ||
			data[MessagePositionSeq]&^MessageSeqMask != MessageDest {
			d.resync()
			continue
		}
		if len(data) < msgLen {
			break
		}
		if data[msgLen-MessageTrailerSync] != MessageValueSync {
			d.resync()
			continue
		}

		frameCRC := uint16(data[msgLen-MessageTrailerCRC])<<8 | uint16(data[msgLen-MessageTrailerCRC+1])
		if frameCRC != CRC16(data[:msgLen-MessageTrailerSize]) {
			d.resync()
			continue
		}

		seq := data[MessagePositionSeq] & MessageSeqMask
		payload := data[MessageHeaderSize : msgLen-MessageTrailerSize]
		data = data[msgLen:]

		st, err := decodeStatus(payload)
		if err != nil {
			d.errors++
			continue
		}
		st.Seq = seq
		frames++
		if fn != nil {
			fn(st)
		}
	}

	in.Pop(total - len(data))
	return frames
}

func (d *Decoder) resync() {
	d.errors++
	d.synchronized = false
}

func decodeStatus(payload []byte) (Status, error) {
	var st Status
	if len(payload) == 0 || payload[0] != MsgStatus {
		return st, ErrUnknownMsg
	}
	payload = payload[1:]

	fields := []*uint32{&st.Millis, &st.Seconds, &st.Passes, &st.Overruns}
	for _, f := range fields {
		v, err := DecodeVLQUint(&payload)
		if err != nil {
			return st, err
		}
		*f = v
	}

	count, err := DecodeVLQUint(&payload)
	if err != nil {
		return st, err
	}
	st.TaskCount = uint8(count)

	if st.FaultMask, err = DecodeVLQUint(&payload); err != nil {
		return st, err
	}
	return st, nil
}
