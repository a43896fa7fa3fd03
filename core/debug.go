package core

import "strconv"

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TimingEvent captures a scheduling event for post-mortem analysis
type TimingEvent struct {
	EventType uint8  // Event type code
	Task      uint8  // Task index in dispatch order
	Clock     uint32 // Millisecond counter at event
	Value1    uint32 // Context-dependent value
	Value2    uint32 // Context-dependent value
}

// Event type codes
const (
	EvtPassOverrun = 1 // Pass outlasted a tick (v1=elapsed ms, v2=pass count)
	EvtWake        = 2 // Loop woke from the power gate
	EvtTaskFault   = 3 // Task entered its error state
	EvtReport      = 4 // Telemetry frame emitted (v1=frame length)
)

const (
	TimingRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Timing capture ring buffer (non-blocking, for post-mortem)
	timingRing     [TimingRingSize]TimingEvent
	timingRingHead uint8        // Next write position
	timingEnabled  bool  = true // Always capture timing events

	// Async debug output channel and its worker's exit signal
	debugChan chan string
	debugDone chan struct{}
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
// Set it before InitAsyncDebug; the worker keeps the writer it started with.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// InitAsyncDebug starts the async debug output goroutine
// Call this from main() after SetDebugWriter
func InitAsyncDebug() {
	if debugChan != nil {
		return
	}
	debugChan = make(chan string, 16)
	debugDone = make(chan struct{})
	go debugOutputWorker(debugChan, debugDone, debugPrintln)
}

// StopAsyncDebug writes out every queued message and returns to
// synchronous output. Call from the goroutine that uses DebugAsync.
func StopAsyncDebug() {
	if debugChan == nil {
		return
	}
	close(debugChan)
	<-debugDone
	debugChan = nil
}

func debugOutputWorker(msgs <-chan string, done chan<- struct{}, write DebugWriter) {
	defer close(done)
	for msg := range msgs {
		if write != nil {
			write(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer.
// Blocks while writing; never call from the tick handler.
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output (non-blocking)
// Drops the message if the channel is full. Without InitAsyncDebug it
// writes synchronously like DebugPrintln.
func DebugAsync(msg string) {
	if !debugEnabled {
		return
	}
	if debugChan == nil {
		DebugPrintln(msg)
		return
	}
	select {
	case debugChan <- msg:
	default:
	}
}

// RecordTiming captures an event in the ring buffer (non-blocking)
func RecordTiming(eventType, task uint8, clock, value1, value2 uint32) {
	if !timingEnabled {
		return
	}
	idx := timingRingHead
	timingRing[idx] = TimingEvent{
		EventType: eventType,
		Task:      task,
		Clock:     clock,
		Value1:    value1,
		Value2:    value2,
	}
	timingRingHead = (idx + 1) % TimingRingSize
}

// TimingEvents returns the recorded events, oldest first
func TimingEvents() []TimingEvent {
	events := make([]TimingEvent, 0, TimingRingSize)
	start := timingRingHead
	for i := uint8(0); i < TimingRingSize; i++ {
		evt := timingRing[(start+i)%TimingRingSize]
		if evt.EventType == 0 {
			continue
		}
		events = append(events, evt)
	}
	return events
}

// DumpTimingRing outputs the timing ring buffer (call on shutdown/error)
func DumpTimingRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[TIMING] === Timing Ring Dump ===")
	for _, evt := range TimingEvents() {
		var name string
		switch evt.EventType {
		case EvtPassOverrun:
			name = "OVERRUN!"
		case EvtWake:
			name = "WAKE"
		case EvtTaskFault:
			name = "TASK_FAULT"
		case EvtReport:
			name = "REPORT"
		default:
			name = "UNKNOWN"
		}

		debugPrintln("[TIMING] " + name +
			" task=" + strconv.Itoa(int(evt.Task)) +
			" clock=" + strconv.FormatUint(uint64(evt.Clock), 10) +
			" v1=" + strconv.FormatUint(uint64(evt.Value1), 10) +
			" v2=" + strconv.FormatUint(uint64(evt.Value2), 10))
	}
	debugPrintln("[TIMING] === End Dump ===")
}

// ClearTimingRing clears the timing buffer
func ClearTimingRing() {
	for i := range timingRing {
		timingRing[i] = TimingEvent{}
	}
	timingRingHead = 0
}
