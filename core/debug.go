package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// BlockEvent is one entry of the post-mortem event ring.
type BlockEvent struct {
	Kind  uint8  // Evt* code
	Block uint8  // index of the block in its model
	Tick  uint32 // system ticks at the event
	Value uint32 // context-dependent value
}

// Event kinds
const (
	EvtInit    = 1 // block initialised
	EvtEnd     = 2 // block terminated
	EvtError   = 3 // device returned an error, Value is the flag
	EvtOverrun = 4 // model step started after the next period was due, Value is the lag in ticks
	EvtStart   = 5 // model timer armed, Value is the period in ticks
	EvtStop    = 6 // model timer cancelled
)

const (
	EventRingSize = 32
)

var (
	// debugPrintln is the platform output; a no-op until SetDebugWriter
	debugPrintln DebugWriter = func(s string) {}

	debugEnabled bool = false

	eventRing     [EventRingSize]BlockEvent
	eventRingHead uint8
	eventsEnabled bool = true

	debugChan chan string
)

// SetDebugWriter redirects debug output to a UART, USB CDC or host log.
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

// InitAsyncDebug starts the async debug output goroutine.
// Call it from main() after SetDebugWriter.
func InitAsyncDebug() {
	debugChan = make(chan string, 16)
	go debugOutputWorker()
}

func debugOutputWorker() {
	for msg := range debugChan {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message when debug output is enabled.
// It blocks on the writer; use DebugAsync from the sample-rate path.
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a message for the async worker, dropping it if the
// queue is full.
func DebugAsync(msg string) {
	if debugChan != nil {
		select {
		case debugChan <- msg:
		default:
		}
	}
}

// RecordEvent stores an event in the ring. Safe to call from the model
// timer.
func RecordEvent(kind, block uint8, value uint32) {
	if !eventsEnabled {
		return
	}
	idx := eventRingHead
	eventRing[idx] = BlockEvent{
		Kind:  kind,
		Block: block,
		Tick:  GetTime(),
		Value: value,
	}
	eventRingHead = (idx + 1) % EventRingSize
}

// Events returns the recorded events, oldest first.
func Events() []BlockEvent {
	out := make([]BlockEvent, 0, EventRingSize)
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(start+i)%EventRingSize]
		if evt.Kind == 0 {
			continue
		}
		out = append(out, evt)
	}
	return out
}

func eventName(kind uint8) string {
	switch kind {
	case EvtInit:
		return "INIT"
	case EvtEnd:
		return "END"
	case EvtError:
		return "ERROR!"
	case EvtOverrun:
		return "OVERRUN!"
	case EvtStart:
		return "START"
	case EvtStop:
		return "STOP"
	default:
		return "UNKNOWN"
	}
}

// DumpEvents writes the event ring to the debug writer, oldest first.
func DumpEvents() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[EVENTS] === Event Ring Dump ===")
	for _, evt := range Events() {
		debugPrintln("[EVENTS] " + eventName(evt.Kind) +
			" block=" + itoa(int(evt.Block)) +
			" tick=" + utoa(evt.Tick) +
			" v=" + utoa(evt.Value))
	}
	debugPrintln("[EVENTS] === End Dump ===")
}

// ClearEvents empties the event ring
func ClearEvents() {
	for i := range eventRing {
		eventRing[i] = BlockEvent{}
	}
	eventRingHead = 0
}
