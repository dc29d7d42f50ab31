// Package trace recognizes transmit-queue events in ns-3 ASCII traces.
//
// An ASCII trace line starts with a one character sigil, the simulation
// time in seconds and the trace source path, e.g.
//
//	+ 2.000123 /NodeList/0/DeviceList/1/$ns3::PointToPointNetDevice/TxQueue/Enqueue ns3::PppHeader (...)
//
// Only "+" lines mentioning TxQueue/Enqueue and "-" lines mentioning
// TxQueue/Dequeue are recognized. Everything else the simulator writes
// (receive events, drops, other queues) produces no event.
package trace

import "strings"

// Kind distinguishes the two recognized event types.
type Kind int

// Recognized event kinds.
const (
	Enqueue Kind = iota + 1
	Dequeue
)

func (k Kind) String() string {
	switch k {
	case Enqueue:
		return "enqueue"
	case Dequeue:
		return "dequeue"
	}
	return "unknown"
}

// Event is a single arrival or departure at the transmit queue.
type Event struct {
	Kind Kind
	Time float64
}

// Source path fragments identifying queue events.
const (
	EnqueueToken = "TxQueue/Enqueue"
	DequeueToken = "TxQueue/Dequeue"
)

// Match classifies a single line. It returns ok == false for any line
// that is not a recognized queue event. Match keeps no state between calls.
func Match(line string) (ev Event, ok bool) {
	if len(line) < 2 || line[1] != ' ' {
		return Event{}, false
	}
	var kind Kind
	var token string
	switch line[0] {
	case '+':
		kind, token = Enqueue, EnqueueToken
	case '-':
		kind, token = Dequeue, DequeueToken
	default:
		return Event{}, false
	}
	rest := line[2:]
	end := strings.IndexByte(rest, ' ')
	if end < 0 {
		// The timestamp must be followed by the rest of the record.
		return Event{}, false
	}
	t, ok := parseTimestamp(rest[:end])
	if !ok {
		return Event{}, false
	}
	if !strings.Contains(rest[end+1:], token) {
		return Event{}, false
	}
	return Event{Kind: kind, Time: t}, true
}

// MatchAll returns the events recognized in lines, in input order.
func MatchAll(lines []string) []Event {
	var events []Event
	for _, line := range lines {
		if ev, ok := Match(line); ok {
			events = append(events, ev)
		}
	}
	return events
}
