package timer

import "time"

// EventType classifies session lifecycle events.
type EventType int

const (
	EventStarted EventType = iota
	EventPaused
	EventResumed
	EventCompleted
	EventCancelled
)

// String returns a human-readable event name.
func (t EventType) String() string {
	switch t {
	case EventStarted:
		return "started"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	case EventCompleted:
		return "completed"
	case EventCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Event carries a session snapshot to observers. Published after the
// transition it describes has been applied.
type Event struct {
	Type    EventType
	Session Session
	At      time.Time
}
