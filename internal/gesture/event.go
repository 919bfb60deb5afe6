package gesture

import "fmt"

// EventKind classifies a pointer event delivered by the host surface.
type EventKind int

const (
	// Down is the first pointer touching the surface.
	Down EventKind = iota
	// PointerDown is an additional pointer touching while others are down.
	PointerDown
	// Move reports a new position for a pointer that is down.
	Move
	// Up is the last pointer leaving the surface.
	Up
	// PointerUp is a pointer leaving while others remain down.
	PointerUp
	// Cancel is a system-level interruption of the gesture.
	Cancel
)

var eventKindNames = []string{"down", "pointer-down", "move", "up", "pointer-up", "cancel"}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventKindNames[k]
}

// Event is one pointer event. PointerCount is the number of pointers down
// including the one this event is about.
type Event struct {
	Kind         EventKind
	PointerID    int
	PointerCount int
	X, Y         float64
}

// State is the machine's position in a gesture session.
type State int

const (
	Idle State = iota
	Tracking
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Tracking:
		return "tracking"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}
