package core

// EventType identifies something that happened during a tick.
type EventType uint8

const (
	EventSegmentSpawned EventType = iota
	EventSegmentDespawned
	EventPitPlaced
	EventPoolExhausted
	EventPlayerDamaged
	EventPlayerRecovered
	EventPlayerDied
	EventLevelComplete
	EventConfigError
)

// String returns a human-readable name for the event type.
func (t EventType) String() string {
	switch t {
	case EventSegmentSpawned:
		return "segment_spawned"
	case EventSegmentDespawned:
		return "segment_despawned"
	case EventPitPlaced:
		return "pit_placed"
	case EventPoolExhausted:
		return "pool_exhausted"
	case EventPlayerDamaged:
		return "player_damaged"
	case EventPlayerRecovered:
		return "player_recovered"
	case EventPlayerDied:
		return "player_died"
	case EventLevelComplete:
		return "level_complete"
	case EventConfigError:
		return "config_error"
	default:
		return "unknown"
	}
}

// Event is a single tick event reported to the host.
type Event struct {
	Type    EventType
	Segment int     // Pool slot involved, -1 if none
	Pos     Vec2    // World position relevant to the event
	Cause   string  // Damage/recovery cause ("offscreen", "jump", "slide", "pit")
	Value   float64 // Event-specific scalar (pit width, remaining life...)
}

// EventQueue is a FIFO of events drained once per tick.
type EventQueue struct {
	items []Event
}

// Push appends an event.
func (q *EventQueue) Push(evt Event) {
	q.items = append(q.items, evt)
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int { return len(q.items) }

// Drain returns all pending events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
