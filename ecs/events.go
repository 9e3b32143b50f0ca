package ecs

// EventType names an event kind.
type EventType string

const (
	// EventActorDied disables the actor's motion controller. Data is an
	// ActorDied.
	EventActorDied EventType = "actor_died"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// ActorDied is the payload for EventActorDied.
type ActorDied struct {
	Entity Entity
	Cause  string
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// DrainType removes and returns events of one type, keeping the rest queued
// in order.
func (q *EventQueue) DrainType(t EventType) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out, keep []Event
	for _, evt := range q.items {
		if evt.Type == t {
			out = append(out, evt)
		} else {
			keep = append(keep, evt)
		}
	}
	q.items = keep
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
