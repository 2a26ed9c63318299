package sim

import "time"

// Event carries the context of a single emission: the simulation time at
// which it fired, the identifiers of the entities it affects, and an opaque
// payload owned by the emitter.
type Event struct {
	// Time is stamped from the manager's clock when the event is emitted.
	Time time.Time
	// Index identifies the entities affected by this event.
	Index []int64
	// UserData is an opaque payload shared between an event and the events
	// derived from it.
	UserData map[string]any
}

// NewEvent creates an event for the given entities. Time is zero until the
// event passes through an emitter.
func NewEvent(index []int64, userData map[string]any) *Event {
	return &Event{Index: index, UserData: userData}
}

// Split derives an event for a sub-population: same payload and time,
// different index.
func (e *Event) Split(index []int64) *Event {
	return &Event{Time: e.Time, Index: index, UserData: e.UserData}
}
