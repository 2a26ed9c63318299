package sim

import "sort"

// Listener handles an emitted event. Listeners do not return errors: a
// listener that cannot proceed panics, which aborts the remaining listeners
// of that emission. A listener failure signals corrupted simulation state
// and must not be skipped over.
type Listener func(*Event)

// Emitter dispatches an event to every listener of one named channel.
type Emitter func(*Event)

// registration pairs a listener with the name it was registered under. The
// name orders listeners within a priority bucket.
type registration struct {
	name string
	fn   Listener
}

// eventChannel holds the listeners for one event name, bucketed by
// priority. A registration occupies exactly one bucket; registering the
// same listener again adds a second, independent registration.
type eventChannel struct {
	manager   *EventManager
	listeners map[int][]registration
}

func newEventChannel(m *EventManager) *eventChannel {
	return &eventChannel{
		manager:   m,
		listeners: make(map[int][]registration),
	}
}

func (c *eventChannel) register(name string, fn Listener, priority int) {
	c.listeners[priority] = append(c.listeners[priority], registration{name: name, fn: fn})
}

// emit stamps the event time from the manager's clock and invokes every
// listener in ascending priority order, lexicographic name order within a
// priority. The order is deterministic regardless of registration order.
func (c *eventChannel) emit(ev *Event) {
	if c.manager.clock == nil {
		panic("sim: emit before EventManager.Setup")
	}
	ev.Time = c.manager.clock()

	priorities := make([]int, 0, len(c.listeners))
	for p := range c.listeners {
		priorities = append(priorities, p)
	}
	sort.Ints(priorities)

	for _, p := range priorities {
		bucket := append([]registration(nil), c.listeners[p]...)
		sort.SliceStable(bucket, func(i, j int) bool { return bucket[i].name < bucket[j].name })
		for _, r := range bucket {
			r.fn(ev)
		}
	}
}
