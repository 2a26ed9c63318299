package sim

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// Clock reports the current simulation time.
type Clock func() time.Time

// EventManager owns the set of event channels and the simulation clock.
// Channels are created lazily on first reference and live for the rest of
// the run. One manager is created per run; there is no teardown.
type EventManager struct {
	channels map[string]*eventChannel
	clock    Clock
}

// NewEventManager creates a manager with no channels and no clock. Setup
// must be called before any emission.
func NewEventManager() *EventManager {
	return &EventManager{channels: make(map[string]*eventChannel)}
}

// Setup binds the time source used to stamp emitted events.
func (m *EventManager) Setup(clock Clock) {
	m.clock = clock
}

// channel returns the channel for name, creating it on first reference.
func (m *EventManager) channel(name string) *eventChannel {
	ch, ok := m.channels[name]
	if !ok {
		ch = newEventChannel(m)
		m.channels[name] = ch
		logrus.Debugf("created event channel %q", name)
	}
	return ch
}

// Emitter returns a function that emits the named event to all of its
// listeners. Emitting to a channel with zero listeners is not an error.
func (m *EventManager) Emitter(name string) Emitter {
	return m.channel(name).emit
}

// RegisterListener appends fn to the named channel's bucket for priority.
// Registering the same listener twice invokes it twice per emission.
func (m *EventManager) RegisterListener(event, listenerName string, fn Listener, priority int) error {
	if priority < MinPriority || priority > MaxPriority {
		return fmt.Errorf("listener %q on %q: priority %d outside [%d, %d]",
			listenerName, event, priority, MinPriority, MaxPriority)
	}
	m.channel(event).register(listenerName, fn, priority)
	logrus.Debugf("registered listener %q on %q at priority %d", listenerName, event, priority)
	return nil
}

// SetupComponents discovers the listeners and emitters each component
// declares and wires them into channels. Handlers are inspected in sorted
// name order so registration is deterministic. Channels for requested
// emitters are created eagerly so ListEvents reflects them before the
// first emission.
func (m *EventManager) SetupComponents(components ...any) error {
	for _, c := range components {
		if lp, ok := c.(ListenerProvider); ok {
			handlers := append([]*Handler(nil), lp.EventHandlers()...)
			sort.Slice(handlers, func(i, j int) bool { return handlers[i].name < handlers[j].name })
			for _, h := range handlers {
				for _, s := range h.subscriptions {
					if err := m.RegisterListener(s.Event, h.name, h.fn, s.Priority); err != nil {
						return err
					}
				}
			}
		}
		if ep, ok := c.(EmitterProvider); ok {
			for _, req := range ep.EventEmitters() {
				emit := m.Emitter(req.Event)
				if req.Bind != nil {
					req.Bind(emit)
				}
			}
		}
	}
	return nil
}

// ListEvents lists every event name known to the manager, sorted. The list
// can grow after setup as components reference new channels.
func (m *EventManager) ListEvents() []string {
	names := make([]string, 0, len(m.channels))
	for name := range m.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
