package sim

// Listener priorities. Lower fires earlier; DefaultPriority is used when a
// declaration does not name one.
const (
	MinPriority     = 0
	MaxPriority     = 9
	DefaultPriority = 5
)

// Subscription declares interest in one named event at a priority.
type Subscription struct {
	Event    string
	Priority int
}

// Handler attaches listener metadata to a callable. Declarations stack: one
// handler may listen for several events, each at its own priority. The
// handler name orders invocation among listeners sharing a priority bucket,
// so it should be stable across runs ("intervention.track_cost" style names
// work well).
type Handler struct {
	name          string
	fn            Listener
	subscriptions []Subscription
}

// NewHandler names a listener callable. Event interests are declared with
// ListensFor.
func NewHandler(name string, fn Listener) *Handler {
	return &Handler{name: name, fn: fn}
}

// ListensFor declares that the handler listens for event, optionally at a
// priority (DefaultPriority when omitted). Calls stack.
func (h *Handler) ListensFor(event string, priority ...int) *Handler {
	p := DefaultPriority
	if len(priority) > 0 {
		p = priority[0]
	}
	h.subscriptions = append(h.subscriptions, Subscription{Event: event, Priority: p})
	return h
}

// Name returns the registered listener name.
func (h *Handler) Name() string { return h.name }

// Subscriptions returns the declared event interests.
func (h *Handler) Subscriptions() []Subscription {
	return append([]Subscription(nil), h.subscriptions...)
}

// EmitterRequest asks the manager for an emitter of the named event. Bind
// is invoked during SetupComponents with the channel's emitter; the channel
// is created eagerly so the event shows up in ListEvents before the first
// emission.
type EmitterRequest struct {
	Event string
	Bind  func(Emitter)
}

// ListenerProvider is the capability a component implements to have its
// listeners wired during SetupComponents.
type ListenerProvider interface {
	EventHandlers() []*Handler
}

// EmitterProvider is the capability a component implements to receive
// emitters during SetupComponents.
type EmitterProvider interface {
	EventEmitters() []EmitterRequest
}

// SubscriptionsOf returns every listener declaration attached to v: a
// *Handler's own subscriptions, or everything a component's handlers
// declare. Values without declarations yield nil. Discovery is by
// capability, not by concrete type.
func SubscriptionsOf(v any) []Subscription {
	switch x := v.(type) {
	case *Handler:
		return x.Subscriptions()
	case ListenerProvider:
		var subs []Subscription
		for _, h := range x.EventHandlers() {
			subs = append(subs, h.subscriptions...)
		}
		return subs
	}
	return nil
}

// EmitterEventsOf returns the event names v requests emitters for, or nil.
func EmitterEventsOf(v any) []string {
	ep, ok := v.(EmitterProvider)
	if !ok {
		return nil
	}
	var names []string
	for _, req := range ep.EventEmitters() {
		names = append(names, req.Event)
	}
	return names
}
