package events

// Event is a domain event delivered on the application bus. Producers bind to
// events by name; the payload is the event value itself.
type Event interface {
	EventName() string
}

// Generic is a bare named event for hosts that do not define typed events.
type Generic struct {
	Name    string
	Payload map[string]any
}

func (g Generic) EventName() string { return g.Name }
