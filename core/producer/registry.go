package producer

import "sync"

// Registry holds event producers grouped by the event name they subscribe to.
// Registration happens at wiring time; lookups are concurrent-safe.
type Registry struct {
	mu        sync.RWMutex
	producers map[string][]EventProducer
}

// NewRegistry returns an empty producer registry.
func NewRegistry() *Registry {
	return &Registry{producers: make(map[string][]EventProducer)}
}

// Register binds the producer to its declared event name. Producers for the
// same event are kept in registration order.
func (r *Registry) Register(p EventProducer) {
	if p == nil {
		return
	}
	r.mu.Lock()
	r.producers[p.EventName()] = append(r.producers[p.EventName()], p)
	r.mu.Unlock()
}

// For returns the producers bound to the given event name in registration
// order. The returned slice is a copy and safe to iterate without locking.
func (r *Registry) For(event string) []EventProducer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ps := r.producers[event]
	if len(ps) == 0 {
		return nil
	}
	out := make([]EventProducer, len(ps))
	copy(out, ps)
	return out
}

// Events lists the event names with at least one bound producer.
func (r *Registry) Events() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.producers))
	for n := range r.producers {
		names = append(names, n)
	}
	return names
}
