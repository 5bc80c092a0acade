package pipeline

// Registration associates a Sink with the client name used for activation
// matching against the configured active-clients list.
type Registration struct {
	ClientName string
	Sink       Sink
}

// ClientRegistry holds the declared sink registrations in registration order.
// It is built once at wiring time; activation is not reconfigurable at
// runtime.
type ClientRegistry struct {
	regs []Registration
}

// NewClientRegistry creates a registry from the given registrations.
func NewClientRegistry(regs ...Registration) *ClientRegistry {
	return &ClientRegistry{regs: regs}
}

// Register appends a sink registration.
func (r *ClientRegistry) Register(clientName string, s Sink) {
	if s == nil {
		return
	}
	r.regs = append(r.regs, Registration{ClientName: clientName, Sink: s})
}

// Active filters the registrations down to the active set: a sink is active
// iff consent is granted and its client name appears in activeClients. A
// registered but unlisted sink is excluded entirely and never invoked.
func (r *ClientRegistry) Active(consentGranted bool, activeClients []string) []Registration {
	if !consentGranted {
		return nil
	}
	allowed := make(map[string]struct{}, len(activeClients))
	for _, name := range activeClients {
		allowed[name] = struct{}{}
	}
	var active []Registration
	for _, reg := range r.regs {
		if _, ok := allowed[reg.ClientName]; ok {
			active = append(active, reg)
		}
	}
	return active
}
