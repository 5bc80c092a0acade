package config

import "time"

// TelemetryConfig gates and shapes the collection pipeline.
type TelemetryConfig struct {
	// ConsentGranted is the operator opt-in. When false the pipeline
	// discards every Metric before touching providers or sinks.
	ConsentGranted bool `json:"consent_granted"`
	// ActiveClients lists the client names allowed to receive Metrics.
	// Registered sinks not named here are never invoked.
	ActiveClients []string `json:"active_clients"`
	// QueueSize bounds the backlog of enriched Metrics awaiting delivery.
	QueueSize int `json:"queue_size"`
	// ProviderTimeoutSeconds bounds one metadata provider invocation.
	ProviderTimeoutSeconds int `json:"provider_timeout_seconds"`
	// DeliveryTimeoutSeconds bounds one sink Capture call.
	DeliveryTimeoutSeconds int `json:"delivery_timeout_seconds"`
}

func (c TelemetryConfig) ProviderTimeout() time.Duration {
	if c.ProviderTimeoutSeconds <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.ProviderTimeoutSeconds) * time.Second
}

func (c TelemetryConfig) DeliveryTimeout() time.Duration {
	if c.DeliveryTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.DeliveryTimeoutSeconds) * time.Second
}
