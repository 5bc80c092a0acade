package metric

import "maps"

// Metric is a single named measurement emitted by a producer. Names are
// dot-namespaced, e.g. "customer.registered". Tags carry low-cardinality
// dimensions chosen by the producer; Metadata is filled in by the dispatcher
// from the metadata aggregator and must never be set by a producer.
//
// A Metric is treated as immutable once constructed. Enrichment returns a new
// copy, so a producer may safely retain the original.
type Metric struct {
	Name     string
	Value    *float64
	Tags     map[string]string
	Metadata map[string]string
}

// NewEvent creates a Metric without a value, representing a bare occurrence.
func NewEvent(name string, tags map[string]string) Metric {
	return Metric{Name: name, Tags: maps.Clone(tags)}
}

// NewMeasurement creates a Metric carrying a numeric value.
func NewMeasurement(name string, value float64, tags map[string]string) Metric {
	v := value
	return Metric{Name: name, Value: &v, Tags: maps.Clone(tags)}
}

// HasValue reports whether the Metric is a measurement rather than a bare event.
func (m Metric) HasValue() bool { return m.Value != nil }

// WithMetadata returns an enriched copy with the given metadata attached.
// Tags and value are untouched; the metadata map is cloned so later cache
// resets cannot alter an already delivered Metric.
func (m Metric) WithMetadata(md map[string]string) Metric {
	out := m
	out.Metadata = maps.Clone(md)
	return out
}

// Tag returns the tag value for key, or "" when absent.
func (m Metric) Tag(key string) string { return m.Tags[key] }
