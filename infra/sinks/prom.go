package sinks

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/commercepulse/telemetry/core/metric"
)

// PromSink exposes captured Metrics as Prometheus collectors: a counter per
// metric name for occurrences and a gauge for the last observed value of
// measurements. Tag and metadata keys are deliberately not used as labels,
// keeping the label cardinality independent of producer behavior.
type PromSink struct {
	events *prometheus.CounterVec
	values *prometheus.GaugeVec
}

// NewPromSink registers the usage collectors on the provided registerer.
// If reg is nil, the default registerer is used. If the collectors are already
// registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "usage_events_total",
		Help: "Total number of captured usage metrics per name",
	}, []string{"metric"})
	values := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "usage_metric_value",
		Help: "Last observed value of valued usage metrics",
	}, []string{"metric"})

	if err := reg.Register(events); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			events = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(values); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			values = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{events: events, values: values}, nil
}

// Capture increments the occurrence counter and records the value if present.
func (s *PromSink) Capture(_ context.Context, m metric.Metric) error {
	s.events.WithLabelValues(m.Name).Inc()
	if m.HasValue() {
		s.values.WithLabelValues(m.Name).Set(*m.Value)
	}
	return nil
}
