package sinks

import (
	"context"

	"github.com/DataDog/datadog-go/v5/statsd"

	"github.com/commercepulse/telemetry/core/metric"
)

// StatsdConfig defines the DogStatsD endpoint settings.
type StatsdConfig struct {
	Addr      string `json:"addr"`
	Namespace string `json:"namespace"`
}

// statsdClient is the subset of the DogStatsD client used by the sink.
type statsdClient interface {
	Incr(name string, tags []string, rate float64) error
	Gauge(name string, value float64, tags []string, rate float64) error
	Close() error
}

// StatsdSink forwards Metrics to a DogStatsD agent. Bare events become
// counts, valued measurements become gauges. Tags and metadata are flattened
// into the datadog "key:value" tag format.
type StatsdSink struct {
	client statsdClient
}

// NewStatsdSink connects to the DogStatsD agent at the configured address.
func NewStatsdSink(cfg StatsdConfig) (*StatsdSink, error) {
	var opts []statsd.Option
	if cfg.Namespace != "" {
		opts = append(opts, statsd.WithNamespace(cfg.Namespace))
	}
	client, err := statsd.New(cfg.Addr, opts...)
	if err != nil {
		return nil, err
	}
	return &StatsdSink{client: client}, nil
}

// Capture sends the Metric as a count or gauge.
func (s *StatsdSink) Capture(_ context.Context, m metric.Metric) error {
	tags := statsdTags(m)
	if m.HasValue() {
		return s.client.Gauge(m.Name, *m.Value, tags, 1)
	}
	return s.client.Incr(m.Name, tags, 1)
}

// Close flushes and closes the underlying client.
func (s *StatsdSink) Close() error { return s.client.Close() }

func statsdTags(m metric.Metric) []string {
	tags := make([]string, 0, len(m.Tags)+len(m.Metadata))
	for k, v := range m.Tags {
		tags = append(tags, k+":"+v)
	}
	for k, v := range m.Metadata {
		tags = append(tags, k+":"+v)
	}
	return tags
}
