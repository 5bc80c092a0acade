package pipeline

import (
	"context"

	"github.com/commercepulse/telemetry/core/metric"
)

// Sink consumes one fully-enriched Metric and forwards it to a backend.
// Batching multiple Metrics into one outbound transmission is a sink's own
// business; the pipeline guarantees exactly one Capture call per Metric and
// performs no retries.
type Sink interface {
	Capture(ctx context.Context, m metric.Metric) error
}

// NopSink implements Sink with a no-op method.
type NopSink struct{}

func (NopSink) Capture(context.Context, metric.Metric) error { return nil }
