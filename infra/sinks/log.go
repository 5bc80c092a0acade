package sinks

import (
	"context"

	"github.com/commercepulse/telemetry/core/metric"
	"github.com/commercepulse/telemetry/infra/logger"
)

// LogSink writes every enriched Metric to the structured log. Useful as a
// development client and for verifying activation wiring.
type LogSink struct {
	log logger.Logger
}

// NewLogSink creates a LogSink on the "usage" component logger.
func NewLogSink() *LogSink {
	return &LogSink{log: logger.New("usage")}
}

func (s *LogSink) Capture(_ context.Context, m metric.Metric) error {
	fields := map[string]any{"metric": m.Name}
	if m.HasValue() {
		fields["value"] = *m.Value
	}
	for k, v := range m.Tags {
		fields["tag_"+k] = v
	}
	for k, v := range m.Metadata {
		fields["meta_"+k] = v
	}
	s.log.Debugw("metric captured", fields)
	return nil
}
