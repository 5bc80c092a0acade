package sinks

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/commercepulse/telemetry/core/metric"
)

func TestPromSink_Capture(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}

	if err := sink.Capture(context.Background(), metric.NewEvent("customer.registered", nil)); err != nil {
		t.Fatalf("capture error: %v", err)
	}
	if err := sink.Capture(context.Background(), metric.NewEvent("customer.registered", nil)); err != nil {
		t.Fatalf("capture error: %v", err)
	}
	if err := sink.Capture(context.Background(), metric.NewMeasurement("order.value", 42.5, nil)); err != nil {
		t.Fatalf("capture error: %v", err)
	}

	expected := `
# HELP usage_events_total Total number of captured usage metrics per name
# TYPE usage_events_total counter
usage_events_total{metric="customer.registered"} 2
usage_events_total{metric="order.value"} 1
`
	if err := testutil.CollectAndCompare(sink.events, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}

	expectedValue := `
# HELP usage_metric_value Last observed value of valued usage metrics
# TYPE usage_metric_value gauge
usage_metric_value{metric="order.value"} 42.5
`
	if err := testutil.CollectAndCompare(sink.values, strings.NewReader(expectedValue)); err != nil {
		t.Errorf("unexpected value gauge: %v", err)
	}
}

func TestNewPromSink_ReusesExistingCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSink(reg); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := NewPromSink(reg); err != nil {
		t.Fatalf("second create: %v", err)
	}
}
