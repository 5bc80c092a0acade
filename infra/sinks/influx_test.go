package sinks

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/commercepulse/telemetry/core/metric"
)

func TestInfluxSink_Capture(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(InfluxConfig{URL: srv.URL, Token: "token", Org: "org", Bucket: "bucket"})
	defer sink.Close()

	m := metric.NewEvent("customer.registered", map[string]string{"sales_channel_id": "SC1"}).
		WithMetadata(map[string]string{"app_version": "6.5"})
	if err := sink.Capture(context.Background(), m); err != nil {
		t.Fatalf("capture error: %v", err)
	}

	if !strings.HasPrefix(body, "customer.registered,") {
		t.Errorf("unexpected measurement: %s", body)
	}
	if !strings.Contains(body, "sales_channel_id=SC1") {
		t.Errorf("tag missing: %s", body)
	}
	if !strings.Contains(body, "app_version=6.5") {
		t.Errorf("metadata tag missing: %s", body)
	}
	if !strings.Contains(body, "count=1i") {
		t.Errorf("event count field missing: %s", body)
	}
}

func TestInfluxSink_CaptureMeasurementValue(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(InfluxConfig{URL: srv.URL, Token: "token", Org: "org", Bucket: "bucket"})
	defer sink.Close()

	if err := sink.Capture(context.Background(), metric.NewMeasurement("order.value", 42.5, nil)); err != nil {
		t.Fatalf("capture error: %v", err)
	}
	if !strings.Contains(body, "value=42.5") {
		t.Errorf("value field missing: %s", body)
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(InfluxConfig{
		URL:    srv.URL + "/api/v2/write",
		Token:  "tok",
		Org:    "org",
		Bucket: "bucket",
	})
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
