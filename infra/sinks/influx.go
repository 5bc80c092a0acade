package sinks

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/commercepulse/telemetry/core/metric"
	"github.com/commercepulse/telemetry/core/pipeline"
	"github.com/commercepulse/telemetry/infra/logger"
)

// InfluxConfig defines the connection settings for the InfluxDB sink.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes enriched Metrics to an InfluxDB instance using the
// official client. The metric name becomes the measurement; tags and metadata
// become point tags, the numeric value (or an event count of 1) the field.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) pipeline.Sink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return pipeline.NopSink{}
	}
	return sink
}

// Capture writes the Metric as a single point.
func (s *InfluxSink) Capture(ctx context.Context, m metric.Metric) error {
	p := write.NewPointWithMeasurement(m.Name)
	for k, v := range m.Tags {
		p.AddTag(k, v)
	}
	for k, v := range m.Metadata {
		p.AddTag(k, v)
	}
	if m.HasValue() {
		p.AddField("value", *m.Value)
	} else {
		p.AddField("count", int64(1))
	}
	p.SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}
