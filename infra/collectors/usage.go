package collectors

import (
	"context"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/commercepulse/telemetry/core/metric"
	"github.com/commercepulse/telemetry/core/samples"
)

// UsageSummaryConfig parameterizes the scheduled usage-summary collector.
type UsageSummaryConfig struct {
	IntervalSeconds int `json:"interval_seconds"`
}

// Interval returns the configured period, defaulting to daily.
func (c UsageSummaryConfig) Interval() time.Duration {
	if c.IntervalSeconds <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.IntervalSeconds) * time.Second
}

// UsageSummary aggregates the raw samples recorded since the previous run
// into mean, median and p95 Metrics per series. It drains the store, so each
// observation contributes to exactly one summary.
type UsageSummary struct {
	cfg   UsageSummaryConfig
	store *samples.Store
}

// NewUsageSummary creates the collector over the given sample store.
func NewUsageSummary(cfg UsageSummaryConfig, store *samples.Store) *UsageSummary {
	return &UsageSummary{cfg: cfg, store: store}
}

func (c *UsageSummary) Name() string { return "usage_summary" }

func (c *UsageSummary) Interval() time.Duration { return c.cfg.Interval() }

// Collect drains and summarizes the sample store.
func (c *UsageSummary) Collect(context.Context) ([]metric.Metric, error) {
	drained := c.store.Drain()
	if len(drained) == 0 {
		return nil, nil
	}
	var ms []metric.Metric
	for series, values := range drained {
		if len(values) == 0 {
			continue
		}
		sort.Float64s(values)
		tags := map[string]string{"series": series}
		ms = append(ms,
			metric.NewMeasurement("usage.summary.count", float64(len(values)), tags),
			metric.NewMeasurement("usage.summary.mean", stat.Mean(values, nil), tags),
			metric.NewMeasurement("usage.summary.median", stat.Quantile(0.5, stat.Empirical, values, nil), tags),
			metric.NewMeasurement("usage.summary.p95", stat.Quantile(0.95, stat.Empirical, values, nil), tags),
		)
	}
	return ms, nil
}
