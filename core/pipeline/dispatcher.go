package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/commercepulse/telemetry/core/logger"
	"github.com/commercepulse/telemetry/core/metadata"
	"github.com/commercepulse/telemetry/core/metric"
	"github.com/commercepulse/telemetry/core/monitoring"
)

const (
	// DefaultQueueSize bounds the number of enriched Metrics waiting for
	// sink delivery before new captures are dropped.
	DefaultQueueSize = 256
	// DefaultDeliveryTimeout bounds a single sink Capture call.
	DefaultDeliveryTimeout = 10 * time.Second
)

// Config holds the dispatcher settings sourced from configuration.
type Config struct {
	ConsentGranted  bool
	ActiveClients   []string
	QueueSize       int
	DeliveryTimeout time.Duration
}

type delivery struct {
	m     metric.Metric
	scope string
}

// Dispatcher is the orchestration hub of the pipeline. Capture enriches the
// Metric with merged metadata synchronously, then hands it to a background
// worker which fans it out to the active sinks, so sink I/O never adds
// latency to the operation that produced the Metric.
type Dispatcher struct {
	consent bool
	active  []Registration
	meta    *metadata.Aggregator
	log     logger.Logger

	queue   chan delivery
	wg      sync.WaitGroup
	once    sync.Once
	timeout time.Duration
}

// NewDispatcher computes the active sink set from the registry and the
// configured allow-list and starts the delivery worker.
func NewDispatcher(cfg Config, reg *ClientRegistry, meta *metadata.Aggregator, log logger.Logger) *Dispatcher {
	size := cfg.QueueSize
	if size <= 0 {
		size = DefaultQueueSize
	}
	timeout := cfg.DeliveryTimeout
	if timeout <= 0 {
		timeout = DefaultDeliveryTimeout
	}
	d := &Dispatcher{
		consent: cfg.ConsentGranted,
		active:  reg.Active(cfg.ConsentGranted, cfg.ActiveClients),
		meta:    meta,
		log:     log,
		queue:   make(chan delivery, size),
		timeout: timeout,
	}
	d.wg.Add(1)
	go d.deliver()
	return d
}

// Capture enriches the Metric and enqueues it for delivery. With consent not
// granted the Metric is discarded immediately; neither the metadata
// aggregator nor any sink is touched. Capture never blocks on sink I/O and
// never returns an error to the caller: when the delivery queue is full the
// Metric is dropped with a warning.
func (d *Dispatcher) Capture(ctx context.Context, m metric.Metric) {
	if !d.consent || len(d.active) == 0 {
		return
	}
	enriched := m.WithMetadata(d.meta.Get(ctx))
	select {
	case d.queue <- delivery{m: enriched, scope: metadata.ScopeFromContext(ctx)}:
	default:
		d.log.Warnf("delivery queue full, dropping metric %s", m.Name)
	}
}

// CaptureAll captures each Metric of a producer batch.
func (d *Dispatcher) CaptureAll(ctx context.Context, ms []metric.Metric) {
	for _, m := range ms {
		d.Capture(ctx, m)
	}
}

// ActiveClients returns the client names receiving Metrics, in registration
// order.
func (d *Dispatcher) ActiveClients() []string {
	names := make([]string, len(d.active))
	for i, reg := range d.active {
		names[i] = reg.ClientName
	}
	return names
}

func (d *Dispatcher) deliver() {
	defer d.wg.Done()
	for del := range d.queue {
		for _, reg := range d.active {
			d.captureOne(reg, del)
		}
	}
}

// captureOne invokes a single sink with a bounded budget. Errors and panics
// are reported and do not affect delivery to the remaining sinks.
func (d *Dispatcher) captureOne(reg Registration, del delivery) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	ctx = metadata.ContextWithScope(ctx, del.scope)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("sink %s panicked: %v", reg.ClientName, r)
			d.log.Errorf("%v", err)
			monitoring.ReportFailure("sink", err)
		}
	}()
	if err := reg.Sink.Capture(ctx, del.m); err != nil {
		d.log.Errorf("sink %s: %v", reg.ClientName, err)
		monitoring.ReportFailure("sink", err)
	}
}

// Close drains the pending deliveries and stops the worker. Capture must not
// be called after Close.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}
