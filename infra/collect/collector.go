package collect

import (
	"context"
	"fmt"

	"github.com/commercepulse/telemetry/core/events"
	"github.com/commercepulse/telemetry/core/logger"
	"github.com/commercepulse/telemetry/core/metric"
	"github.com/commercepulse/telemetry/core/monitoring"
	"github.com/commercepulse/telemetry/core/pipeline"
	"github.com/commercepulse/telemetry/core/producer"
	"github.com/commercepulse/telemetry/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and runs the producers
// bound to each event, capturing their Metrics into the dispatcher. Because
// the bus hands events over asynchronously, producers run off the publishing
// operation's critical path. The collector stops when the context is
// canceled; the returned channel closes once it has stopped.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, reg *producer.Registry, d *pipeline.Dispatcher, log logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || reg == nil || d == nil {
		close(done)
		return done
	}
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				handle(ctx, ev, reg, d, log)
			}
		}
	}()
	return done
}

func handle(ctx context.Context, ev events.Event, reg *producer.Registry, d *pipeline.Dispatcher, log logger.Logger) {
	for _, p := range reg.For(ev.EventName()) {
		ms, err := produce(ctx, p, ev)
		if err != nil {
			log.Errorf("producer for %s: %v", ev.EventName(), err)
			monitoring.ReportFailure("producer", err)
			continue
		}
		d.CaptureAll(ctx, ms)
	}
}

// produce isolates a single producer: a panic is converted into an error so
// one broken producer cannot take down the collector or its peers.
func produce(ctx context.Context, p producer.EventProducer, ev events.Event) (ms []metric.Metric, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("producer for %s panicked: %v", p.EventName(), r)
		}
	}()
	return p.Produce(ctx, ev)
}
