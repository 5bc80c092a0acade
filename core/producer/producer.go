package producer

import (
	"context"
	"time"

	"github.com/commercepulse/telemetry/core/events"
	"github.com/commercepulse/telemetry/core/metric"
)

// EventProducer creates Metrics in response to a single named domain event.
// Produce must return an empty slice, not an error, when the event simply
// carries nothing worth measuring. It must stay fast: metadata enrichment is
// the dispatcher's job and happens later.
type EventProducer interface {
	// EventName is the name of the one event this producer is bound to.
	EventName() string
	Produce(ctx context.Context, ev events.Event) ([]metric.Metric, error)
}

// Collector is a scheduled producer. It is invoked once per interval with no
// payload and may perform heavier aggregate work, decoupled from any request.
type Collector interface {
	Name() string
	Interval() time.Duration
	Collect(ctx context.Context) ([]metric.Metric, error)
}
