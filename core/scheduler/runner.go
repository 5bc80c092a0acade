package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/commercepulse/telemetry/core/logger"
	"github.com/commercepulse/telemetry/core/monitoring"
	"github.com/commercepulse/telemetry/core/pipeline"
	"github.com/commercepulse/telemetry/core/producer"
)

// DefaultInterval is used when a collector declares no interval of its own.
const DefaultInterval = 24 * time.Hour

// Runner drives scheduled collectors. Each collector runs on its own ticker,
// out-of-band from request handling, and feeds its Metrics into the
// dispatcher. A failing or panicking collector is reported and contributes
// nothing for that period; other collectors are unaffected.
type Runner struct {
	dispatcher *pipeline.Dispatcher
	collectors []producer.Collector
	log        logger.Logger
	wg         sync.WaitGroup
}

// NewRunner creates a Runner delivering into the given dispatcher.
func NewRunner(d *pipeline.Dispatcher, log logger.Logger, collectors ...producer.Collector) *Runner {
	return &Runner{dispatcher: d, collectors: collectors, log: log}
}

// Start launches one goroutine per collector. The goroutines stop when ctx
// is canceled; Wait blocks until all of them are done.
func (r *Runner) Start(ctx context.Context) {
	for _, c := range r.collectors {
		r.wg.Add(1)
		go r.run(ctx, c)
	}
}

// Wait blocks until all collector goroutines have stopped.
func (r *Runner) Wait() { r.wg.Wait() }

func (r *Runner) run(ctx context.Context, c producer.Collector) {
	defer r.wg.Done()
	interval := c.Interval()
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.collect(ctx, c)
		}
	}
}

func (r *Runner) collect(ctx context.Context, c producer.Collector) {
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("collector %s panicked: %v", c.Name(), rec)
			r.log.Errorf("%v", err)
			monitoring.ReportFailure("collector", err)
		}
	}()
	ms, err := c.Collect(ctx)
	if err != nil {
		r.log.Errorf("collector %s: %v", c.Name(), err)
		monitoring.ReportFailure("collector", err)
		return
	}
	r.dispatcher.CaptureAll(ctx, ms)
}
