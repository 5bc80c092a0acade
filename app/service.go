package app

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/commercepulse/telemetry/app/plugins"
	"github.com/commercepulse/telemetry/config"
	"github.com/commercepulse/telemetry/core/factory"
	"github.com/commercepulse/telemetry/core/metadata"
	"github.com/commercepulse/telemetry/core/metric"
	"github.com/commercepulse/telemetry/core/monitoring"
	"github.com/commercepulse/telemetry/core/pipeline"
	"github.com/commercepulse/telemetry/core/producer"
	"github.com/commercepulse/telemetry/core/samples"
	"github.com/commercepulse/telemetry/core/scheduler"
	"github.com/commercepulse/telemetry/infra/collect"
	"github.com/commercepulse/telemetry/infra/logger"
	inframon "github.com/commercepulse/telemetry/infra/monitoring"
	"github.com/commercepulse/telemetry/infra/sinks"
	"github.com/commercepulse/telemetry/internal/eventbus"
)

// Service wires the telemetry pipeline from configuration: metadata
// providers, active sinks, the dispatcher, the event collector and the
// scheduled collectors.
type Service struct {
	cfg        *config.Config
	bus        eventbus.EventBus
	dispatcher *pipeline.Dispatcher
	runner     *scheduler.Runner
	producers  *producer.Registry
	store      *samples.Store
	log        logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	monitor, err := inframon.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry monitor: %w", err)
	}
	monitoring.Init(monitor)

	agg := metadata.NewAggregator(cfg.Telemetry.ProviderTimeout(), logger.New("metadata"))
	for _, pc := range cfg.Components.Providers {
		p, err := plugins.Providers.Create(factory.ModuleConfig{Type: pc.Type, Conf: pc.Conf})
		if err != nil {
			return nil, fmt.Errorf("metadata provider %s: %w", pc.Type, err)
		}
		agg.Register(p, pc.Priority)
	}

	// Sinks for clients outside the active set are not even instantiated,
	// so an unlisted client costs nothing and opens no connections.
	registry := pipeline.NewClientRegistry()
	if cfg.Telemetry.ConsentGranted {
		for _, cc := range cfg.Components.Clients {
			if !slices.Contains(cfg.Telemetry.ActiveClients, cc.Type) {
				logg.Debugf("client %s registered but not active", cc.Type)
				continue
			}
			sink, err := plugins.Sinks.Create(factory.ModuleConfig{Type: cc.Type, Conf: cc.Conf})
			if err != nil {
				return nil, fmt.Errorf("client %s: %w", cc.Type, err)
			}
			registry.Register(cc.Type, sink)
		}
	}

	dispatcher := pipeline.NewDispatcher(pipeline.Config{
		ConsentGranted:  cfg.Telemetry.ConsentGranted,
		ActiveClients:   cfg.Telemetry.ActiveClients,
		QueueSize:       cfg.Telemetry.QueueSize,
		DeliveryTimeout: cfg.Telemetry.DeliveryTimeout(),
	}, registry, agg, logger.New("dispatcher"))

	store := samples.NewStore()
	var cols []producer.Collector
	for _, cc := range cfg.Components.Collectors {
		f, ok := plugins.Collectors[cc.Type]
		if !ok {
			return nil, fmt.Errorf("unknown collector type %s", cc.Type)
		}
		col, err := f(cc.Conf, store)
		if err != nil {
			return nil, fmt.Errorf("collector %s: %w", cc.Type, err)
		}
		cols = append(cols, col)
	}

	return &Service{
		cfg:        cfg,
		bus:        eventbus.New(),
		dispatcher: dispatcher,
		runner:     scheduler.NewRunner(dispatcher, logger.New("scheduler"), cols...),
		producers:  producer.NewRegistry(),
		store:      store,
		log:        logg,
	}, nil
}

// Bus returns the event bus the hosting application publishes domain events on.
func (s *Service) Bus() eventbus.EventBus { return s.bus }

// Producers returns the registry for binding event producers.
func (s *Service) Producers() *producer.Registry { return s.producers }

// Capture emits a single Metric directly, bypassing the event bus.
func (s *Service) Capture(ctx context.Context, m metric.Metric) {
	s.dispatcher.Capture(ctx, m)
}

// RecordSample feeds a raw observation to the scheduled usage-summary
// aggregation.
func (s *Service) RecordSample(series string, v float64) {
	s.store.Record(series, v)
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	collectorDone := collect.StartEventCollector(ctx, s.bus, s.producers, s.dispatcher, logger.New("collect"))
	s.runner.Start(ctx)
	if s.cfg.PrometheusAddr != "" {
		go func() {
			if err := sinks.StartPromServer(ctx, s.cfg.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	s.log.Infof("telemetry pipeline started, active clients: %v", s.dispatcher.ActiveClients())
	<-ctx.Done()
	s.runner.Wait()
	<-collectorDone
	return nil
}

// Close drains pending deliveries and releases resources.
func (s *Service) Close() error {
	s.bus.Close()
	s.dispatcher.Close()
	monitoring.Flush(2 * time.Second)
	return nil
}
