package plugins

import (
	"github.com/commercepulse/telemetry/core/factory"
	"github.com/commercepulse/telemetry/core/metadata"
	"github.com/commercepulse/telemetry/core/pipeline"
	"github.com/commercepulse/telemetry/core/producer"
	"github.com/commercepulse/telemetry/core/samples"
)

// CollectorFactory builds a scheduled collector from raw config. Collectors
// that aggregate recorded observations receive the process sample store.
type CollectorFactory func(conf map[string]any, store *samples.Store) (producer.Collector, error)

var (
	// Sinks maps client names to sink factories. The client name doubles as
	// the activation key matched against the configured active-clients list.
	Sinks = factory.NewRegistry[pipeline.Sink]()
	// Providers maps type names to partial metadata provider factories.
	Providers = factory.NewRegistry[metadata.Provider]()
	// Collectors maps type names to scheduled collector factories.
	Collectors = map[string]CollectorFactory{}
)

// RegisterSink adds a sink factory under its client name.
func RegisterSink(name string, f factory.Factory[pipeline.Sink]) error {
	return Sinks.Register(name, f)
}

// RegisterProvider adds a metadata provider factory.
func RegisterProvider(name string, f factory.Factory[metadata.Provider]) error {
	return Providers.Register(name, f)
}

// RegisterCollector adds a scheduled collector factory.
func RegisterCollector(name string, f CollectorFactory) { Collectors[name] = f }
