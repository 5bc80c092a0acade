package plugins

import (
	"fmt"

	"github.com/commercepulse/telemetry/core/factory"
	"github.com/commercepulse/telemetry/core/metadata"
	"github.com/commercepulse/telemetry/core/pipeline"
	"github.com/commercepulse/telemetry/core/producer"
	"github.com/commercepulse/telemetry/core/samples"
	"github.com/commercepulse/telemetry/infra/collectors"
	"github.com/commercepulse/telemetry/infra/providers"
	"github.com/commercepulse/telemetry/infra/sinks"
)

func init() {
	mustSink("influxdb", func(conf map[string]any) (pipeline.Sink, error) {
		var c sinks.InfluxConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return sinks.NewInfluxSinkWithFallback(c), nil
	})
	mustSink("prometheus", func(conf map[string]any) (pipeline.Sink, error) {
		return sinks.NewPromSink(nil)
	})
	mustSink("statsd", func(conf map[string]any) (pipeline.Sink, error) {
		var c sinks.StatsdConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return sinks.NewStatsdSink(c)
	})
	mustSink("mqtt", func(conf map[string]any) (pipeline.Sink, error) {
		var c sinks.MQTTConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return sinks.NewMQTTSink(c)
	})
	mustSink("log", func(map[string]any) (pipeline.Sink, error) {
		return sinks.NewLogSink(), nil
	})

	mustProvider("appversion", func(conf map[string]any) (metadata.Provider, error) {
		var c providers.AppVersionConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return providers.NewAppVersion(c), nil
	})
	mustProvider("instance", func(map[string]any) (metadata.Provider, error) {
		return providers.NewInstance(), nil
	})
	mustProvider("environment", func(conf map[string]any) (metadata.Provider, error) {
		var c providers.EnvironmentConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return providers.NewEnvironment(c), nil
	})

	RegisterCollector("usage_summary", func(conf map[string]any, store *samples.Store) (producer.Collector, error) {
		var c collectors.UsageSummaryConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return collectors.NewUsageSummary(c, store), nil
	})
}

func mustSink(name string, f factory.Factory[pipeline.Sink]) {
	if err := RegisterSink(name, f); err != nil {
		panic(fmt.Sprintf("register sink %s: %v", name, err))
	}
}

func mustProvider(name string, f factory.Factory[metadata.Provider]) {
	if err := RegisterProvider(name, f); err != nil {
		panic(fmt.Sprintf("register provider %s: %v", name, err))
	}
}
