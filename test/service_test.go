package test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/commercepulse/telemetry/app"
	"github.com/commercepulse/telemetry/config"
	"github.com/commercepulse/telemetry/core/events"
)

const serviceYAML = `telemetry:
  consent_granted: true
  active_clients: ["log"]
components:
  clients:
    - type: log
  providers:
    - type: appversion
      priority: 100
      conf:
        version: "1.0.0"
    - type: environment
      priority: 10
logging:
  level: debug
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// Boots the full service from a configuration file and pushes an event
// through its bus. The log sink only writes to the logger, so the test
// asserts clean startup and shutdown rather than delivery contents.
func TestServiceFromConfig(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, serviceYAML))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan error, 1)
	go func() { runDone <- svc.Run(ctx) }()

	svc.Bus().Publish(events.Generic{
		Name:    "customer.registered",
		Payload: map[string]any{"sales_channel_id": "SC1"},
	})
	time.Sleep(50 * time.Millisecond)

	cancel()
	select {
	case err := <-runDone:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop")
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

// Consent off in the config file means no sink is instantiated at all.
func TestServiceWithoutConsent(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `telemetry:
  consent_granted: false
  active_clients: ["log"]
components:
  clients:
    - type: log
logging:
  level: info
`))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
