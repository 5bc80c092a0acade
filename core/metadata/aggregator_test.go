package metadata

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

type countingProvider struct {
	name     string
	fragment map[string]string
	err      error
	calls    atomic.Int32
}

func (p *countingProvider) Name() string { return p.name }

func (p *countingProvider) Provide(context.Context) (map[string]string, error) {
	p.calls.Add(1)
	return p.fragment, p.err
}

func TestAggregator_ProvidersInvokedOncePerScope(t *testing.T) {
	p := &countingProvider{name: "version", fragment: map[string]string{"app_version": "6.5"}}
	agg := NewAggregator(0, nopLogger{})
	agg.Register(p, 10)

	ctx := ContextWithScope(context.Background(), "req-1")
	first := agg.Get(ctx)
	second := agg.Get(ctx)

	if p.calls.Load() != 1 {
		t.Fatalf("expected one invocation, got %d", p.calls.Load())
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cached mapping differs: %v vs %v", first, second)
	}
	if first["app_version"] != "6.5" {
		t.Fatalf("unexpected mapping: %v", first)
	}
}

func TestAggregator_ScopesAreIndependent(t *testing.T) {
	p := &countingProvider{name: "version", fragment: map[string]string{"a": "1"}}
	agg := NewAggregator(0, nopLogger{})
	agg.Register(p, 0)

	agg.Get(ContextWithScope(context.Background(), "req-1"))
	agg.Get(ContextWithScope(context.Background(), "req-2"))

	if p.calls.Load() != 2 {
		t.Fatalf("expected one invocation per scope, got %d", p.calls.Load())
	}
}

func TestAggregator_ResetForcesRecompute(t *testing.T) {
	p := &countingProvider{name: "version", fragment: map[string]string{"a": "1"}}
	agg := NewAggregator(0, nopLogger{})
	agg.Register(p, 0)

	ctx := ContextWithScope(context.Background(), "req-1")
	agg.Get(ctx)
	agg.Reset("req-1")
	agg.Get(ctx)

	if p.calls.Load() != 2 {
		t.Fatalf("expected recompute after reset, got %d calls", p.calls.Load())
	}
}

func TestAggregator_ResetUnknownScopeIsNoop(t *testing.T) {
	agg := NewAggregator(0, nopLogger{})
	agg.Reset("never-seen")
	agg.ResetAll()
}

func TestAggregator_HighestPriorityWinsPerKey(t *testing.T) {
	p1 := &countingProvider{name: "p1", fragment: map[string]string{"a": "1"}}
	p2 := &countingProvider{name: "p2", fragment: map[string]string{"a": "2", "b": "3"}}
	agg := NewAggregator(0, nopLogger{})
	agg.Register(p1, 10)
	agg.Register(p2, 5)

	got := agg.Get(context.Background())
	want := map[string]string{"a": "1", "b": "3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("merge mismatch: got %v want %v", got, want)
	}
}

func TestAggregator_RegistrationOrderBreaksTies(t *testing.T) {
	p1 := &countingProvider{name: "first", fragment: map[string]string{"k": "first"}}
	p2 := &countingProvider{name: "second", fragment: map[string]string{"k": "second"}}
	agg := NewAggregator(0, nopLogger{})
	agg.Register(p1, 5)
	agg.Register(p2, 5)

	if got := agg.Get(context.Background()); got["k"] != "first" {
		t.Fatalf("expected first registration to win, got %q", got["k"])
	}
}

func TestAggregator_FailingProviderDegradesToEmptyFragment(t *testing.T) {
	failing := &countingProvider{name: "broken", err: errors.New("lookup failed")}
	ok := &countingProvider{name: "ok", fragment: map[string]string{"b": "3"}}
	agg := NewAggregator(0, nopLogger{})
	agg.Register(failing, 10)
	agg.Register(ok, 5)

	got := agg.Get(context.Background())
	if !reflect.DeepEqual(got, map[string]string{"b": "3"}) {
		t.Fatalf("expected surviving fragment only, got %v", got)
	}
	if ok.calls.Load() != 1 {
		t.Fatalf("remaining provider not invoked")
	}
}

type stuckProvider struct{}

func (stuckProvider) Name() string { return "stuck" }

func (stuckProvider) Provide(ctx context.Context) (map[string]string, error) {
	<-ctx.Done()
	time.Sleep(50 * time.Millisecond)
	return map[string]string{"never": "seen"}, nil
}

func TestAggregator_TimedOutProviderIsSkipped(t *testing.T) {
	ok := &countingProvider{name: "ok", fragment: map[string]string{"a": "1"}}
	agg := NewAggregator(20*time.Millisecond, nopLogger{})
	agg.Register(stuckProvider{}, 10)
	agg.Register(ok, 5)

	got := agg.Get(context.Background())
	if !reflect.DeepEqual(got, map[string]string{"a": "1"}) {
		t.Fatalf("expected timeout to yield empty fragment, got %v", got)
	}
}

func TestAggregator_PanickingProviderIsIsolated(t *testing.T) {
	panicking := ProviderFunc{ProviderName: "panics", Fn: func(context.Context) (map[string]string, error) {
		panic("boom")
	}}
	ok := &countingProvider{name: "ok", fragment: map[string]string{"a": "1"}}
	agg := NewAggregator(0, nopLogger{})
	agg.Register(panicking, 10)
	agg.Register(ok, 5)

	if got := agg.Get(context.Background()); got["a"] != "1" {
		t.Fatalf("expected surviving fragment, got %v", got)
	}
}
