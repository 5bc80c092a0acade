package metadata

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/commercepulse/telemetry/core/logger"
	"github.com/commercepulse/telemetry/core/monitoring"
)

// DefaultProviderTimeout bounds a single Provide call. A provider exceeding
// it contributes an empty fragment instead of stalling the merge.
const DefaultProviderTimeout = 2 * time.Second

type registration struct {
	provider Provider
	priority int
	seq      int
}

// Aggregator merges the fragments of all registered providers and caches the
// merged mapping per execution scope. Within one scope every provider runs at
// most once until the scope is reset. Providers are invoked in descending
// priority order, ties broken by registration order, and the first writer
// wins per key.
type Aggregator struct {
	mu      sync.RWMutex
	regs    []registration
	cache   map[string]map[string]string
	timeout time.Duration
	log     logger.Logger
}

// NewAggregator creates an Aggregator with the given per-provider budget.
// A non-positive timeout falls back to DefaultProviderTimeout.
func NewAggregator(timeout time.Duration, log logger.Logger) *Aggregator {
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	return &Aggregator{
		cache:   make(map[string]map[string]string),
		timeout: timeout,
		log:     log,
	}
}

// Register adds a partial provider with its merge priority. Registration
// happens at wiring time, before the first Get.
func (a *Aggregator) Register(p Provider, priority int) {
	if p == nil {
		return
	}
	a.mu.Lock()
	a.regs = append(a.regs, registration{provider: p, priority: priority, seq: len(a.regs)})
	sort.SliceStable(a.regs, func(i, j int) bool {
		if a.regs[i].priority != a.regs[j].priority {
			return a.regs[i].priority > a.regs[j].priority
		}
		return a.regs[i].seq < a.regs[j].seq
	})
	a.mu.Unlock()
}

// Get returns the merged metadata for the scope carried by ctx. On a cache
// hit no provider is invoked. Concurrent first requests on the same scope may
// recompute redundantly but converge to the same mapping, merging being a
// pure function of the fragments. Callers must not mutate the returned map.
func (a *Aggregator) Get(ctx context.Context) map[string]string {
	scope := ScopeFromContext(ctx)

	a.mu.RLock()
	cached, ok := a.cache[scope]
	regs := make([]registration, len(a.regs))
	copy(regs, a.regs)
	a.mu.RUnlock()
	if ok {
		return cached
	}

	merged := make(map[string]string)
	for _, reg := range regs {
		fragment, err := a.provide(ctx, reg.provider)
		if err != nil {
			a.log.Errorf("metadata provider %s: %v", reg.provider.Name(), err)
			monitoring.ReportFailure("metadata_provider", err)
			continue
		}
		for k, v := range fragment {
			if _, exists := merged[k]; !exists {
				merged[k] = v
			}
		}
	}

	a.mu.Lock()
	// First populate wins so repeated Gets return the identical mapping.
	if existing, ok := a.cache[scope]; ok {
		merged = existing
	} else {
		a.cache[scope] = merged
	}
	a.mu.Unlock()
	return merged
}

// provide runs a single provider under the configured budget. The provider
// runs on its own goroutine so a stuck implementation cannot hang the merge.
func (a *Aggregator) provide(ctx context.Context, p Provider) (map[string]string, error) {
	pctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	type result struct {
		fragment map[string]string
		err      error
	}
	ch := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- result{err: fmt.Errorf("provider %s panicked: %v", p.Name(), r)}
			}
		}()
		frag, err := p.Provide(pctx)
		ch <- result{fragment: frag, err: err}
	}()

	select {
	case res := <-ch:
		return res.fragment, res.err
	case <-pctx.Done():
		return nil, fmt.Errorf("provider %s: %w", p.Name(), pctx.Err())
	}
}

// Reset clears the cache entry for the given scope, forcing a full
// recomputation on the next Get. Resetting an absent scope is a no-op.
func (a *Aggregator) Reset(scope string) {
	a.mu.Lock()
	delete(a.cache, scope)
	a.mu.Unlock()
}

// ResetAll clears every cached scope.
func (a *Aggregator) ResetAll() {
	a.mu.Lock()
	a.cache = make(map[string]map[string]string)
	a.mu.Unlock()
}
