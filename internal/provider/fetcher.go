// Package provider implements the shared data-fetching contexts. Each
// provider serves one data domain to every card on the dashboard: it issues
// one batched fetch per distinct requirement set (content-based caching, not
// one fetch per consuming card), exposes the result as read-only shared
// state, and lets a newer requirement set supersede any in-flight fetch for
// a stale one.
package provider

import (
	"context"
	"sync"
	"time"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/domain/entity"
	"crypto_dashboard/pkg/metrics"

	gocache "github.com/patrickmn/go-cache"
)

// fetchFunc performs one batched upstream fetch for a binding's key set.
type fetchFunc func(ctx context.Context, binding entity.ProviderBinding) (any, error)

// fetcher is the generation-tracked fetch machinery shared by all providers.
// Only the fetcher mutates its state; cards read snapshots through State.
type fetcher struct {
	domain entity.DataDomain
	fetch  fetchFunc
	logger port.Logger
	cache  *gocache.Cache

	mu          sync.RWMutex
	state       port.ProviderState
	generation  uint64
	cancelPrior context.CancelFunc
}

func newFetcher(domain entity.DataDomain, ttl time.Duration, fetch fetchFunc, logger port.Logger) *fetcher {
	return &fetcher{
		domain: domain,
		fetch:  fetch,
		logger: logger,
		cache:  gocache.New(ttl, 2*ttl),
		state:  port.ProviderState{Domain: domain, Status: port.ProviderPending},
	}
}

// Domain implements port.DataProvider.
func (f *fetcher) Domain() entity.DataDomain { return f.domain }

// State implements port.DataProvider.
func (f *fetcher) State() port.ProviderState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

// Refresh implements port.DataProvider. The aggregated key set handed in is
// fixed for this render pass; a later Refresh with a different fingerprint
// cancels this one's fetch and discards its result (last requirement set
// wins). Refresh never blocks on the upstream.
func (f *fetcher) Refresh(ctx context.Context, binding entity.ProviderBinding) {
	f.mu.Lock()

	// A render pass with an unchanged (or previously seen) requirement set
	// is served from the content cache until its TTL lapses; only then is
	// the upstream asked again. The cached set still wins over any older
	// in-flight fetch: cancel it and bump the generation so a late result
	// for a stale set is discarded.
	if data, ok := f.cache.Get(binding.Fingerprint); ok {
		if f.cancelPrior != nil {
			f.cancelPrior()
			f.cancelPrior = nil
		}
		f.generation++
		f.state = port.ProviderState{
			Domain:      f.domain,
			Status:      port.ProviderReady,
			Fingerprint: binding.Fingerprint,
			Data:        data,
		}
		f.mu.Unlock()
		metrics.ProviderCacheHits.WithLabelValues(string(f.domain)).Inc()
		return
	}

	// A fetch for this exact set is already in flight; let it finish.
	if f.state.Fingerprint == binding.Fingerprint && f.state.Status == port.ProviderPending && f.cancelPrior != nil {
		f.mu.Unlock()
		return
	}

	if f.cancelPrior != nil {
		f.cancelPrior()
	}
	fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	f.cancelPrior = cancel

	f.generation++
	gen := f.generation
	f.state = port.ProviderState{
		Domain:      f.domain,
		Status:      port.ProviderPending,
		Fingerprint: binding.Fingerprint,
	}
	f.mu.Unlock()

	go f.run(fetchCtx, gen, binding)
}

func (f *fetcher) run(ctx context.Context, gen uint64, binding entity.ProviderBinding) {
	start := time.Now()
	data, err := f.fetch(ctx, binding)
	elapsed := time.Since(start)
	metrics.ProviderFetchDuration.WithLabelValues(string(f.domain)).Observe(elapsed.Seconds())

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.generation {
		// Superseded by a newer requirement set; drop the result.
		f.logger.Debug("discarding stale provider fetch result",
			"domain", string(f.domain), "generation", gen, "current", f.generation)
		return
	}

	if err != nil {
		metrics.ProviderFetchTotal.WithLabelValues(string(f.domain), "error").Inc()
		f.logger.Warn("provider fetch failed",
			"domain", string(f.domain), "fingerprint", binding.Fingerprint, "error", err)
		f.state = port.ProviderState{
			Domain:      f.domain,
			Status:      port.ProviderError,
			Fingerprint: binding.Fingerprint,
			Err:         err.Error(),
		}
		return
	}

	metrics.ProviderFetchTotal.WithLabelValues(string(f.domain), "success").Inc()
	f.cache.SetDefault(binding.Fingerprint, data)
	f.state = port.ProviderState{
		Domain:      f.domain,
		Status:      port.ProviderReady,
		Fingerprint: binding.Fingerprint,
		Data:        data,
	}
	f.logger.Debug("provider fetch completed",
		"domain", string(f.domain), "fingerprint", binding.Fingerprint, "elapsed", elapsed.String())
}
