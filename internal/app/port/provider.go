package port

import (
	"context"

	"crypto_dashboard/internal/domain/entity"
)

// ProviderStatus is the lifecycle state of one domain's shared data.
type ProviderStatus string

const (
	ProviderPending ProviderStatus = "pending"
	ProviderReady   ProviderStatus = "ready"
	ProviderError   ProviderStatus = "error"
)

// ProviderState is a read-only snapshot of one domain's shared data, consumed
// by every card depending on that domain. Only the owning provider mutates
// the underlying state; a fetch failure surfaces here for all dependents at
// once rather than per card.
type ProviderState struct {
	Domain      entity.DataDomain `json:"domain"`
	Status      ProviderStatus    `json:"status"`
	Fingerprint string            `json:"fingerprint"`
	Data        any               `json:"data,omitempty"`
	Err         string            `json:"error,omitempty"`
}

// DataProvider is one shared data-fetching context serving a single domain.
type DataProvider interface {
	Domain() entity.DataDomain

	// Refresh issues at most one batched fetch for the binding's key set.
	// An unchanged fingerprint is served from cache; a new fingerprint
	// supersedes any in-flight fetch for a stale one (its result is
	// discarded, never blocking the newer set). Refresh returns without
	// waiting for the fetch.
	Refresh(ctx context.Context, binding entity.ProviderBinding)

	// State returns the current snapshot. Pending remains indefinitely if
	// the upstream never resolves; other providers and cards are
	// unaffected.
	State() ProviderState
}
