package entity

import (
	"fmt"
	"sort"
	"strings"
)

// DataDomain identifies which shared provider must supply data for a card
// dependency.
type DataDomain string

const (
	DomainCryptoQuote   DataDomain = "crypto_quote"
	DomainFiatRate      DataDomain = "fiat_rate"
	DomainChainBalance  DataDomain = "chain_balance"
	DomainGlobalMetrics DataDomain = "global_metrics"
)

// Account is one chain-balance lookup key. IsOwner marks accounts owned by
// the dashboard owner, which downstream views may render differently.
type Account struct {
	Address string `json:"address" yaml:"address"`
	IsOwner bool   `json:"isOwner" yaml:"isOwner"`
}

// Requirements is the deduplicated, order-independent set of fetch keys a
// dashboard's cards collectively need, one set per data domain. It is derived
// state, rebuilt from the card list on every render pass and never persisted.
type Requirements struct {
	// CoinIDs are numeric market ids for the crypto-quote domain, sorted
	// ascending.
	CoinIDs []int64 `json:"coinIds,omitempty"`
	// Tickers are normalized "BASE/QUOTE" pairs for the fiat-rate domain,
	// sorted lexically.
	Tickers []string `json:"tickers,omitempty"`
	// Accounts are chain-balance lookups, deduplicated by address and
	// sorted by address.
	Accounts []Account `json:"accounts,omitempty"`
	// ChainBalanceActive is set when any balance card type is present,
	// even if it supplied no decodable account.
	ChainBalanceActive bool `json:"chainBalanceActive,omitempty"`
	// TypePresent records which card type ids occur at least once; the
	// composer's presence rules key off it.
	TypePresent map[string]bool `json:"-"`
}

// HasType reports whether at least one card of the given type id is present.
func (r Requirements) HasType(typeID string) bool {
	return r.TypePresent[typeID]
}

// Fingerprint returns a content hash of one domain's key set. Providers key
// their batched fetches on it, so a render pass with an unchanged set is
// served from cache.
func (r Requirements) Fingerprint(domain DataDomain) string {
	switch domain {
	case DomainCryptoQuote:
		parts := make([]string, len(r.CoinIDs))
		for i, id := range r.CoinIDs {
			parts[i] = fmt.Sprintf("%d", id)
		}
		return "quote:" + strings.Join(parts, ",")
	case DomainFiatRate:
		return "rate:" + strings.Join(r.Tickers, ",")
	case DomainChainBalance:
		parts := make([]string, len(r.Accounts))
		for i, a := range r.Accounts {
			parts[i] = fmt.Sprintf("%s:%t", a.Address, a.IsOwner)
		}
		return "balance:" + strings.Join(parts, ",")
	case DomainGlobalMetrics:
		return "metrics"
	}
	return string(domain)
}

// SortAccounts orders accounts by address for deterministic fingerprints.
func SortAccounts(accounts []Account) {
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Address < accounts[j].Address })
}
