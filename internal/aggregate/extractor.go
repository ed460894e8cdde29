// Package aggregate derives, from a dashboard's ordered card list, the
// minimal deduplicated set of external fetch keys each data domain needs.
// It is pure and synchronous: the requirement sets for a render pass are
// fully computed before any provider fetch is issued.
package aggregate

import (
	"crypto_dashboard/internal/catalog"
	"crypto_dashboard/internal/domain/entity"
)

// Key is a single extracted lookup key. Exactly one field is populated,
// matching the domain it was extracted for.
type Key struct {
	CoinID  int64
	Ticker  string
	Account entity.Account
}

// Extractor turns a card's typed configuration into per-domain lookup keys.
type Extractor struct {
	catalog *catalog.Catalog
}

// NewExtractor builds an extractor over the given card-type registry.
func NewExtractor(c *catalog.Catalog) *Extractor {
	return &Extractor{catalog: c}
}

// Extract returns the lookup key a card contributes to one domain. A card
// whose type does not declare the domain, whose type is unknown, or whose
// values are missing/malformed contributes nothing; that is silent opt-out,
// not an error.
func (e *Extractor) Extract(card entity.CardInstance, domain entity.DataDomain) (Key, bool) {
	desc, known := e.catalog.Lookup(card.CardTypeID)
	if !known || !desc.Domains[domain] {
		return Key{}, false
	}

	cfg, ok := e.catalog.DecodeConfig(card)
	if !ok {
		return Key{}, false
	}

	switch domain {
	case entity.DomainCryptoQuote:
		if c, ok := cfg.(catalog.CoinConfig); ok {
			return Key{CoinID: c.CoinID}, true
		}
	case entity.DomainFiatRate:
		if c, ok := cfg.(catalog.TickerConfig); ok {
			return Key{Ticker: c.Ticker()}, true
		}
	case entity.DomainChainBalance:
		if c, ok := cfg.(catalog.AccountConfig); ok {
			return Key{Account: entity.Account{Address: c.Address, IsOwner: c.IsOwner}}, true
		}
	}
	// Domains with presence-only activation (global_metrics, the balance
	// total types) supply no per-card key.
	return Key{}, false
}
