// Package compose decides how a render pass is assembled: which shared data
// providers must wrap the card list (and in what fixed nesting order), and
// where layout breaks fall in the sequenced card list.
package compose

import (
	"crypto_dashboard/internal/catalog"
	"crypto_dashboard/internal/domain/entity"
)

// stage is one optional provider layer. The composer folds the stage list in
// declaration order; stages whose predicate is false are skipped entirely and
// never appear as no-op wrappers in the output chain.
type stage struct {
	domain entity.DataDomain
	active func(entity.Requirements) bool
	bind   func(entity.Requirements) entity.ProviderBinding
}

// Composer applies the fixed provider nesting order to a requirement set.
type Composer struct {
	stages []stage
}

// NewComposer builds the composer with its fixed stage order, outermost
// first: fiat-rate, global-metrics, crypto-quote, chain-balance. The
// currency-preference layer always applies and is carried separately on the
// render tree, so it is not a stage here.
func NewComposer() *Composer {
	return &Composer{stages: []stage{
		{
			domain: entity.DomainFiatRate,
			active: func(r entity.Requirements) bool {
				return len(r.Tickers) > 0 ||
					r.HasType(catalog.TypeFiatCurrency) ||
					r.HasType(catalog.TypeCalculator) ||
					r.HasType(catalog.TypeBananoTotalBal)
			},
			bind: func(r entity.Requirements) entity.ProviderBinding {
				return entity.ProviderBinding{
					Domain:      entity.DomainFiatRate,
					Tickers:     r.Tickers,
					Fingerprint: r.Fingerprint(entity.DomainFiatRate),
				}
			},
		},
		{
			domain: entity.DomainGlobalMetrics,
			active: func(r entity.Requirements) bool {
				return r.HasType(catalog.TypeFearGreedIndex)
			},
			bind: func(r entity.Requirements) entity.ProviderBinding {
				return entity.ProviderBinding{
					Domain:      entity.DomainGlobalMetrics,
					Fingerprint: r.Fingerprint(entity.DomainGlobalMetrics),
				}
			},
		},
		{
			domain: entity.DomainCryptoQuote,
			active: func(r entity.Requirements) bool {
				return len(r.CoinIDs) > 0
			},
			bind: func(r entity.Requirements) entity.ProviderBinding {
				return entity.ProviderBinding{
					Domain:      entity.DomainCryptoQuote,
					CoinIDs:     r.CoinIDs,
					Fingerprint: r.Fingerprint(entity.DomainCryptoQuote),
				}
			},
		},
		{
			domain: entity.DomainChainBalance,
			active: func(r entity.Requirements) bool {
				return r.ChainBalanceActive
			},
			bind: func(r entity.Requirements) entity.ProviderBinding {
				return entity.ProviderBinding{
					Domain:      entity.DomainChainBalance,
					Accounts:    r.Accounts,
					Fingerprint: r.Fingerprint(entity.DomainChainBalance),
				}
			},
		},
	}}
}

// Compose returns the active provider bindings in nesting order (outermost
// first). The order is a property of the stage list alone; it never depends
// on card order or on which subset of stages is active.
func (c *Composer) Compose(reqs entity.Requirements) []entity.ProviderBinding {
	var bindings []entity.ProviderBinding
	for _, s := range c.stages {
		if s.active(reqs) {
			bindings = append(bindings, s.bind(reqs))
		}
	}
	return bindings
}
