package aggregate

import (
	"sort"

	"crypto_dashboard/internal/catalog"
	"crypto_dashboard/internal/domain/entity"
)

// Aggregator walks a full card list and produces the per-domain requirement
// sets. Output is a set operation over the list: permuting the cards never
// changes the resulting sets.
type Aggregator struct {
	extractor *Extractor
}

// NewAggregator builds an aggregator over the given card-type registry.
func NewAggregator(c *catalog.Catalog) *Aggregator {
	return &Aggregator{extractor: NewExtractor(c)}
}

// Aggregate derives the deduplicated requirement sets for a card list.
// Malformed or unknown cards are skipped; a single bad card never aborts
// aggregation for the rest.
func (a *Aggregator) Aggregate(cards []entity.CardInstance) entity.Requirements {
	coinSet := make(map[int64]struct{})
	tickerSet := make(map[string]struct{})
	accountSet := make(map[string]entity.Account)
	typePresent := make(map[string]bool)

	for _, card := range cards {
		typePresent[card.CardTypeID] = true

		if key, ok := a.extractor.Extract(card, entity.DomainCryptoQuote); ok {
			coinSet[key.CoinID] = struct{}{}
		}
		if key, ok := a.extractor.Extract(card, entity.DomainFiatRate); ok {
			tickerSet[key.Ticker] = struct{}{}
		}
		if key, ok := a.extractor.Extract(card, entity.DomainChainBalance); ok {
			existing, seen := accountSet[key.Account.Address]
			if !seen {
				accountSet[key.Account.Address] = key.Account
			} else if key.Account.IsOwner && !existing.IsOwner {
				accountSet[key.Account.Address] = key.Account
			}
		}
	}

	// Augmentation: a banano_total card pulls the fixed Banano market id
	// into the quote set even though no card requests it explicitly.
	if typePresent[catalog.TypeBananoTotal] {
		coinSet[catalog.BananoCoinID] = struct{}{}
	}

	reqs := entity.Requirements{TypePresent: typePresent}

	reqs.CoinIDs = make([]int64, 0, len(coinSet))
	for id := range coinSet {
		reqs.CoinIDs = append(reqs.CoinIDs, id)
	}
	sort.Slice(reqs.CoinIDs, func(i, j int) bool { return reqs.CoinIDs[i] < reqs.CoinIDs[j] })

	reqs.Tickers = make([]string, 0, len(tickerSet))
	for t := range tickerSet {
		reqs.Tickers = append(reqs.Tickers, t)
	}
	sort.Strings(reqs.Tickers)

	reqs.Accounts = make([]entity.Account, 0, len(accountSet))
	for _, acc := range accountSet {
		reqs.Accounts = append(reqs.Accounts, acc)
	}
	entity.SortAccounts(reqs.Accounts)

	// The balance card types activate the chain-balance domain even when
	// every account value was malformed; the provider then simply has an
	// empty account list to serve.
	reqs.ChainBalanceActive = typePresent[catalog.TypeNanoBalance] ||
		typePresent[catalog.TypeBananoBalance] ||
		typePresent[catalog.TypeBananoTotalBal]

	return reqs
}
