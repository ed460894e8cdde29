package port

import (
	"context"

	domainentity "crypto_dashboard/internal/domain/entity"
	"crypto_dashboard/internal/entity"
)

// QuoteClient fetches crypto quote records for an exact id set. The contract
// with the market-data API is "give me data for exactly this key set";
// request shaping (batching, one call per convert currency) is the client's
// concern.
type QuoteClient interface {
	GetQuotes(ctx context.Context, ids []int64, convert []string) (map[int64]entity.CMCCoinData, error)
	GetGlobalMetrics(ctx context.Context, convert string) (entity.GlobalMetrics, error)
}

// RateClient fetches fiat exchange rates for an exact set of normalized
// BASE/QUOTE tickers.
type RateClient interface {
	GetRates(ctx context.Context, tickers []string) (map[string]entity.FiatRate, error)
}

// BalanceClient fetches chain balances for an exact address set.
type BalanceClient interface {
	GetBalances(ctx context.Context, addresses []string) (map[string]entity.NanoRawBalance, error)
}

// GasClient fetches a gas price suggestion for one network. Serves the
// gas_tracker card, which fetches outside the shared provider chain.
type GasClient interface {
	GasSuggestionFor(ctx context.Context, network string) (domainentity.GasSuggestion, error)
}
