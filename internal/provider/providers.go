package provider

import (
	"context"
	"fmt"
	"time"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/domain/entity"
	apientity "crypto_dashboard/internal/entity"
	"crypto_dashboard/internal/pkg/utils"
)

// QuoteData is the crypto-quote provider's shared payload: quote records
// keyed by coin id, covering every id in the augmented requirement set.
type QuoteData struct {
	Quotes  map[int64]apientity.CMCCoinData `json:"quotes"`
	Convert []string                        `json:"convert"`
}

// NewQuoteProvider serves the crypto_quote domain through the given client.
// Conversion currencies ride on each binding (the dashboard's currency
// preference); defaultConvert applies when a binding carries none.
func NewQuoteProvider(client port.QuoteClient, defaultConvert []string, ttl time.Duration, logger port.Logger) port.DataProvider {
	return newFetcher(entity.DomainCryptoQuote, ttl, func(ctx context.Context, binding entity.ProviderBinding) (any, error) {
		convert := binding.Convert
		if len(convert) == 0 {
			convert = defaultConvert
		}
		quotes, err := client.GetQuotes(ctx, binding.CoinIDs, convert)
		if err != nil {
			return nil, fmt.Errorf("fetching quotes for %d ids: %w", len(binding.CoinIDs), err)
		}
		return QuoteData{Quotes: quotes, Convert: convert}, nil
	}, logger)
}

// RateData is the fiat-rate provider's shared payload keyed by normalized
// BASE/QUOTE ticker.
type RateData struct {
	Rates map[string]apientity.FiatRate `json:"rates"`
}

// NewRateProvider serves the fiat_rate domain through the given client.
func NewRateProvider(client port.RateClient, ttl time.Duration, logger port.Logger) port.DataProvider {
	return newFetcher(entity.DomainFiatRate, ttl, func(ctx context.Context, binding entity.ProviderBinding) (any, error) {
		rates, err := client.GetRates(ctx, binding.Tickers)
		if err != nil {
			return nil, fmt.Errorf("fetching rates for %d tickers: %w", len(binding.Tickers), err)
		}
		return RateData{Rates: rates}, nil
	}, logger)
}

// BalanceData is the chain-balance provider's shared payload keyed by
// account address, with the IsOwner flag carried from the requirement set.
type BalanceData struct {
	Balances map[string]apientity.AccountBalance `json:"balances"`
}

// NewBalanceProvider serves the chain_balance domain through the given
// client. divisorFor maps an address to the power-of-ten divisor converting
// its chain's raw units into the display unit (10^30 for nano, 10^29 for
// banano).
func NewBalanceProvider(client port.BalanceClient, divisorFor func(address string) string, ttl time.Duration, logger port.Logger) port.DataProvider {
	return newFetcher(entity.DomainChainBalance, ttl, func(ctx context.Context, binding entity.ProviderBinding) (any, error) {
		balances := make(map[string]apientity.AccountBalance, len(binding.Accounts))
		if len(binding.Accounts) == 0 {
			// The domain can be active with zero decodable accounts.
			return BalanceData{Balances: balances}, nil
		}

		addresses := make([]string, len(binding.Accounts))
		for i, acc := range binding.Accounts {
			addresses[i] = acc.Address
		}
		raw, err := client.GetBalances(ctx, addresses)
		if err != nil {
			return nil, fmt.Errorf("fetching balances for %d accounts: %w", len(addresses), err)
		}

		for _, acc := range binding.Accounts {
			rb, ok := raw[acc.Address]
			if !ok {
				continue
			}
			divisor := divisorFor(acc.Address)
			balance := apientity.AccountBalance{Address: acc.Address, IsOwner: acc.IsOwner}
			balance.Raw, balance.Balance = utils.RawToUnit(rb.Balance, divisor)
			// The divisor is a power of ten, so its zero count is the
			// chain's decimal places.
			balance.Formatted = utils.FormatBigInt(balance.Raw, uint8(len(divisor)-1))
			if rb.Receivable != "" {
				_, balance.Receivable = utils.RawToUnit(rb.Receivable, divisor)
			} else {
				_, balance.Receivable = utils.RawToUnit(rb.Pending, divisor)
			}
			balances[acc.Address] = balance
		}
		return BalanceData{Balances: balances}, nil
	}, logger)
}

// NewMetricsProvider serves the global_metrics domain. Its key set is empty;
// activation is presence-based, so every dashboard shares one record per
// conversion currency.
func NewMetricsProvider(client port.QuoteClient, defaultConvert string, ttl time.Duration, logger port.Logger) port.DataProvider {
	return newFetcher(entity.DomainGlobalMetrics, ttl, func(ctx context.Context, binding entity.ProviderBinding) (any, error) {
		convert := defaultConvert
		if len(binding.Convert) > 0 {
			convert = binding.Convert[0]
		}
		m, err := client.GetGlobalMetrics(ctx, convert)
		if err != nil {
			return nil, fmt.Errorf("fetching global metrics: %w", err)
		}
		return m, nil
	}, logger)
}
