// Package catalog holds the static card-type registry: which data domains
// each card type depends on, which stored value ids supply its lookup keys,
// and its layout behavior. The table is built once at startup and passed by
// reference; nothing mutates it at runtime.
package catalog

import "crypto_dashboard/internal/domain/entity"

// Card type ids known to the registry.
const (
	TypeCrypto            = "crypto"
	TypeMiniCrypto        = "mini_crypto"
	TypeCryptoTable       = "crypto_table"
	TypeFiatCurrency      = "fiat_currency"
	TypeOrderBook         = "orderbook"
	TypeOhlcvChart        = "ohlcv_chart"
	TypeUniswapPosition   = "uniswap_position"
	TypeUniswapPoolsTable = "uniswap_pools_table"
	TypeNanoBalance       = "nano_balance"
	TypeBananoBalance     = "banano_balance"
	TypeBananoTotal       = "banano_total"
	TypeBananoTotalBal    = "banano_total_balance"
	TypeFearGreedIndex    = "fear_greed_index"
	TypeWBanSummary       = "wban_summary"
	TypeGasTracker        = "gas_tracker"
	TypeCalculator        = "calculator"
)

// BananoCoinID is the fixed market id for Banano. A banano_total card pulls
// this id into the crypto-quote requirement set even though the card stores
// no coin_id of its own.
const BananoCoinID int64 = 4704

// Value ids used by card configurations.
const (
	FieldCoinID      = "coin_id"
	FieldTickerBase  = "ticker_base"
	FieldTickerQuote = "ticker_quote"
	FieldAddress     = "address"
	FieldIsOwner     = "is_owner"
	FieldExchange    = "exchange"
	FieldNetwork     = "network"
	FieldPositionID  = "position_id"
)

// Descriptor declares a card type: the domains it depends on, the value ids
// that supply each domain's lookup key, and whether the card must start its
// own row in the layout.
type Descriptor struct {
	ID             string
	Domains        map[entity.DataDomain]bool
	RequiredFields map[entity.DataDomain][]string
	OwnRow         bool
}

// Catalog is the immutable card-type table.
type Catalog struct {
	byID map[string]Descriptor
}

// Lookup returns the descriptor for a card type id. Unknown ids return
// ok=false; callers must degrade the card, never abort the dashboard.
func (c *Catalog) Lookup(typeID string) (Descriptor, bool) {
	d, ok := c.byID[typeID]
	return d, ok
}

// Types returns the registered card type ids.
func (c *Catalog) Types() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	return ids
}

// Default builds the registry for all card types the dashboard supports.
func Default() *Catalog {
	descriptors := []Descriptor{
		{
			ID:             TypeCrypto,
			Domains:        map[entity.DataDomain]bool{entity.DomainCryptoQuote: true},
			RequiredFields: map[entity.DataDomain][]string{entity.DomainCryptoQuote: {FieldCoinID}},
		},
		{
			ID:             TypeMiniCrypto,
			Domains:        map[entity.DataDomain]bool{entity.DomainCryptoQuote: true},
			RequiredFields: map[entity.DataDomain][]string{entity.DomainCryptoQuote: {FieldCoinID}},
		},
		{
			ID:     TypeCryptoTable,
			OwnRow: true,
		},
		{
			ID:             TypeFiatCurrency,
			Domains:        map[entity.DataDomain]bool{entity.DomainFiatRate: true},
			RequiredFields: map[entity.DataDomain][]string{entity.DomainFiatRate: {FieldTickerBase, FieldTickerQuote}},
		},
		{
			ID:     TypeOrderBook,
			OwnRow: true,
		},
		{
			ID:     TypeOhlcvChart,
			OwnRow: true,
		},
		{
			ID:     TypeUniswapPosition,
			OwnRow: true,
		},
		{
			ID:     TypeUniswapPoolsTable,
			OwnRow: true,
		},
		{
			ID:             TypeNanoBalance,
			Domains:        map[entity.DataDomain]bool{entity.DomainChainBalance: true},
			RequiredFields: map[entity.DataDomain][]string{entity.DomainChainBalance: {FieldAddress, FieldIsOwner}},
		},
		{
			ID:             TypeBananoBalance,
			Domains:        map[entity.DataDomain]bool{entity.DomainChainBalance: true},
			RequiredFields: map[entity.DataDomain][]string{entity.DomainChainBalance: {FieldAddress, FieldIsOwner}},
		},
		{
			// banano_total carries no values; it pulls BananoCoinID into
			// the quote set through the aggregator's augmentation rule.
			ID:      TypeBananoTotal,
			Domains: map[entity.DataDomain]bool{entity.DomainCryptoQuote: true},
		},
		{
			ID:      TypeBananoTotalBal,
			Domains: map[entity.DataDomain]bool{entity.DomainChainBalance: true, entity.DomainFiatRate: true},
		},
		{
			ID:      TypeFearGreedIndex,
			Domains: map[entity.DataDomain]bool{entity.DomainGlobalMetrics: true},
		},
		{
			ID: TypeWBanSummary,
		},
		{
			// gas_tracker fetches through its own endpoint, outside the
			// shared provider chain.
			ID: TypeGasTracker,
		},
		{
			ID:      TypeCalculator,
			Domains: map[entity.DataDomain]bool{entity.DomainFiatRate: true},
		},
	}

	byID := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		byID[d.ID] = d
	}
	return &Catalog{byID: byID}
}
