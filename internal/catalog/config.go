package catalog

import (
	"strconv"
	"strings"

	"crypto_dashboard/internal/domain/entity"
)

// CardConfig is the tagged union of typed card configurations. Each card
// type decodes its sparse value bag into exactly one variant; consumers
// switch over the concrete type instead of scanning value ids.
type CardConfig interface {
	cardConfig()
}

// CoinConfig configures quote cards (crypto, mini_crypto).
type CoinConfig struct {
	CoinID int64 `json:"coinId"`
}

// TickerConfig configures fiat_currency cards as a normalized BASE/QUOTE pair.
type TickerConfig struct {
	Base  string `json:"base"`
	Quote string `json:"quote"`
}

// Ticker returns the normalized "BASE/QUOTE" form.
func (t TickerConfig) Ticker() string { return t.Base + "/" + t.Quote }

// AccountConfig configures nano_balance and banano_balance cards.
type AccountConfig struct {
	Address string `json:"address"`
	IsOwner bool   `json:"isOwner"`
}

// MarketConfig configures orderbook and ohlcv_chart cards.
type MarketConfig struct {
	Exchange string `json:"exchange"`
	Base     string `json:"base"`
	Quote    string `json:"quote"`
}

// Ticker returns the normalized "BASE/QUOTE" form.
func (m MarketConfig) Ticker() string { return m.Base + "/" + m.Quote }

// PositionConfig configures uniswap_position cards.
type PositionConfig struct {
	Network    string `json:"network"`
	PositionID int64  `json:"positionId"`
}

// NetworkConfig configures gas_tracker cards.
type NetworkConfig struct {
	Network string `json:"network"`
}

// EmptyConfig marks card types that carry no configuration values.
type EmptyConfig struct{}

func (CoinConfig) cardConfig()     {}
func (TickerConfig) cardConfig()   {}
func (AccountConfig) cardConfig()  {}
func (MarketConfig) cardConfig()   {}
func (PositionConfig) cardConfig() {}
func (NetworkConfig) cardConfig()  {}
func (EmptyConfig) cardConfig()    {}

// DecodeConfig turns a card's value bag into its typed configuration. A nil
// result with ok=false means the card cannot resolve its dependencies
// (unknown type, missing required value, or malformed numeric field) and
// must render degraded; this is silent opt-out, never an error.
func (c *Catalog) DecodeConfig(card entity.CardInstance) (CardConfig, bool) {
	if _, known := c.Lookup(card.CardTypeID); !known {
		return nil, false
	}

	switch card.CardTypeID {
	case TypeCrypto, TypeMiniCrypto:
		id, ok := parseCoinID(card)
		if !ok {
			return nil, false
		}
		return CoinConfig{CoinID: id}, true

	case TypeFiatCurrency:
		base, okB := card.Value(FieldTickerBase)
		quote, okQ := card.Value(FieldTickerQuote)
		if !okB || !okQ || base == "" || quote == "" {
			return nil, false
		}
		return TickerConfig{Base: strings.ToUpper(base), Quote: strings.ToUpper(quote)}, true

	case TypeNanoBalance, TypeBananoBalance:
		address, okA := card.Value(FieldAddress)
		isOwnerRaw, okO := card.Value(FieldIsOwner)
		if !okA || !okO || address == "" {
			return nil, false
		}
		return AccountConfig{Address: address, IsOwner: isOwnerRaw == "true"}, true

	case TypeOrderBook, TypeOhlcvChart:
		exchange, okE := card.Value(FieldExchange)
		base, okB := card.Value(FieldTickerBase)
		quote, okQ := card.Value(FieldTickerQuote)
		if !okE || !okB || !okQ || exchange == "" || base == "" || quote == "" {
			return nil, false
		}
		return MarketConfig{Exchange: exchange, Base: strings.ToUpper(base), Quote: strings.ToUpper(quote)}, true

	case TypeUniswapPosition:
		network, okN := card.Value(FieldNetwork)
		positionRaw, okP := card.Value(FieldPositionID)
		if !okN || !okP || network == "" {
			return nil, false
		}
		positionID, err := strconv.ParseInt(strings.TrimSpace(positionRaw), 10, 64)
		if err != nil {
			return nil, false
		}
		return PositionConfig{Network: network, PositionID: positionID}, true

	case TypeGasTracker:
		network, ok := card.Value(FieldNetwork)
		if !ok || network == "" {
			return nil, false
		}
		return NetworkConfig{Network: network}, true

	default:
		// Types with no per-card values (tables, summaries, totals).
		return EmptyConfig{}, true
	}
}

// parseCoinID applies strict numeric coercion to the coin_id value. Anything
// that is not a whole number is filtered out here so a malformed id can never
// reach a requirement set.
func parseCoinID(card entity.CardInstance) (int64, bool) {
	raw, ok := card.Value(FieldCoinID)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
