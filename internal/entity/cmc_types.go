package entity

// CMCQuotesResponse is the envelope of the quotes/latest endpoint. Data is
// keyed by the requested coin id rendered as a string.
type CMCQuotesResponse struct {
	Status CMCStatus              `json:"status"`
	Data   map[string]CMCCoinData `json:"data"`
}

// CMCStatus carries the API-level error fields every CMC response includes.
type CMCStatus struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
	CreditCount  int    `json:"credit_count"`
}

// CMCCoinData is one coin's record with per-currency quotes.
type CMCCoinData struct {
	ID                int64               `json:"id"`
	Name              string              `json:"name"`
	Symbol            string              `json:"symbol"`
	Slug              string              `json:"slug"`
	CirculatingSupply float64             `json:"circulating_supply"`
	TotalSupply       float64             `json:"total_supply"`
	MaxSupply         float64             `json:"max_supply"`
	CmcRank           int                 `json:"cmc_rank"`
	Quote             map[string]CMCQuote `json:"quote"`
}

// CMCQuote is one coin's quote in one conversion currency.
type CMCQuote struct {
	Price            float64 `json:"price"`
	Volume24h        float64 `json:"volume_24h"`
	PercentChange1h  float64 `json:"percent_change_1h"`
	PercentChange24h float64 `json:"percent_change_24h"`
	PercentChange7d  float64 `json:"percent_change_7d"`
	MarketCap        float64 `json:"market_cap"`
	LastUpdated      string  `json:"last_updated"`
}

// CMCGlobalMetricsResponse is the envelope of global-metrics/quotes/latest.
type CMCGlobalMetricsResponse struct {
	Status CMCStatus `json:"status"`
	Data   struct {
		BtcDominance float64                   `json:"btc_dominance"`
		EthDominance float64                   `json:"eth_dominance"`
		Quote        map[string]CMCGlobalQuote `json:"quote"`
	} `json:"data"`
}

// CMCGlobalQuote is the market-wide totals in one conversion currency.
type CMCGlobalQuote struct {
	TotalMarketCap                          float64 `json:"total_market_cap"`
	TotalVolume24h                          float64 `json:"total_volume_24h"`
	TotalMarketCapYesterday                 float64 `json:"total_market_cap_yesterday"`
	TotalMarketCapYesterdayPercentageChange float64 `json:"total_market_cap_yesterday_percentage_change"`
	LastUpdated                             string  `json:"last_updated"`
}

// CMCFearGreedResponse is the envelope of fear-and-greed/latest.
type CMCFearGreedResponse struct {
	Status CMCStatus `json:"status"`
	Data   struct {
		Value               float64 `json:"value"`
		ValueClassification string  `json:"value_classification"`
		UpdateTime          string  `json:"update_time"`
	} `json:"data"`
}

// GlobalMetrics is the merged global-metrics record served to cards: the
// market totals for the requested conversion currency plus the fear/greed
// index fetched alongside it.
type GlobalMetrics struct {
	BtcDominance   float64 `json:"btcDominance"`
	EthDominance   float64 `json:"ethDominance"`
	TotalMarketCap float64 `json:"totalMarketCap"`
	TotalVolume24h float64 `json:"totalVolume24h"`
	FearGreedValue float64 `json:"fearGreedValue"`
	FearGreedClass string  `json:"fearGreedClass"`
	Currency       string  `json:"currency"`
}
