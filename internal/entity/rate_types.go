package entity

import "github.com/shopspring/decimal"

// RateResponse is the envelope of the exchange-rate API's latest endpoint:
// rates for every quote currency against one base.
type RateResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// FiatRate is one resolved ticker-pair rate served to cards. The rate is
// kept as a decimal so conversion chains do not accumulate float error.
type FiatRate struct {
	Ticker string          `json:"ticker"`
	Base   string          `json:"base"`
	Quote  string          `json:"quote"`
	Rate   decimal.Decimal `json:"rate"`
}
