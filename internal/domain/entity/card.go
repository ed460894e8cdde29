package entity

// ValueEntry is one stored configuration value of a card, keyed by the
// semantic field id declared by the card type (e.g. "coin_id", "address").
type ValueEntry struct {
	ID    string `json:"id" yaml:"id"`
	Value string `json:"value" yaml:"value"`
}

// CardInstance is a user-placed widget on a dashboard. Values form a sparse
// property bag; a missing required value degrades the card, it never fails
// the dashboard.
type CardInstance struct {
	ID         string       `json:"id" yaml:"id"`
	CardTypeID string       `json:"cardTypeId" yaml:"cardTypeId"`
	XOrder     int          `json:"xOrder" yaml:"xOrder"`
	Values     []ValueEntry `json:"values,omitempty" yaml:"values,omitempty"`

	// Preference fields stored alongside every card. The dashboard's
	// effective currency preference is read from whichever card is first
	// in xOrder.
	PrimaryCurrency   string `json:"primaryCurrency,omitempty" yaml:"primaryCurrency,omitempty"`
	SecondaryCurrency string `json:"secondaryCurrency,omitempty" yaml:"secondaryCurrency,omitempty"`
	TertiaryCurrency  string `json:"tertiaryCurrency,omitempty" yaml:"tertiaryCurrency,omitempty"`
}

// Value returns the stored value for a field id and whether it was present.
func (c CardInstance) Value(fieldID string) (string, bool) {
	for _, v := range c.Values {
		if v.ID == fieldID {
			return v.Value, true
		}
	}
	return "", false
}

// CurrencyPreference is the primary/secondary/tertiary display currency set
// shared by every card on one dashboard.
type CurrencyPreference struct {
	Primary   string `json:"primary" yaml:"primary"`
	Secondary string `json:"secondary" yaml:"secondary"`
	Tertiary  string `json:"tertiary" yaml:"tertiary"`
}

// DefaultCurrencyPreference is used when a dashboard has no cards to read a
// stored preference from.
var DefaultCurrencyPreference = CurrencyPreference{Primary: "USD", Secondary: "EUR", Tertiary: "BTC"}
