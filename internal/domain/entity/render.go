package entity

// ProviderBinding is one shared data-fetching context activated for a render
// pass, carrying the consolidated key set its provider must fetch.
type ProviderBinding struct {
	Domain   DataDomain `json:"domain"`
	CoinIDs  []int64    `json:"coinIds,omitempty"`
	Tickers  []string   `json:"tickers,omitempty"`
	Accounts []Account  `json:"accounts,omitempty"`
	// Convert lists the conversion currencies for quote and metrics
	// fetches, taken from the dashboard's currency preference.
	Convert     []string `json:"convert,omitempty"`
	Fingerprint string   `json:"fingerprint"`
}

// SlotKind discriminates entries of the sequenced card list.
type SlotKind string

const (
	SlotCard  SlotKind = "card"
	SlotBreak SlotKind = "break"
)

// Slot is one entry of the sequenced render list: either a card view or a
// layout break telling the rendering surface to start a new row.
type Slot struct {
	Kind SlotKind  `json:"kind"`
	Card *CardView `json:"card,omitempty"`
}

// CardView is the per-card render payload. Config carries the decoded typed
// configuration; Degraded marks cards whose type is unknown or whose required
// values are missing/malformed.
type CardView struct {
	ID         string `json:"id"`
	CardTypeID string `json:"cardTypeId"`
	Config     any    `json:"config,omitempty"`
	Degraded   bool   `json:"degraded,omitempty"`
}

// RenderedDashboard is the composition entry point's output: provider
// bindings in their fixed nesting order (outermost first), the sequenced card
// list, and the dashboard-wide currency preference.
type RenderedDashboard struct {
	Dashboard  Dashboard          `json:"dashboard"`
	IsOwner    bool               `json:"isOwner"`
	Providers  []ProviderBinding  `json:"providers"`
	Slots      []Slot             `json:"slots"`
	Preference CurrencyPreference `json:"currencyPreference"`
	Errors     []RenderError      `json:"errors,omitempty"`
}

// RenderError records a contained, non-fatal failure scoped to a single card
// or domain contribution.
type RenderError struct {
	CardID     string     `json:"cardId,omitempty"`
	CardTypeID string     `json:"cardTypeId,omitempty"`
	Domain     DataDomain `json:"domain,omitempty"`
	Message    string     `json:"message"`
}
