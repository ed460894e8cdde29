package entity

import "math/big"

// NanoBalancesRequest is the node RPC accounts_balances action payload. The
// same shape serves nano and banano nodes.
type NanoBalancesRequest struct {
	Action   string   `json:"action"`
	Accounts []string `json:"accounts"`
}

// NanoBalancesResponse is the accounts_balances reply: raw balances keyed by
// account address. Raw amounts are decimal strings too large for int64.
type NanoBalancesResponse struct {
	Balances map[string]NanoRawBalance `json:"balances"`
	Error    string                    `json:"error,omitempty"`
}

// NanoRawBalance holds one account's raw-unit balance fields.
type NanoRawBalance struct {
	Balance    string `json:"balance"`
	Pending    string `json:"pending"`
	Receivable string `json:"receivable"`
}

// AccountBalance is one resolved chain balance served to cards, converted
// from raw units to the chain's display unit. Formatted is the exact decimal
// rendering of the raw amount, free of float rounding.
type AccountBalance struct {
	Address    string   `json:"address"`
	IsOwner    bool     `json:"isOwner"`
	Raw        *big.Int `json:"-"`
	Balance    float64  `json:"balance"`
	Receivable float64  `json:"receivable"`
	Formatted  string   `json:"formatted"`
}
