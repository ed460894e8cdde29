package entity

// NetworkDefinition holds the connection details for one EVM network the
// gas_tracker card can point at.
type NetworkDefinition struct {
	ChainID          uint64   `json:"chainId" yaml:"chainId"`
	Name             string   `json:"name" yaml:"name"`
	Identifier       string   `json:"identifier" yaml:"identifier"`
	NativeSymbol     string   `json:"nativeSymbol" yaml:"nativeSymbol"`
	Decimals         int32    `json:"decimals" yaml:"decimals"`
	PrimaryRPCURL    string   `json:"primaryRpcUrl" yaml:"primaryRpcUrl"`
	FallbackRPCURLs  []string `json:"fallbackRpcUrls,omitempty" yaml:"fallbackRpcUrls,omitempty"`
	BlockExplorerURL string   `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
}

// GasSuggestion is the gas_tracker card's payload for one network.
type GasSuggestion struct {
	Network      string  `json:"network"`
	GasPriceWei  string  `json:"gasPriceWei"`
	GasPriceGwei float64 `json:"gasPriceGwei"`
}
