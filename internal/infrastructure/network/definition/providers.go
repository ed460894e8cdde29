package networkdefinition

import (
	"strings"

	"crypto_dashboard/internal/domain/entity"
)

// Predefined network definitions for the gas_tracker card.
var (
	Ethereum = entity.NetworkDefinition{
		ChainID:          1,
		Name:             "Ethereum Mainnet",
		Identifier:       "ethereum",
		NativeSymbol:     "ETH",
		Decimals:         18,
		PrimaryRPCURL:    "https://ethereum-rpc.publicnode.com",
		FallbackRPCURLs:  []string{"https://rpc.ankr.com/eth", "https://ethereum.publicnode.com"},
		BlockExplorerURL: "https://etherscan.io",
	}
	Polygon = entity.NetworkDefinition{
		ChainID:          137,
		Name:             "Polygon PoS",
		Identifier:       "polygon",
		NativeSymbol:     "POL",
		Decimals:         18,
		PrimaryRPCURL:    "https://polygon-rpc.com",
		FallbackRPCURLs:  []string{"https://polygon.publicnode.com"},
		BlockExplorerURL: "https://polygonscan.com",
	}
	Base = entity.NetworkDefinition{
		ChainID:          8453,
		Name:             "Base",
		Identifier:       "base",
		NativeSymbol:     "ETH",
		Decimals:         18,
		PrimaryRPCURL:    "https://mainnet.base.org",
		FallbackRPCURLs:  []string{"https://base.publicnode.com"},
		BlockExplorerURL: "https://basescan.org",
	}
	Arbitrum = entity.NetworkDefinition{
		ChainID:          42161,
		Name:             "Arbitrum One",
		Identifier:       "arbitrum",
		NativeSymbol:     "ETH",
		Decimals:         18,
		PrimaryRPCURL:    "https://arb1.arbitrum.io/rpc",
		FallbackRPCURLs:  []string{"https://arbitrum-one.publicnode.com"},
		BlockExplorerURL: "https://arbiscan.io",
	}
)

// Provider serves the static network table.
type Provider struct {
	byIdentifier map[string]entity.NetworkDefinition
}

// NewProvider builds the provider over the predefined networks.
func NewProvider() *Provider {
	defs := []entity.NetworkDefinition{Ethereum, Polygon, Base, Arbitrum}
	byIdentifier := make(map[string]entity.NetworkDefinition, len(defs))
	for _, def := range defs {
		byIdentifier[def.Identifier] = def
	}
	return &Provider{byIdentifier: byIdentifier}
}

// Get returns a network definition by identifier, case-insensitively.
func (p *Provider) Get(identifier string) (entity.NetworkDefinition, bool) {
	def, ok := p.byIdentifier[strings.ToLower(identifier)]
	return def, ok
}

// All returns every known network definition.
func (p *Provider) All() []entity.NetworkDefinition {
	defs := make([]entity.NetworkDefinition, 0, len(p.byIdentifier))
	for _, def := range p.byIdentifier {
		defs = append(defs, def)
	}
	return defs
}
