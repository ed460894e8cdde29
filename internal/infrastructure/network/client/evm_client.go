package client

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"crypto_dashboard/internal/domain/entity"
	networkdefinition "crypto_dashboard/internal/infrastructure/network/definition"

	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// GasClient serves gas price suggestions for the gas_tracker card over EVM
// JSON-RPC. Connections are dialed lazily per network and cached.
type GasClient struct {
	networks       *networkdefinition.Provider
	connectTimeout time.Duration
	callTimeout    time.Duration
	logger         *zap.Logger

	mu      sync.Mutex
	clients map[string]*ethclient.Client
}

// NewGasClient creates a GasClient over the given network table.
func NewGasClient(networks *networkdefinition.Provider, connectTimeout, callTimeout time.Duration, logger *zap.Logger) *GasClient {
	return &GasClient{
		networks:       networks,
		connectTimeout: connectTimeout,
		callTimeout:    callTimeout,
		logger:         logger.Named("GasClient"),
		clients:        make(map[string]*ethclient.Client),
	}
}

// SuggestGasPrice returns the raw wei suggestion for one network.
func (c *GasClient) SuggestGasPrice(ctx context.Context, network string) (*big.Int, error) {
	client, err := c.clientFor(network)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	price, err := client.SuggestGasPrice(callCtx)
	if err != nil {
		// Drop the cached connection so the next call redials, possibly
		// onto a fallback RPC.
		c.mu.Lock()
		delete(c.clients, network)
		c.mu.Unlock()
		return nil, fmt.Errorf("suggesting gas price on %s: %w", network, err)
	}
	return price, nil
}

func (c *GasClient) clientFor(network string) (*ethclient.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if client, ok := c.clients[network]; ok {
		return client, nil
	}

	def, ok := c.networks.Get(network)
	if !ok {
		return nil, fmt.Errorf("unknown network %q", network)
	}

	rpcURLs := append([]string{def.PrimaryRPCURL}, def.FallbackRPCURLs...)
	var lastErr error
	for _, rpcURL := range rpcURLs {
		ctx, cancel := context.WithTimeout(context.Background(), c.connectTimeout)
		client, err := ethclient.DialContext(ctx, rpcURL)
		cancel()
		if err == nil {
			c.logger.Info("connected to EVM RPC",
				zap.String("network", def.Identifier), zap.String("rpc", rpcURL))
			c.clients[network] = client
			return client, nil
		}
		lastErr = fmt.Errorf("connecting to RPC %s: %w", rpcURL, err)
	}
	return nil, fmt.Errorf("all RPC connection attempts failed for network %s: %w", def.Identifier, lastErr)
}

// GasSuggestionFor implements port.GasClient: the wei suggestion plus its
// gwei rendering for display.
func (c *GasClient) GasSuggestionFor(ctx context.Context, network string) (entity.GasSuggestion, error) {
	price, err := c.SuggestGasPrice(ctx, network)
	if err != nil {
		return entity.GasSuggestion{}, err
	}
	gwei, _ := new(big.Float).Quo(new(big.Float).SetInt(price), big.NewFloat(1e9)).Float64()
	return entity.GasSuggestion{
		Network:      network,
		GasPriceWei:  price.String(),
		GasPriceGwei: gwei,
	}, nil
}
