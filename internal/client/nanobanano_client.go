package client

import (
	"context"
	"strings"

	"crypto_dashboard/internal/entity"

	"golang.org/x/sync/errgroup"
)

// Raw-unit divisors for converting node balances to display units.
const (
	// NanoRawDivisor is 10^30.
	NanoRawDivisor = "1000000000000000000000000000000"
	// BananoRawDivisor is 10^29.
	BananoRawDivisor = "100000000000000000000000000000"
)

// DivisorFor returns the raw divisor for an address based on its prefix.
func DivisorFor(address string) string {
	if strings.HasPrefix(address, "ban_") {
		return BananoRawDivisor
	}
	return NanoRawDivisor
}

// NanoBananoClient routes one mixed address set to the right node: ban_
// prefixed addresses to the banano node, everything else to the nano node.
// Implements port.BalanceClient.
type NanoBananoClient struct {
	nano   *NanoRPCClient
	banano *NanoRPCClient
}

// NewNanoBananoClient combines a nano and a banano node client.
func NewNanoBananoClient(nano, banano *NanoRPCClient) *NanoBananoClient {
	return &NanoBananoClient{nano: nano, banano: banano}
}

// GetBalances fetches raw balances for exactly the given address set, one
// batched call per chain, concurrently.
func (c *NanoBananoClient) GetBalances(ctx context.Context, addresses []string) (map[string]entity.NanoRawBalance, error) {
	var nanoAddrs, bananoAddrs []string
	for _, addr := range addresses {
		if strings.HasPrefix(addr, "ban_") {
			bananoAddrs = append(bananoAddrs, addr)
		} else {
			nanoAddrs = append(nanoAddrs, addr)
		}
	}

	merged := make(map[string]entity.NanoRawBalance, len(addresses))
	var nanoResult, bananoResult map[string]entity.NanoRawBalance

	g, gctx := errgroup.WithContext(ctx)
	if len(nanoAddrs) > 0 {
		g.Go(func() error {
			var err error
			nanoResult, err = c.nano.GetBalances(gctx, nanoAddrs)
			return err
		})
	}
	if len(bananoAddrs) > 0 {
		g.Go(func() error {
			var err error
			bananoResult, err = c.banano.GetBalances(gctx, bananoAddrs)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for addr, raw := range nanoResult {
		merged[addr] = raw
	}
	for addr, raw := range bananoResult {
		merged[addr] = raw
	}
	return merged, nil
}
