package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"crypto_dashboard/internal/entity"
	"crypto_dashboard/internal/pkg/utils"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// NanoRPCClient talks to a nano or banano node's HTTP RPC. Both chains share
// the accounts_balances action; only the endpoint and raw divisor differ.
type NanoRPCClient struct {
	client          *fasthttp.Client
	endpoint        string
	timeout         time.Duration
	logger          *zap.Logger
	maxPerBatchCall int
}

// NewNanoRPCClient creates a NanoRPCClient against the given node endpoint.
func NewNanoRPCClient(endpoint string, timeout time.Duration, maxPerBatchCall int, logger *zap.Logger) *NanoRPCClient {
	if maxPerBatchCall <= 0 {
		maxPerBatchCall = 50
	}
	return &NanoRPCClient{
		client:          &fasthttp.Client{},
		endpoint:        strings.TrimRight(endpoint, "/"),
		timeout:         timeout,
		logger:          logger.Named("NanoRPCClient"),
		maxPerBatchCall: maxPerBatchCall,
	}
}

// GetBalances fetches raw balances for exactly the given address set,
// splitting oversized sets into batch calls.
func (c *NanoRPCClient) GetBalances(ctx context.Context, addresses []string) (map[string]entity.NanoRawBalance, error) {
	if len(addresses) == 0 {
		return map[string]entity.NanoRawBalance{}, nil
	}

	balances := make(map[string]entity.NanoRawBalance, len(addresses))
	for _, batch := range utils.BatchStrings(addresses, c.maxPerBatchCall) {
		resp, err := c.accountsBalances(ctx, batch)
		if err != nil {
			return nil, err
		}
		for addr, raw := range resp.Balances {
			balances[addr] = raw
		}
	}
	return balances, nil
}

func (c *NanoRPCClient) accountsBalances(ctx context.Context, addresses []string) (entity.NanoBalancesResponse, error) {
	payload, err := json.Marshal(entity.NanoBalancesRequest{
		Action:   "accounts_balances",
		Accounts: addresses,
	})
	if err != nil {
		return entity.NanoBalancesResponse{}, fmt.Errorf("marshalling accounts_balances request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(c.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(payload)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		return entity.NanoBalancesResponse{}, fmt.Errorf("executing accounts_balances request to %s: %w", c.endpoint, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return entity.NanoBalancesResponse{}, fmt.Errorf("node RPC request to %s failed with status %d", c.endpoint, resp.StatusCode())
	}

	var parsed entity.NanoBalancesResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return entity.NanoBalancesResponse{}, fmt.Errorf("unmarshalling accounts_balances response: %w", err)
	}
	if parsed.Error != "" {
		return entity.NanoBalancesResponse{}, fmt.Errorf("node RPC error: %s", parsed.Error)
	}

	c.logger.Debug("fetched account balances",
		zap.Int("requested", len(addresses)),
		zap.Int("returned", len(parsed.Balances)))
	return parsed, nil
}
