package client

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"crypto_dashboard/internal/entity"

	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// RateAPIClient resolves normalized BASE/QUOTE tickers against an exchange
// rate API that serves all rates for one base per request. Tickers are
// grouped by base so n tickers cost at most distinct-bases requests.
type RateAPIClient struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewRateAPIClient creates a RateAPIClient.
func NewRateAPIClient(baseURL string, timeout time.Duration, rps float64, logger *zap.Logger) *RateAPIClient {
	if rps <= 0 {
		rps = 5
	}
	return &RateAPIClient{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger.Named("RateAPIClient"),
	}
}

// GetRates resolves exactly the given ticker set. Tickers a base's response
// does not cover are omitted from the result rather than failing the batch.
func (c *RateAPIClient) GetRates(ctx context.Context, tickers []string) (map[string]entity.FiatRate, error) {
	if len(tickers) == 0 {
		return map[string]entity.FiatRate{}, nil
	}

	quotesByBase := make(map[string][]string)
	for _, ticker := range tickers {
		parts := strings.SplitN(ticker, "/", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		base, quote := parts[0], parts[1]
		quotesByBase[base] = append(quotesByBase[base], quote)
	}

	bases := make([]string, 0, len(quotesByBase))
	for base := range quotesByBase {
		bases = append(bases, base)
	}
	sort.Strings(bases)

	rates := make(map[string]entity.FiatRate, len(tickers))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, base := range bases {
		base := base
		g.Go(func() error {
			resp, err := c.fetchBase(gctx, base)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for _, quote := range quotesByBase[base] {
				value, ok := resp.Rates[quote]
				if !ok {
					c.logger.Warn("rate API response missing quote currency",
						zap.String("base", base), zap.String("quote", quote))
					continue
				}
				ticker := base + "/" + quote
				rates[ticker] = entity.FiatRate{
					Ticker: ticker,
					Base:   base,
					Quote:  quote,
					Rate:   decimal.NewFromFloat(value),
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rates, nil
}

func (c *RateAPIClient) fetchBase(ctx context.Context, base string) (entity.RateResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return entity.RateResponse{}, fmt.Errorf("rate limiter: %w", err)
	}

	url := fmt.Sprintf("%s/latest?base=%s", c.baseURL, base)

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return entity.RateResponse{}, fmt.Errorf("executing request to %s: %w", url, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			return entity.RateResponse{}, fmt.Errorf("executing request to %s: %w", url, err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return entity.RateResponse{}, fmt.Errorf("rate API request to %s failed with status %d", url, resp.StatusCode())
	}

	var parsed entity.RateResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return entity.RateResponse{}, fmt.Errorf("unmarshalling rate response from %s: %w", url, err)
	}
	return parsed, nil
}
