package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"crypto_dashboard/internal/entity"
	"crypto_dashboard/internal/pkg/utils"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CMCClient talks to the CoinMarketCap-style quotes API. One upstream call
// is made per conversion currency; results are merged into a single record
// per coin with all requested currencies in its quote map.
type CMCClient struct {
	client        *fasthttp.Client
	baseURL       string
	apiKey        string
	timeout       time.Duration
	limiter       *rate.Limiter
	logger        *zap.Logger
	maxIDsPerCall int
}

// NewCMCClient creates a CMCClient. maxIDsPerCall bounds the id list of a
// single request; larger requirement sets are split into batches.
func NewCMCClient(baseURL, apiKey string, timeout time.Duration, rps float64, maxIDsPerCall int, logger *zap.Logger) *CMCClient {
	if maxIDsPerCall <= 0 {
		maxIDsPerCall = 100
	}
	if rps <= 0 {
		rps = 5
	}
	return &CMCClient{
		client:        &fasthttp.Client{},
		baseURL:       strings.TrimRight(baseURL, "/"),
		apiKey:        apiKey,
		timeout:       timeout,
		limiter:       rate.NewLimiter(rate.Limit(rps), 1),
		logger:        logger.Named("CMCClient"),
		maxIDsPerCall: maxIDsPerCall,
	}
}

// GetQuotes fetches quote records for exactly the given id set, in every
// requested conversion currency.
func (c *CMCClient) GetQuotes(ctx context.Context, ids []int64, convert []string) (map[int64]entity.CMCCoinData, error) {
	if len(ids) == 0 {
		return map[int64]entity.CMCCoinData{}, nil
	}
	if len(convert) == 0 {
		convert = []string{"USD"}
	}

	merged := make(map[int64]entity.CMCCoinData, len(ids))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, batch := range utils.BatchInt64s(ids, c.maxIDsPerCall) {
		for _, currency := range convert {
			batch, currency := batch, currency
			g.Go(func() error {
				resp, err := c.fetchQuotes(gctx, batch, currency)
				if err != nil {
					return err
				}
				mu.Lock()
				defer mu.Unlock()
				for key, coin := range resp.Data {
					id, errConv := strconv.ParseInt(key, 10, 64)
					if errConv != nil {
						continue
					}
					existing, ok := merged[id]
					if !ok {
						existing = coin
						existing.Quote = make(map[string]entity.CMCQuote, len(convert))
					}
					for cur, quote := range coin.Quote {
						existing.Quote[cur] = quote
					}
					merged[id] = existing
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return merged, nil
}

// GetGlobalMetrics fetches market-wide totals and the fear/greed index in
// parallel and merges them into one record.
func (c *CMCClient) GetGlobalMetrics(ctx context.Context, convert string) (entity.GlobalMetrics, error) {
	if convert == "" {
		convert = "USD"
	}

	var metricsResp entity.CMCGlobalMetricsResponse
	var fearGreedResp entity.CMCFearGreedResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		url := fmt.Sprintf("%s/v1/global-metrics/quotes/latest?convert=%s", c.baseURL, convert)
		return c.getJSON(gctx, url, &metricsResp)
	})
	g.Go(func() error {
		url := fmt.Sprintf("%s/v3/fear-and-greed/latest", c.baseURL)
		return c.getJSON(gctx, url, &fearGreedResp)
	})
	if err := g.Wait(); err != nil {
		return entity.GlobalMetrics{}, err
	}

	quote := metricsResp.Data.Quote[convert]
	return entity.GlobalMetrics{
		BtcDominance:   metricsResp.Data.BtcDominance,
		EthDominance:   metricsResp.Data.EthDominance,
		TotalMarketCap: quote.TotalMarketCap,
		TotalVolume24h: quote.TotalVolume24h,
		FearGreedValue: fearGreedResp.Data.Value,
		FearGreedClass: fearGreedResp.Data.ValueClassification,
		Currency:       convert,
	}, nil
}

func (c *CMCClient) fetchQuotes(ctx context.Context, ids []int64, convert string) (entity.CMCQuotesResponse, error) {
	idParts := make([]string, len(ids))
	for i, id := range ids {
		idParts[i] = strconv.FormatInt(id, 10)
	}
	url := fmt.Sprintf("%s/v2/cryptocurrency/quotes/latest?id=%s&convert=%s",
		c.baseURL, strings.Join(idParts, ","), convert)

	var resp entity.CMCQuotesResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return entity.CMCQuotesResponse{}, err
	}
	if resp.Status.ErrorCode != 0 {
		return entity.CMCQuotesResponse{}, fmt.Errorf("quotes API error %d: %s", resp.Status.ErrorCode, resp.Status.ErrorMessage)
	}
	if resp.Data == nil {
		return entity.CMCQuotesResponse{}, fmt.Errorf("quotes API returned no data for %d ids", len(ids))
	}
	return resp, nil
}

func (c *CMCClient) getJSON(ctx context.Context, url string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-CMC_PRO_API_KEY", c.apiKey)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return fmt.Errorf("executing request to %s: %w", url, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			return fmt.Errorf("executing request to %s: %w", url, err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Warn("quotes API request failed",
			zap.String("url", url),
			zap.Int("statusCode", resp.StatusCode()))
		return fmt.Errorf("request to %s failed with status %d", url, resp.StatusCode())
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("unmarshalling response from %s: %w", url, err)
	}
	return nil
}
