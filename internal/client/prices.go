package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"solpocket/internal/model"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// PriceClient is a client for the external token price API
// (CoinGecko-compatible endpoints)
type PriceClient struct {
	baseURL string
	client  *http.Client
	limiter ratelimit.Limiter
	log     *zap.Logger
}

// NewPriceClient creates a price client. Requests are rate-limited to
// rps per second because the public price API throttles aggressively.
func NewPriceClient(baseURL string, rps int, log *zap.Logger) *PriceClient {
	if rps <= 0 {
		rps = 1
	}
	return &PriceClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: ratelimit.New(rps),
		log:     log,
	}
}

// GetPrices gets current prices for the given token ids in one
// vs-currency. Returns a map keyed by token id.
func (c *PriceClient) GetPrices(ctx context.Context, ids []string, vsCurrency string) (map[string]float64, error) {
	if len(ids) == 0 {
		return map[string]float64{}, nil
	}

	c.limiter.Take()

	reqURL := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s",
		c.baseURL,
		url.QueryEscape(strings.Join(ids, ",")),
		url.QueryEscape(vsCurrency),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build price request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get prices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get prices: status %d", resp.StatusCode)
	}

	// {"solana":{"usd":147.35},"usd-coin":{"usd":1.0}}
	var raw map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode prices: %w", err)
	}

	prices := make(map[string]float64, len(raw))
	for id, perCurrency := range raw {
		if price, ok := perCurrency[strings.ToLower(vsCurrency)]; ok {
			prices[id] = price
		}
	}

	return prices, nil
}

// GetHistory gets the historical price series for one token id over the
// past days, in one vs-currency.
func (c *PriceClient) GetHistory(ctx context.Context, id, vsCurrency string, days int) ([]model.BalanceHistoryEntry, error) {
	c.limiter.Take()

	reqURL := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=%s&days=%d",
		c.baseURL,
		url.PathEscape(id),
		url.QueryEscape(vsCurrency),
		days,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build history request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get history: status %d", resp.StatusCode)
	}

	// {"prices":[[1700000000000, 58.21], ...]}
	var raw struct {
		Prices [][2]float64 `json:"prices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}

	entries := make([]model.BalanceHistoryEntry, 0, len(raw.Prices))
	for _, point := range raw.Prices {
		entries = append(entries, model.BalanceHistoryEntry{
			Timestamp: time.UnixMilli(int64(point[0])),
			Value:     point[1],
		})
	}

	return entries, nil
}
