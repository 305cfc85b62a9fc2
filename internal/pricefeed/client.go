// Package pricefeed fetches commodity spot prices from an external
// goldapi-style JSON API. Responses are cached in-process so repeated
// refreshes within the TTL do not hit the provider.
package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Client talks to the spot-price provider.
type Client struct {
	baseURL    string
	apiKey     string
	cacheTTL   time.Duration
	httpClient *http.Client

	mu       sync.RWMutex
	cached   *SpotPrices
	cachedAt time.Time
}

// SpotPrices is one snapshot from the provider, USD per troy ounce.
type SpotPrices struct {
	GoldUsdPerOz   float64   `json:"gold_usd_per_oz"`
	SilverUsdPerOz float64   `json:"silver_usd_per_oz"`
	FetchedAt      time.Time `json:"fetched_at"`
}

// NewClient creates a price feed client.
func NewClient(baseURL, apiKey string, timeout, cacheTTL time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		cacheTTL:   cacheTTL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchSpotPrices returns the current gold and silver spot prices,
// serving from cache while the snapshot is fresh.
func (c *Client) FetchSpotPrices(ctx context.Context) (*SpotPrices, error) {
	c.mu.RLock()
	if c.cached != nil && time.Since(c.cachedAt) < c.cacheTTL {
		prices := *c.cached
		c.mu.RUnlock()
		return &prices, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check after acquiring the write lock.
	if c.cached != nil && time.Since(c.cachedAt) < c.cacheTTL {
		prices := *c.cached
		return &prices, nil
	}

	gold, err := c.fetchMetal(ctx, "XAU")
	if err != nil {
		return nil, fmt.Errorf("fetch gold price: %w", err)
	}
	silver, err := c.fetchMetal(ctx, "XAG")
	if err != nil {
		return nil, fmt.Errorf("fetch silver price: %w", err)
	}

	prices := &SpotPrices{
		GoldUsdPerOz:   gold,
		SilverUsdPerOz: silver,
		FetchedAt:      time.Now(),
	}
	c.cached = prices
	c.cachedAt = prices.FetchedAt

	out := *prices
	return &out, nil
}

func (c *Client) fetchMetal(ctx context.Context, symbol string) (float64, error) {
	url := fmt.Sprintf("%s/%s/USD", c.baseURL, symbol)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-access-token", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("provider status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Price float64 `json:"price"`
		Error string  `json:"error"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("parse response: %w", err)
	}
	if result.Error != "" {
		return 0, fmt.Errorf("provider error: %s", result.Error)
	}
	if result.Price <= 0 {
		return 0, fmt.Errorf("provider returned non-positive price for %s", symbol)
	}

	return result.Price, nil
}
