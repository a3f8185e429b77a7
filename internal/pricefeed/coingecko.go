package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// Quote is a single BTC/USD observation from the upstream feed, already
// normalized to integer cents.
type Quote struct {
	PriceCents int64
	UpdatedAt  time.Time
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("coingecko API error (%d): %s", e.Status, e.Body)
}

// Client fetches spot prices from the CoinGecko simple-price endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// BTCPrice fetches the current bitcoin price in USD with the upstream
// last-updated timestamp.
func (c *Client) BTCPrice(ctx context.Context) (Quote, error) {
	query := url.Values{}
	query.Set("ids", "bitcoin")
	query.Set("vs_currencies", "usd")
	query.Set("include_last_updated_at", "true")
	query.Set("precision", "2")

	body, err := c.doRequest(ctx, "/simple/price", query)
	if err != nil {
		return Quote{}, err
	}

	var payload struct {
		Bitcoin struct {
			USD           float64 `json:"usd"`
			LastUpdatedAt int64   `json:"last_updated_at"`
		} `json:"bitcoin"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return Quote{}, fmt.Errorf("decode price payload: %w", err)
	}
	if payload.Bitcoin.USD <= 0 || payload.Bitcoin.LastUpdatedAt == 0 {
		return Quote{}, fmt.Errorf("malformed price payload: %s", string(body))
	}

	// Exact USD→cents conversion; float multiplication would occasionally
	// land on x.9999... and round the wrong way.
	cents := decimal.NewFromFloat(payload.Bitcoin.USD).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()

	return Quote{
		PriceCents: cents,
		UpdatedAt:  time.Unix(payload.Bitcoin.LastUpdatedAt, 0).UTC(),
	}, nil
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
