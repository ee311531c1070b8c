package prixe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.prixe.io"

// APIError is the normalized error for any failure the Prixe service
// reports. Message is the service-provided error text when the error
// body was parseable JSON; otherwise only StatusCode is set.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("prixe: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("prixe: http status %d", e.StatusCode)
}

// Client is a thin client for the Prixe stock API. All endpoints are
// bearer-authenticated JSON POSTs. The client is stateless across calls
// and safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client against the production API.
func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, DefaultBaseURL)
}

// NewClientWithBaseURL creates a client against a custom base URL.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// do issues a POST to endpoint with payload as the JSON body and decodes
// the response into out. Non-2xx responses become an *APIError; transport
// failures are returned wrapped. No retries.
func (c *Client) do(ctx context.Context, endpoint string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errBody) == nil && errBody.Error != "" {
			return &APIError{Message: errBody.Error, StatusCode: resp.StatusCode}
		}
		return &APIError{StatusCode: resp.StatusCode}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
		}
	}
	return nil
}

// LastSold returns the current quote for a ticker.
func (c *Client) LastSold(ctx context.Context, ticker string) (*Quote, error) {
	var quote Quote
	if err := c.do(ctx, "/api/last_sold", map[string]string{"ticker": ticker}, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// HistoricalPrices returns candle data for a ticker between start and end
// (unix seconds) at the given interval, e.g. "1d".
func (c *Client) HistoricalPrices(ctx context.Context, ticker string, start, end int64, interval string) (*ChartResponse, error) {
	payload := map[string]interface{}{
		"ticker":     ticker,
		"start_date": start,
		"end_date":   end,
		"interval":   interval,
	}
	var chart ChartResponse
	if err := c.do(ctx, "/api/price", payload, &chart); err != nil {
		return nil, err
	}
	return &chart, nil
}

// Search looks up securities by free-text query.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	var results []SearchResult
	if err := c.do(ctx, "/api/search", map[string]string{"query": query}, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// News returns recent news articles for a ticker.
func (c *Client) News(ctx context.Context, ticker string) (*NewsResponse, error) {
	var news NewsResponse
	if err := c.do(ctx, "/api/news", map[string]string{"ticker": ticker}, &news); err != nil {
		return nil, err
	}
	return &news, nil
}

// ParsePrice converts a formatted price string like "$1,234.56" to a float.
func ParsePrice(s string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0, fmt.Errorf("empty price string")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return v, nil
}

// EachTicker calls fn for every ticker in order, sleeping delay between
// calls to respect the service rate limit. A failing ticker is logged and
// skipped. Returns early if the context is cancelled.
func EachTicker(ctx context.Context, tickers []string, delay time.Duration, fn func(ticker string) error) error {
	for i, ticker := range tickers {
		if err := fn(ticker); err != nil {
			log.Printf("Request for %s failed: %v", ticker, err)
		}
		if i == len(tickers)-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil
}
