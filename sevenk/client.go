package sevenk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// ContentTypeJSON is the content type for JSON.
	ContentTypeJSON = "application/json"

	// DefaultAPIURL is the aggregator API base url.
	DefaultAPIURL = "https://api.7k.ag"
	// DefaultPricesURL is the prices API base url.
	DefaultPricesURL = "https://prices.7k.ag"
	// DefaultStatsURL is the statistics API base url.
	DefaultStatsURL = "https://statistic.7k.ag"
)

type (
	// Client is a 7k aggregator client that can be used to fetch quotes,
	// prices, swap history and the exchange configuration.
	Client struct {
		client *http.Client

		apiURL    string
		pricesURL string
		statsURL  string

		endpointQuote   string
		endpointConfig  string
		endpointPrice   string
		endpointHistory string
	}

	// ClientOption is a function that can be used to configure a 7k client.
	ClientOption func(*Client)
)

// NewClient returns a new 7k client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},

		apiURL:    DefaultAPIURL,
		pricesURL: DefaultPricesURL,
		statsURL:  DefaultStatsURL,

		endpointQuote:   "/quote",
		endpointConfig:  "/config",
		endpointPrice:   "/price",
		endpointHistory: "/trading-history",
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithAPIURL sets the aggregator API base url.
func WithAPIURL(apiURL string) ClientOption {
	return func(c *Client) {
		if apiURL != "" {
			c.apiURL = strings.TrimRight(apiURL, "/")
		}
	}
}

// WithPricesURL sets the prices API base url.
func WithPricesURL(pricesURL string) ClientOption {
	return func(c *Client) {
		if pricesURL != "" {
			c.pricesURL = strings.TrimRight(pricesURL, "/")
		}
	}
}

// WithStatsURL sets the statistics API base url.
func WithStatsURL(statsURL string) ClientOption {
	return func(c *Client) {
		if statsURL != "" {
			c.statsURL = strings.TrimRight(statsURL, "/")
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

// get makes a GET request to the given url with the given parameters
// and decodes the JSON response into v.
func (c *Client) get(ctx context.Context, rawURL string, params url.Values, v interface{}) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	if len(params) > 0 {
		parsedURL.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedURL.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create GET request: %w", err)
	}
	req.Header.Set("Accept", ContentTypeJSON)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make GET request: %w", err)
	}

	return c.parseResponse(resp, v)
}

// post makes a POST request to the specified URL with the given parameters
// and decodes the JSON response into v.
func (c *Client) post(ctx context.Context, rawURL string, params, v interface{}) error {
	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal POST params: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create POST request: %w", err)
	}
	req.Header.Set("Content-Type", ContentTypeJSON)
	req.Header.Set("Accept", ContentTypeJSON)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make POST request: %w", err)
	}

	return c.parseResponse(resp, v)
}

// parseResponse parses the response body into v and closes it.
func (c *Client) parseResponse(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status code: %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
