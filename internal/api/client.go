// Package api is the client for the portfolio content API.
//
// Every request is retried with exponential backoff and each attempt runs
// under its own timeout. Successful payloads are kept in a read-through
// cache owned by the caller.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/d-kuro/termfolio/pkg/cache"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds a single request attempt.
	DefaultTimeout = 5 * time.Second
	// DefaultRetries is the total number of attempts per request.
	DefaultRetries = 3
	// DefaultBackoff is the delay before the first retry; it doubles after that.
	DefaultBackoff = 100 * time.Millisecond
	// DefaultCacheTTL is how long a payload stays fresh in a default cache.
	DefaultCacheTTL = 5 * time.Minute
)

// Client fetches portfolio resources from the content API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache[string, []byte]
	retries    int
	timeout    time.Duration
	backoff    time.Duration
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCache sets the response cache. Payloads are cached as raw JSON.
func WithCache(store *cache.Cache[string, []byte]) Option {
	return func(c *Client) {
		c.cache = store
	}
}

// WithRetries sets the total number of attempts per request.
func WithRetries(n int) Option {
	return func(c *Client) {
		c.retries = n
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithBackoff sets the base retry delay.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) {
		c.backoff = d
	}
}

// WithLogger sets the logger for request and cache diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the API rooted at baseURL.
// Without WithCache the client gets a private cache with DefaultCacheTTL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		retries:    DefaultRetries,
		timeout:    DefaultTimeout,
		backoff:    DefaultBackoff,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = cache.New[string, []byte](cache.TTL(DefaultCacheTTL))
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ClearCache drops every cached payload.
func (c *Client) ClearCache() {
	c.cache.Clear()
}

// getJSON serves key from the cache or fetches path, caches the payload
// and decodes it into T. Concurrent misses for the same key share one request.
func getJSON[T any](ctx context.Context, c *Client, key, path string) (T, error) {
	var out T

	body, ok := c.cache.Get(key)
	if ok {
		c.logger.Debug("cache hit", zap.String("key", key))
	} else {
		var err error
		body, err = c.cache.GetOrCompute(key, func() ([]byte, error) {
			c.logger.Debug("cache miss", zap.String("key", key))
			data, err := c.FetchWithRetry(ctx, c.baseURL+path, http.MethodGet)
			if err != nil {
				return nil, err
			}
			if !json.Valid(data) {
				return nil, &APIError{Message: "Invalid JSON response", Status: http.StatusBadGateway, Data: data}
			}
			return data, nil
		})
		if err != nil {
			return out, err
		}
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return out, nil
}
