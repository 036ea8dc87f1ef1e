// Package api implements the driven.SearchAPI port against the EPIC search
// HTTP API. All response-shape normalisation happens here; the rest of the
// application only sees domain types.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
	"github.com/epic-search/epicsearch-cli/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRate is the proactive client-side throttle (requests/second).
	DefaultRate = 5

	// HeaderRequestID carries the per-request correlation id.
	HeaderRequestID = "X-Request-ID"
)

// Client is the HTTP client wrapper for the EPIC search API: base URL,
// auth header injection, request correlation, rate limiting, and error
// normalisation.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokenSource oauth2.TokenSource
	limiter     *rate.Limiter
}

// NewClient creates a new API client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRate), 1),
	}
}

// WithToken sets the bearer token injected on every request.
func (c *Client) WithToken(token string) *Client {
	if token != "" {
		c.tokenSource = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	}
	return c
}

// WithTokenSource sets a refreshing token source for auth header injection.
func (c *Client) WithTokenSource(ts oauth2.TokenSource) *Client {
	c.tokenSource = ts
	return c
}

// WithHTTPClient overrides the underlying HTTP client. Useful for testing.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do issues a request and returns the raw response body.
// Transport failures map to domain.ErrAPIUnavailable, HTTP 429 to
// domain.ErrRateLimited, 404 to domain.ErrNotFound; other non-2xx statuses
// become *StatusError.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokenSource != nil {
		token, err := c.tokenSource.Token()
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}
		token.SetAuthHeader(req)
	}

	logger.Debug("API %s %s", method, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Context errors stay recognisable through the wrap.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrAPIUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: %s %s", domain.ErrRateLimited, method, path)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s %s", domain.ErrNotFound, method, path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, newStatusError(resp.StatusCode, raw)
	}

	return raw, nil
}
