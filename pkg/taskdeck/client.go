package taskdeck

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
)

// Client is an HTTP client for the taskdeck API. It is safe for concurrent
// use; all calls share one session.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new taskdeck API client.
//
// Options:
//   - WithBaseURL: server root, optionally ending in /api (default: http://localhost:3001)
//   - WithHTTPClient: custom transport; a cookie jar is added if it has none
//   - WithTimeout: sets the HTTP client timeout (default: 30s)
func NewClient(opts ...ClientOption) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	u, err := url.Parse(cfg.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.baseURL)
	}

	httpClient := &http.Client{Timeout: cfg.timeout}
	if cfg.httpClient != nil {
		copied := *cfg.httpClient
		httpClient = &copied
	}
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.baseURL, "/"),
		http:    httpClient,
	}, nil
}

// Health checks if the server and its database are up.
func (c *Client) Health(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}

	err = c.do(req, "health check", http.StatusOK, nil)
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return ErrServerUnhealthy
	}
	return err
}
