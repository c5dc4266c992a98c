// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/pdiddy/film-aggregator/pkg/types"
)

// Param is one query parameter. Slices of Param keep their order on the wire.
type Param struct {
	Key   string
	Value string
}

// Getter performs a GET and returns the full response body. Every pipeline
// stage talks to the network through this interface.
type Getter interface {
	Get(ctx context.Context, rawURL string, query []Param, headers map[string]string) ([]byte, http.Header, error)
}

// StatusError is returned when a provider answers with anything but 200.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
}

// Client implements Getter over net/http with a shared rate limiter and
// 429 backoff.
type Client struct {
	HTTP       *http.Client
	UserAgent  string
	MaxRetries int
	Limiter    *rate.Limiter
	Logger     *log.Logger
}

// NewClient builds a Client from cfg. A zero RequestsPerSecond disables
// rate limiting.
func NewClient(cfg types.HTTPConfig, logger *log.Logger) *Client {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &Client{
		HTTP:       &http.Client{Timeout: cfg.Timeout},
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
		Limiter:    rate.NewLimiter(limit, 1),
		Logger:     logger,
	}
}

// Get sends GET rawURL?query with headers and returns the body of a 200
// response. Header values in headers override the User-Agent default.
func (c *Client) Get(ctx context.Context, rawURL string, query []Param, headers map[string]string) ([]byte, http.Header, error) {
	target := rawURL
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		target = rawURL + sep + EncodeQuery(query)
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, nil, fmt.Errorf("GET %s: %w", rawURL, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := DoWithRetry(ctx, client, req, c.MaxRetries, c.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, resp.Header, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.Header, fmt.Errorf("reading body of %s: %w", rawURL, err)
	}
	return body, resp.Header, nil
}

// EncodeQuery renders params as a query string in the given order.
// url.Values would sort the keys.
func EncodeQuery(params []Param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
