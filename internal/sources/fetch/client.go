// Package fetch provides the shared network fetch used by source adapters:
// a per-call timeout, a politeness rate limiter and an explicit retry policy.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/siria/internal/core/ports/driven"
	"github.com/custodia-labs/siria/internal/logger"
)

const (
	// DefaultTimeout bounds a single attempt.
	DefaultTimeout = 30 * time.Second

	// DefaultRate is the proactive request rate per client (requests/sec).
	DefaultRate = 2.0

	// UserAgent is sent with every request. Several sites reject unknown agents.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// maxBodyBytes caps a response body.
	maxBodyBytes = 16 << 20
)

// Verify interface compliance.
var _ driven.Fetcher = (*Client)(nil)

// Client fetches remote pages with retries. Each adapter owns its own Client.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	retry   RetryPolicy
	timeout time.Duration
	headers http.Header
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRetryPolicy replaces the default retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRateLimit sets the proactive request rate. A non-positive rate disables throttling.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers.Set(key, value) }
}

// NewClient creates a Client with the default policy, timeout and rate.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:    NewHTTPClient(),
		limiter: rate.NewLimiter(rate.Limit(DefaultRate), 1),
		retry:   DefaultRetryPolicy(),
		timeout: DefaultTimeout,
		headers: http.Header{},
	}
	c.headers.Set("User-Agent", UserAgent)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewHTTPClient returns an HTTP client with conservative dial and handshake timeouts.
// The per-call deadline is applied through the request context instead.
func NewHTTPClient() *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Transport: tr}
}

// Fetch returns the body of url.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	attempts, err := c.retry.Do(ctx, func(ctx context.Context) error {
		b, err := c.once(ctx, url)
		if err != nil {
			logger.Debug("fetch %s failed: %v", url, err)
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, &Error{URL: url, Attempts: attempts, Err: err}
	}
	return body, nil
}

// FetchJSON decodes the JSON body of url into out.
func (c *Client) FetchJSON(ctx context.Context, url string, out any) error {
	body, err := c.Fetch(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

func (c *Client) once(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, &requestError{err: err}
	}
	for k, v := range c.headers {
		req.Header[k] = v
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}

// requestError is a malformed request. It is never retried.
type requestError struct{ err error }

func (e *requestError) Error() string   { return e.err.Error() }
func (e *requestError) Unwrap() error   { return e.err }
func (e *requestError) Permanent() bool { return true }
