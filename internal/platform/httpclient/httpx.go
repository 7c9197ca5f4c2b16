// Package httpclient provides an HTTP client with bounded retry, rotating identity,
// optional request rate limiting and best-effort body decoding.
package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"onca/internal/platform/errors"
	"onca/internal/platform/logx"
)

// Client is an HTTP client with retry logic, rate limiting, and timeout support.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	identities  *IdentityPool
	logger      logx.Logger
	config      Config
}

// Config holds the configuration for the HTTP client.
type Config struct {
	// Timeout is the per-request timeout duration. 0 means no timeout.
	// Default: 30 seconds
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts after the first one.
	// Default: 3
	MaxRetries int

	// RetryBackoff is the initial backoff duration for retries.
	// Backoff doubles with each retry.
	// Default: 1 second
	RetryBackoff time.Duration

	// MaxRetryBackoff is the maximum backoff duration between retries.
	// Default: 30 seconds
	MaxRetryBackoff time.Duration

	// RetryStatuses lists the HTTP statuses that trigger a retry.
	// Default: 500, 502, 503, 504
	RetryStatuses []int

	// RetryNetworkErrors also retries transport failures (timeouts, resets).
	// Default: false
	RetryNetworkErrors bool

	// Identities rotates User-Agent and sets generic browser headers.
	// Default: NewIdentityPool()
	Identities *IdentityPool

	// RateLimit is the maximum requests per second.
	// 0 means no rate limiting.
	RateLimit float64

	// RateLimitBurst is the burst size for rate limiting.
	// Default: 1
	RateLimitBurst int

	// MaxBodyBytes caps how much of a response body is read. A larger body
	// fails with ErrBodyTooLarge instead of being cut. Negative means no cap.
	// Default: 32 MiB
	MaxBodyBytes int64
}

// DefaultMaxBodyBytes is the body cap applied when Config.MaxBodyBytes is zero.
const DefaultMaxBodyBytes int64 = 32 << 20

// ErrBodyTooLarge is returned when a response body exceeds MaxBodyBytes.
var ErrBodyTooLarge = errors.New("response body exceeds limit")

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:         30 * time.Second,
		MaxRetries:      3,
		RetryBackoff:    1 * time.Second,
		MaxRetryBackoff: 30 * time.Second,
		RetryStatuses:   defaultRetryStatuses(),
		RateLimitBurst:  1,
		MaxBodyBytes:    DefaultMaxBodyBytes,
	}
}

func defaultRetryStatuses() []int {
	return []int{
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
	}
}

// New creates a new HTTP client with the given configuration.
func New(config Config, logger logx.Logger) *Client {
	// Apply defaults for zero values
	if config.Timeout < 0 {
		config.Timeout = 0
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.RetryBackoff == 0 {
		config.RetryBackoff = 1 * time.Second
	}
	if config.MaxRetryBackoff == 0 {
		config.MaxRetryBackoff = 30 * time.Second
	}
	if len(config.RetryStatuses) == 0 {
		config.RetryStatuses = defaultRetryStatuses()
	}
	if config.Identities == nil {
		config.Identities = NewIdentityPool()
	}
	if config.RateLimitBurst <= 0 {
		config.RateLimitBurst = 1
	}
	if config.MaxBodyBytes == 0 {
		config.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if logger == nil {
		logger = logx.NewSilent()
	}

	var rateLimiter *rate.Limiter
	if config.RateLimit > 0 {
		rateLimiter = rate.NewLimiter(rate.Limit(config.RateLimit), config.RateLimitBurst)
	}

	return &Client{
		httpClient:  &http.Client{Timeout: config.Timeout},
		rateLimiter: rateLimiter,
		identities:  config.Identities,
		logger:      logger.With("component", "httpclient"),
		config:      config,
	}
}

// Fetch performs a GET request with the given query parameters merged into rawURL.
// Retryable statuses are retried with exponential backoff; every other non-2xx status
// is returned at once. Failures are *errors.FetchError values.
func (c *Client) Fetch(ctx context.Context, rawURL string, params url.Values) (*Response, error) {
	target, err := buildURL(rawURL, params)
	if err != nil {
		return nil, &errors.FetchError{URL: rawURL, Kind: errors.ErrInvalidInput, Cause: err}
	}

	var lastStatus int
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if c.rateLimiter != nil {
			if err := c.rateLimiter.Wait(ctx); err != nil {
				return nil, &errors.FetchError{URL: target, Attempts: attempt, Kind: errors.ErrTimeout, Cause: err}
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, &errors.FetchError{URL: target, Kind: errors.ErrInvalidInput, Cause: err}
		}
		c.identities.Apply(req)

		c.logger.Debug("HTTP request",
			"url", target,
			"attempt", attempt+1,
			"max_attempts", c.config.MaxRetries+1,
		)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		duration := time.Since(start)

		if err != nil {
			kind := classifyTransportError(err)
			c.logger.Warn("HTTP request failed",
				"url", target,
				"attempt", attempt+1,
				"error", err.Error(),
				"duration_ms", duration.Milliseconds(),
			)
			if c.config.RetryNetworkErrors && attempt < c.config.MaxRetries && ctx.Err() == nil {
				if berr := c.backoff(ctx, attempt); berr != nil {
					return nil, &errors.FetchError{URL: target, Attempts: attempt + 1, Kind: errors.ErrTimeout, Cause: berr}
				}
				continue
			}
			return nil, &errors.FetchError{URL: target, Attempts: attempt + 1, Kind: kind, Cause: err}
		}

		c.logger.Debug("HTTP response received",
			"url", target,
			"status", resp.StatusCode,
			"duration_ms", duration.Milliseconds(),
		)

		if c.isRetryableStatus(resp.StatusCode) {
			drain(resp)
			lastStatus = resp.StatusCode
			if attempt >= c.config.MaxRetries {
				break
			}
			c.logger.Warn("HTTP request returned retryable status",
				"url", target,
				"status", resp.StatusCode,
				"attempt", attempt+1,
			)
			if berr := c.backoff(ctx, attempt); berr != nil {
				return nil, &errors.FetchError{URL: target, StatusCode: lastStatus, Attempts: attempt + 1, Kind: errors.ErrTimeout, Cause: berr}
			}
			continue
		}

		if kind := CheckStatus(resp.StatusCode); kind != nil {
			drain(resp)
			return nil, &errors.FetchError{URL: target, StatusCode: resp.StatusCode, Attempts: attempt + 1, Kind: kind}
		}

		body, err := c.readBody(resp)
		if err != nil {
			return nil, &errors.FetchError{URL: target, StatusCode: resp.StatusCode, Attempts: attempt + 1, Kind: errors.ErrInvalidResponse, Cause: err}
		}

		return &Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       body,
		}, nil
	}

	return nil, &errors.FetchError{
		URL:        target,
		StatusCode: lastStatus,
		Attempts:   c.config.MaxRetries + 1,
		Kind:       CheckStatus(lastStatus),
	}
}

// readBody reads the whole body, converts the declared or sniffed charset
// to UTF-8 and drops whatever is still invalid. A body over MaxBodyBytes is
// an error, never a silently truncated document.
func (c *Client) readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	limit := c.config.MaxBodyBytes
	var reader io.Reader = resp.Body
	if limit > 0 {
		reader = io.LimitReader(resp.Body, limit+1)
	}

	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	if limit > 0 && int64(len(raw)) > limit {
		return nil, errors.Wrapf(ErrBodyTooLarge, "body larger than %d bytes", limit)
	}

	return DecodeBody(raw, resp.Header.Get("Content-Type")), nil
}

// DecodeBody converts raw to valid UTF-8 using the charset in contentType or
// the one sniffed from the content.
func DecodeBody(raw []byte, contentType string) []byte {
	if len(raw) == 0 {
		return raw
	}
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err == nil {
		if decoded, derr := io.ReadAll(r); derr == nil {
			raw = decoded
		}
	}
	return []byte(strings.ToValidUTF8(string(raw), ""))
}

// isRetryableStatus checks if an HTTP status code should trigger a retry.
func (c *Client) isRetryableStatus(status int) bool {
	for _, s := range c.config.RetryStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// backoff implements exponential backoff capped at MaxRetryBackoff.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	backoff := c.config.RetryBackoff * time.Duration(math.Pow(2, float64(attempt)))
	if backoff > c.config.MaxRetryBackoff {
		backoff = c.config.MaxRetryBackoff
	}

	c.logger.Debug("Backing off before retry",
		"attempt", attempt+1,
		"backoff_ms", backoff.Milliseconds(),
	)

	timer := time.NewTimer(backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// CheckStatus maps an HTTP status code to a platform sentinel; nil for 2xx.
func CheckStatus(status int) error {
	if status >= 200 && status < 300 {
		return nil
	}

	switch status {
	case http.StatusTooManyRequests:
		return errors.ErrRateLimit
	case http.StatusNotFound, http.StatusGone:
		return errors.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.ErrUnauthorized
	case http.StatusInternalServerError, http.StatusServiceUnavailable,
		http.StatusGatewayTimeout, http.StatusBadGateway:
		return errors.ErrServiceUnavailable
	default:
		return errors.Errorf("%w: unexpected status %d", errors.ErrInvalidResponse, status)
	}
}

// classifyTransportError maps a transport failure to a sentinel.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.ErrTimeout
	}
	return errors.ErrConnectionFailed
}

func buildURL(rawURL string, params url.Values) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("url %q is not absolute", rawURL)
	}
	if len(params) > 0 {
		q := u.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
}

// String returns a human-readable representation of the client configuration.
func (c *Client) String() string {
	return fmt.Sprintf("HTTPClient{timeout=%s, max_retries=%d, rate_limit=%.1f/s, identities=%d}",
		c.config.Timeout,
		c.config.MaxRetries,
		c.config.RateLimit,
		c.identities.Size(),
	)
}
