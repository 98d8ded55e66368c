// Package httpclient provides an HTTP client that retries transient failures
// with exponential backoff. It is used for downloads that must survive a
// flaky connection, such as fetching the package manager installer.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/obentoo/wingetkit/internal/common/version"
)

var (
	// ErrMaxRetriesExceeded is returned when all retry attempts have failed
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
	// ErrRequestTimeout is returned when a request times out
	ErrRequestTimeout = errors.New("request timeout")
)

// RetryPolicy holds configuration for retry behavior.
type RetryPolicy struct {
	// MaxRetries is the number of attempts after the first one
	MaxRetries int
	// BaseDelay is the delay before the first retry
	BaseDelay time.Duration
	// MaxDelay caps the backoff
	MaxDelay time.Duration
	// Timeout applies to each request including its body. Zero means none.
	Timeout time.Duration
}

// DefaultRetryPolicy returns delays of 1s, 2s, 4s and no per-request
// timeout, since installer bundles are large.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   4 * time.Second,
	}
}

// Client wraps an http.Client with retry logic
type Client struct {
	client  *http.Client
	policy  RetryPolicy
	headers map[string]string
	// delayFunc waits between attempts; replaced in tests
	delayFunc func(ctx context.Context, d time.Duration) error
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithDelayFunc replaces the wait between attempts
func WithDelayFunc(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.delayFunc = fn }
}

// WithHeader adds a header sent with every request
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// New creates a client with the given retry policy
func New(policy RetryPolicy, opts ...Option) *Client {
	c := &Client{
		client:    &http.Client{Timeout: policy.Timeout},
		policy:    policy,
		headers:   map[string]string{"User-Agent": version.UserAgent()},
		delayFunc: sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy returns the retry policy in use
func (c *Client) Policy() RetryPolicy {
	return c.policy
}

// Do executes req, retrying network errors, 5xx and 429 responses.
// Any other response is returned to the caller unchanged.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.policy.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := c.delayFunc(ctx, c.backoff(attempt)); err != nil {
				return nil, err
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		attemptReq := req.Clone(ctx)
		for key, value := range c.headers {
			if attemptReq.Header.Get(key) == "" {
				attemptReq.Header.Set(key, value)
			}
		}

		resp, err := c.client.Do(attemptReq)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			if isTimeoutError(err) {
				lastErr = fmt.Errorf("%w: %v", ErrRequestTimeout, err)
			}
			continue
		}

		if retryable(resp.StatusCode) {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: status %d", resp.StatusCode)
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrMaxRetriesExceeded, lastErr)
}

// Get performs a GET request with retry logic
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

// backoff returns BaseDelay * 2^(attempt-1), capped at MaxDelay
func (c *Client) backoff(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	delay := c.policy.BaseDelay * time.Duration(1<<(attempt-1))
	if c.policy.MaxDelay > 0 && delay > c.policy.MaxDelay {
		delay = c.policy.MaxDelay
	}
	return delay
}

func retryable(statusCode int) bool {
	return statusCode >= 500 && statusCode < 600 || statusCode == http.StatusTooManyRequests
}

// isTimeoutError checks if an error is a timeout error.
func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	if errors.As(err, &te) {
		return te.Timeout()
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
