// Package transport performs HTTP requests against the Confluence API with a
// bounded per-attempt timeout, exponential-backoff retry on transient
// failures, and credential sanitization of surfaced error bodies.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/olgasafonova/confluence-mcp-server/metrics"
)

const (
	// AttemptTimeout bounds each individual request attempt.
	AttemptTimeout = 15 * time.Second

	// MaxAttempts is the total number of attempts per request
	// (one initial call plus two retries).
	MaxAttempts = 3

	// baseBackoff is the delay before the first retry; it doubles on each
	// subsequent retry: 500ms, then 1s.
	baseBackoff = 500 * time.Millisecond

	// maxErrorBody caps how much of an upstream error body an APIError carries.
	maxErrorBody = 512
)

// DelayFunc waits for d or until ctx is done. The retry loop takes it as a
// dependency so backoff timing is testable without wall-clock waits.
type DelayFunc func(ctx context.Context, d time.Duration) error

func sleepDelay(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Client performs HTTP requests with retries. Construct with NewClient.
type Client struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
	delay      DelayFunc
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.HTTPClient = c
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) Option {
	return func(client *Client) {
		client.Logger = l
	}
}

// WithDelay sets the function used to wait between retries
func WithDelay(d DelayFunc) Option {
	return func(client *Client) {
		client.delay = d
	}
}

// NewClient creates a transport client with default settings
func NewClient(opts ...Option) *Client {
	c := &Client{
		HTTPClient: newHTTPClient(),
		Logger:     slog.Default(),
		delay:      sleepDelay,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Request describes a single Confluence API call.
type Request struct {
	Method    string
	URL       string
	Header    http.Header
	Body      []byte
	Operation string // metrics and log label, e.g. "search"
}

// Do performs the request. Attempts that fail before a response is received
// and responses with status >=500 are retried with exponential backoff; 4xx
// responses are terminal and surfaced as *APIError immediately. When every
// attempt fails without a response, Do returns *RequestError.
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < MaxAttempts; attempt++ {
		if attempt > 0 {
			backoff := baseBackoff << (attempt - 1)
			metrics.APIRetries.WithLabelValues(req.Operation).Inc()
			if err := c.delay(ctx, backoff); err != nil {
				return nil, fmt.Errorf("request canceled during backoff: %w", err)
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, AttemptTimeout)
		httpReq, err := c.newAttemptRequest(attemptCtx, req)
		if err != nil {
			cancel()
			return nil, err
		}

		resp, err := c.HTTPClient.Do(httpReq)
		if err != nil {
			cancel()
			if ctx.Err() != nil {
				return nil, fmt.Errorf("request canceled: %w", ctx.Err())
			}
			lastErr = err
			c.Logger.Warn("Request failed, retrying",
				"operation", req.Operation,
				"attempt", attempt+1,
				"error", err)
			continue
		}

		body, readErr := readAndClose(resp)
		cancel()

		if resp.StatusCode >= 500 {
			lastErr = newAPIError(resp, body)
			c.Logger.Warn("Server error, retrying",
				"operation", req.Operation,
				"status", resp.StatusCode,
				"attempt", attempt+1)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, newAPIError(resp, body)
		}

		if readErr != nil {
			lastErr = fmt.Errorf("failed to read response: %w", readErr)
			continue
		}

		return body, nil
	}

	var apiErr *APIError
	if errors.As(lastErr, &apiErr) {
		return nil, apiErr
	}
	return nil, &RequestError{Attempts: MaxAttempts, Err: lastErr}
}

// newAttemptRequest builds the http.Request for one attempt. The body reader
// is created fresh so retries never reuse a drained reader.
func (c *Client) newAttemptRequest(ctx context.Context, req Request) (*http.Request, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", "confluence-mcp-server/1.0")
	for key, values := range req.Header {
		httpReq.Header[key] = values
	}

	return httpReq, nil
}

// newAPIError builds an APIError from a non-2xx response. The body is
// best-effort: whatever was read is sanitized and truncated.
func newAPIError(resp *http.Response, body []byte) *APIError {
	return &APIError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       truncate(SanitizeCredentials(string(body)), maxErrorBody),
	}
}

// readAndClose reads the response body and closes it
func readAndClose(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return body, err
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// newHTTPClient creates an HTTP client with tuned transport settings.
// No client-level timeout is set; cancellation is per attempt via context.
func newHTTPClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       120 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{Transport: transport}
}
