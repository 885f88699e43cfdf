// Package confluence implements the Confluence Cloud and Server/Data Center
// content API used by the MCP tools: searching pages with CQL, reading page
// bodies in storage format, and creating or updating pages with optimistic
// versioning. A Client is safe for concurrent use.
package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/olgasafonova/confluence-mcp-server/internal/transport"
	"github.com/olgasafonova/confluence-mcp-server/metrics"
)

// Client talks to a single Confluence deployment. The REST base and the
// web-UI base are derived from the configured mode once at construction:
// Cloud nests both under /wiki, Server/Data Center serves them at the root.
type Client struct {
	config    *Config
	transport *transport.Client
	logger    *slog.Logger

	apiBase string
	uiBase  string
}

// ClientOption configures the underlying HTTP transport.
type ClientOption = transport.Option

// NewClient builds a client for the deployment described by config.
func NewClient(config *Config, logger *slog.Logger, opts ...ClientOption) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	apiBase := config.BaseURL + "/rest/api"
	uiBase := config.BaseURL
	if config.Mode == ModeCloud {
		apiBase = config.BaseURL + "/wiki/rest/api"
		uiBase = config.BaseURL + "/wiki"
	}

	return &Client{
		config:    config,
		transport: transport.NewClient(append([]transport.Option{transport.WithLogger(logger)}, opts...)...),
		logger:    logger,
		apiBase:   apiBase,
		uiBase:    uiBase,
	}
}

// BaseURL returns the configured site root.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// doRequest performs one authenticated API call and decodes the JSON
// response into out (which may be nil for calls without a body).
func (c *Client) doRequest(ctx context.Context, op, method, endpoint string, payload any, out any) error {
	header := http.Header{}
	header.Set("Authorization", c.config.AuthHeader)

	var body []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = encoded
		header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	respBody, err := c.transport.Do(ctx, transport.Request{
		Method:    method,
		URL:       endpoint,
		Header:    header,
		Body:      body,
		Operation: op,
	})
	duration := time.Since(start).Seconds()

	if err != nil {
		metrics.RecordAPICall(op, duration, false, errorCode(err))
		if transport.IsAuthFailure(err) {
			metrics.AuthFailures.WithLabelValues(authFailureReason(err)).Inc()
		}
		return err
	}
	metrics.RecordAPICall(op, duration, true, "")

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(bytes.NewReader(respBody)).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorCode maps a transport error to a metric label.
func errorCode(err error) string {
	var apiErr *transport.APIError
	if errors.As(err, &apiErr) {
		return strconv.Itoa(apiErr.StatusCode)
	}
	var reqErr *transport.RequestError
	if errors.As(err, &reqErr) {
		return "network"
	}
	return "internal"
}

func authFailureReason(err error) string {
	var apiErr *transport.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
		return "forbidden"
	}
	return "unauthorized"
}

// clampLimit keeps a requested result count inside [1, MaxLimit].
func clampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// pageURL resolves the browser URL for a content object. Absolute webui
// links pass through untouched; relative ones are prefixed without doubling
// the /wiki segment on Cloud; content without a webui link gets the
// viewpage fallback.
func (c *Client) pageURL(ct *Content) string {
	link := ""
	if ct.Links != nil {
		link = ct.Links.WebUI
	}
	if link == "" {
		return c.uiBase + "/pages/viewpage.action?pageId=" + ct.ID
	}
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	if c.config.Mode == ModeCloud && strings.HasPrefix(link, "/wiki/") {
		return c.config.BaseURL + link
	}
	return c.uiBase + link
}

// toPage converts an API content object into a page summary.
func (c *Client) toPage(ct *Content) Page {
	page := Page{
		ID:    ct.ID,
		Type:  ct.Type,
		Title: ct.Title,
		URL:   c.pageURL(ct),
	}
	if ct.Space != nil {
		page.SpaceKey = ct.Space.Key
	}
	if ct.Version != nil {
		number := ct.Version.Number
		page.Version = &number
	}
	return page
}
