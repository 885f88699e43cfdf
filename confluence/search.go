package confluence

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-querystring/query"

	"github.com/olgasafonova/confluence-mcp-server/metrics"
)

// escapeCQL escapes a value for interpolation into a quoted CQL string.
// Backslashes must be doubled before quotes are escaped or the escape
// character itself would be reinterpreted.
func escapeCQL(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// buildSearchCQL assembles the CQL for a guided page search. The type=page
// clause is always present so other content types never leak into results.
func buildSearchCQL(searchQuery, spaceKey string) string {
	clauses := []string{"type=page"}
	if spaceKey != "" {
		clauses = append(clauses, fmt.Sprintf(`space="%s"`, escapeCQL(spaceKey)))
	}
	if text := strings.TrimSpace(searchQuery); text != "" {
		escaped := escapeCQL(text)
		clauses = append(clauses, fmt.Sprintf(`(title ~ "%s" OR text ~ "%s")`, escaped, escaped))
	}
	return strings.Join(clauses, " AND ")
}

// SearchPages runs a guided search restricted to pages. An empty spaceKey
// falls back to the configured default space; when neither is set the
// search spans all spaces the credentials can see.
func (c *Client) SearchPages(ctx context.Context, searchQuery, spaceKey string, limit int) ([]Page, error) {
	if spaceKey == "" {
		spaceKey = c.config.DefaultSpace
	}
	return c.Search(ctx, buildSearchCQL(searchQuery, spaceKey), limit, DefaultSearchExpand)
}

type searchOptions struct {
	CQL    string `url:"cql"`
	Limit  int    `url:"limit"`
	Expand string `url:"expand,omitempty"`
}

// Search executes a raw CQL query against the content search endpoint.
func (c *Client) Search(ctx context.Context, cql string, limit int, expand string) ([]Page, error) {
	if strings.TrimSpace(cql) == "" {
		return nil, NewValidationError("query", "", "a CQL query is required")
	}
	if expand == "" {
		expand = DefaultSearchExpand
	}

	values, err := query.Values(searchOptions{
		CQL:    cql,
		Limit:  clampLimit(limit),
		Expand: expand,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search parameters: %w", err)
	}

	var resp SearchResponse
	endpoint := c.apiBase + "/content/search?" + values.Encode()
	if err := c.doRequest(ctx, "search", "GET", endpoint, nil, &resp); err != nil {
		return nil, err
	}

	pages := make([]Page, 0, len(resp.Results))
	for i := range resp.Results {
		pages = append(pages, c.toPage(&resp.Results[i]))
	}
	metrics.SearchResults.Observe(float64(len(pages)))
	return pages, nil
}
