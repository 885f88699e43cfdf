package confluence

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

type getPageOptions struct {
	Expand string `url:"expand,omitempty"`
}

// GetPage retrieves a single page by content id. The default expand set
// includes the storage-format body; callers that only need metadata can
// pass a narrower set. A page without a storage body yields an empty
// BodyStorage rather than an error.
func (c *Client) GetPage(ctx context.Context, pageID, expand string) (*PageDetail, error) {
	if pageID == "" {
		return nil, NewValidationError("page_id", "", "a page id is required")
	}
	if expand == "" {
		expand = DefaultPageExpand
	}

	values, err := query.Values(getPageOptions{Expand: expand})
	if err != nil {
		return nil, fmt.Errorf("failed to encode page parameters: %w", err)
	}

	var ct Content
	endpoint := c.apiBase + "/content/" + url.PathEscape(pageID) + "?" + values.Encode()
	if err := c.doRequest(ctx, "get_page", "GET", endpoint, nil, &ct); err != nil {
		return nil, err
	}

	detail := &PageDetail{Page: c.toPage(&ct)}
	if ct.Body != nil && ct.Body.Storage != nil {
		detail.BodyStorage = ct.Body.Storage.Value
	}
	return detail, nil
}
