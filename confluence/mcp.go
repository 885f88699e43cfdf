package confluence

import "context"

// MCP adapters: one thin wrapper per tool, converting between tool argument
// structs and the client API. Handlers bind these methods so the client
// itself stays free of MCP types.

// GetCurrentUserMCP is the MCP wrapper for the get_current_user tool.
func (c *Client) GetCurrentUserMCP(ctx context.Context, _ GetCurrentUserArgs) (CurrentUser, error) {
	user, err := c.GetCurrentUser(ctx)
	if err != nil {
		return CurrentUser{}, err
	}
	return *user, nil
}

// SearchPagesMCP is the MCP wrapper for the search_pages tool.
func (c *Client) SearchPagesMCP(ctx context.Context, args SearchPagesArgs) (SearchPagesResult, error) {
	limit := DefaultLimit
	if args.Limit != nil {
		limit = *args.Limit
	}
	pages, err := c.SearchPages(ctx, args.Query, args.SpaceKey, limit)
	if err != nil {
		return SearchPagesResult{}, err
	}
	return SearchPagesResult{Pages: pages, Count: len(pages)}, nil
}

// ExecuteRawSearchMCP is the MCP wrapper for the execute_raw_search tool.
func (c *Client) ExecuteRawSearchMCP(ctx context.Context, args ExecuteRawSearchArgs) (ExecuteRawSearchResult, error) {
	limit := DefaultLimit
	if args.Limit != nil {
		limit = *args.Limit
	}
	pages, err := c.Search(ctx, args.Query, limit, args.Expand)
	if err != nil {
		return ExecuteRawSearchResult{}, err
	}
	return ExecuteRawSearchResult{Pages: pages, Count: len(pages)}, nil
}

// GetPageMCP is the MCP wrapper for the get_page tool.
func (c *Client) GetPageMCP(ctx context.Context, args GetPageArgs) (PageDetail, error) {
	detail, err := c.GetPage(ctx, args.PageID, args.Expand)
	if err != nil {
		return PageDetail{}, err
	}
	return *detail, nil
}

// CreatePageMCP is the MCP wrapper for the create_page tool.
func (c *Client) CreatePageMCP(ctx context.Context, args CreatePageArgs) (Page, error) {
	page, err := c.CreatePage(ctx, args)
	if err != nil {
		return Page{}, err
	}
	return *page, nil
}

// UpdatePageMCP is the MCP wrapper for the update_page tool.
func (c *Client) UpdatePageMCP(ctx context.Context, args UpdatePageArgs) (Page, error) {
	page, err := c.UpdatePage(ctx, args)
	if err != nil {
		return Page{}, err
	}
	return *page, nil
}
