package tools

// AllTools contains all tool specifications for the Confluence MCP server.
// Tools are organized by category for easier maintenance.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// USER TOOLS
	// ==========================================================================
	{
		Name:     "get_current_user",
		Method:   "GetCurrentUser",
		Title:    "Get Current User",
		Category: "users",
		Description: `Get the identity the configured Confluence credentials belong to.

USE WHEN: User asks "who am I connected as", "check my Confluence access", or you need to verify credentials before a write.

NOT FOR: Looking up other users or page authors.

PARAMETERS: None

RETURNS: Account id (Cloud) or user key/username (Server), display name, and email.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// SEARCH TOOLS
	// ==========================================================================
	{
		Name:     "search_pages",
		Method:   "SearchPages",
		Title:    "Search Pages",
		Category: "search",
		Description: `Search Confluence pages by text, optionally within one space.

USE WHEN: User asks "find pages about X", "search the wiki for X", "is X documented", or doesn't know which page holds the information.

NOT FOR: Hand-written CQL queries (use execute_raw_search). Not for reading a page you already identified (use get_page).

PARAMETERS:
- query: Free text matched against titles and content (optional)
- space_key: Space to search in (optional, falls back to CONFLUENCE_SPACE_KEY)
- limit: Max results (default 10, max 25)

RETURNS: Page summaries with id, title, space key, version, and browser URL.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
		MaxLimit:   25,
	},
	{
		Name:     "execute_raw_search",
		Method:   "ExecuteRawSearch",
		Title:    "Execute Raw CQL Search",
		Category: "search",
		Description: `Run a raw CQL query verbatim for advanced searches.

USE WHEN: User provides CQL directly, or the search needs operators search_pages cannot express (labels, dates, ordering, contributors).

NOT FOR: Plain text searches (use search_pages - it escapes input for you). This tool does NOT escape the query.

PARAMETERS:
- query: CQL expression, e.g. 'space=DEV and type=page order by created desc' (required)
- limit: Max results (default 10, max 50)
- expand: Comma-separated expand set (default space,version)

RETURNS: Page summaries with id, title, space key, version, and browser URL.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
		MaxLimit:   50,
	},

	// ==========================================================================
	// READ TOOLS
	// ==========================================================================
	{
		Name:     "get_page",
		Method:   "GetPage",
		Title:    "Get Page",
		Category: "read",
		Description: `Retrieve one page with its full body in storage format.

USE WHEN: User says "show me page X", "read that page", or a search result needs its content fetched.

NOT FOR: Finding pages (use search_pages). The page id comes from search results or the page URL.

PARAMETERS:
- page_id: Numeric content id (required)
- expand: Comma-separated expand set (default body.storage,version,space)

RETURNS: Page metadata plus body_storage, the raw Confluence storage-format XHTML.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// WRITE TOOLS
	// ==========================================================================
	{
		Name:     "create_page",
		Method:   "CreatePage",
		Title:    "Create Page",
		Category: "write",
		Description: `Create a new Confluence page.

USE WHEN: User says "create a page", "write this up in Confluence", "add a new doc under X".

NOT FOR: Changing existing pages (use update_page).

PARAMETERS:
- title: Page title (required)
- body_storage: Body in Confluence storage format, XHTML-based (required)
- space_key: Target space (optional, falls back to CONFLUENCE_SPACE_KEY)
- parent_id: Content id of the parent page (optional)

RETURNS: The created page with its id, version 1, and browser URL.`,
		ReadOnly:    false,
		Destructive: false,
		Idempotent:  false,
		OpenWorld:   true,
	},
	{
		Name:     "update_page",
		Method:   "UpdatePage",
		Title:    "Update Page",
		Category: "write",
		Description: `Replace the body of an existing page.

USE WHEN: User says "update page X", "rewrite that section", "fix the content on this page".

NOT FOR: Creating pages (use create_page).

PARAMETERS:
- page_id: Numeric content id of the page (required)
- body_storage: New body in storage format - replaces the entire body (required)
- title: New title (optional, keeps the current title when omitted)
- minor_edit: Suppress watcher notifications (default true)
- message: Change message for the page history (optional)

WARNING: This overwrites the whole page body. Read the page first and include the parts that should survive.

RETURNS: The updated page with its incremented version number.`,
		ReadOnly:    false,
		Destructive: true,
		Idempotent:  false,
		OpenWorld:   true,
	},
}

// ToolsByCategory returns tools filtered by category.
func ToolsByCategory(category string) []ToolSpec {
	var result []ToolSpec
	for _, tool := range AllTools {
		if tool.Category == category {
			result = append(result, tool)
		}
	}
	return result
}
