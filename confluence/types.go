package confluence

// Search limits
const (
	// DefaultLimit is the result count used when a search omits a limit
	DefaultLimit = 10

	// MaxLimit caps results per search call
	MaxLimit = 50

	// DefaultSearchExpand is the expand set requested for search results
	DefaultSearchExpand = "space,version"

	// DefaultPageExpand is the expand set requested for single-page reads
	DefaultPageExpand = "body.storage,version,space"
)

// ========== Result Types ==========

// Page is a page summary produced from an upstream content object.
// SpaceKey and Title are always present (empty rather than absent) so the
// JSON shape stays stable; Version is nil when the upstream omitted it.
type Page struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	SpaceKey string `json:"space_key"`
	URL      string `json:"url"`
	Version  *int   `json:"version,omitempty"`
}

// PageDetail is a Page plus its raw body in storage representation,
// passed through uninterpreted.
type PageDetail struct {
	Page
	BodyStorage string `json:"body_storage"`
}

// CurrentUser identifies the authenticated user. ID is the first non-empty
// of account id, user key, and username, so callers get one stable
// identifier across Cloud and Server deployments.
type CurrentUser struct {
	ID          string `json:"id"`
	AccountID   string `json:"account_id,omitempty"`
	Username    string `json:"username,omitempty"`
	UserKey     string `json:"user_key,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
}

// ========== Tool Argument Types ==========

// GetCurrentUserArgs has no parameters
type GetCurrentUserArgs struct{}

// SearchPagesArgs contains parameters for the guided page search
type SearchPagesArgs struct {
	Query    string `json:"query,omitempty" jsonschema_description:"Free-text search matched against page titles and content"`
	SpaceKey string `json:"space_key,omitempty" jsonschema_description:"Space key to search in (falls back to CONFLUENCE_SPACE_KEY)"`
	Limit    *int   `json:"limit,omitempty" jsonschema_description:"Maximum results (default 10, max 25)"`
}

// SearchPagesResult is the result of a guided page search
type SearchPagesResult struct {
	Pages []Page `json:"pages"`
	Count int    `json:"count"`
}

// ExecuteRawSearchArgs contains parameters for a raw CQL search
type ExecuteRawSearchArgs struct {
	Query  string `json:"query" jsonschema:"required" jsonschema_description:"CQL query string (e.g., 'space=DEV and type=page order by created desc')"`
	Limit  *int   `json:"limit,omitempty" jsonschema_description:"Maximum results (default 10, max 50)"`
	Expand string `json:"expand,omitempty" jsonschema_description:"Comma-separated expand set (default space,version)"`
}

// ExecuteRawSearchResult is the result of a raw CQL search
type ExecuteRawSearchResult struct {
	Pages []Page `json:"pages"`
	Count int    `json:"count"`
}

// GetPageArgs contains parameters for retrieving a single page
type GetPageArgs struct {
	PageID string `json:"page_id" jsonschema:"required" jsonschema_description:"Numeric content id of the page"`
	Expand string `json:"expand,omitempty" jsonschema_description:"Comma-separated expand set (default body.storage,version,space)"`
}

// CreatePageArgs contains parameters for creating a page
type CreatePageArgs struct {
	Title       string `json:"title" jsonschema:"required" jsonschema_description:"Page title"`
	BodyStorage string `json:"body_storage" jsonschema:"required" jsonschema_description:"Page body in Confluence storage format (XHTML)"`
	SpaceKey    string `json:"space_key,omitempty" jsonschema_description:"Space key to create in (falls back to CONFLUENCE_SPACE_KEY)"`
	ParentID    string `json:"parent_id,omitempty" jsonschema_description:"Content id of the parent page"`
}

// UpdatePageArgs contains parameters for updating a page
type UpdatePageArgs struct {
	PageID      string `json:"page_id" jsonschema:"required" jsonschema_description:"Numeric content id of the page to update"`
	BodyStorage string `json:"body_storage" jsonschema:"required" jsonschema_description:"New page body in Confluence storage format (XHTML)"`
	Title       string `json:"title,omitempty" jsonschema_description:"New title (keeps the current title when omitted)"`
	MinorEdit   *bool  `json:"minor_edit,omitempty" jsonschema_description:"Suppress notifications for this edit (default true)"`
	Message     string `json:"message,omitempty" jsonschema_description:"Optional change message for the page history"`
}

// ========== Confluence API Types ==========

// Content is a Confluence REST content object
type Content struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Status  string   `json:"status,omitempty"`
	Title   string   `json:"title"`
	Space   *Space   `json:"space,omitempty"`
	Version *Version `json:"version,omitempty"`
	Body    *Body    `json:"body,omitempty"`
	Links   *Links   `json:"_links,omitempty"`
}

// Space identifies the space a piece of content belongs to
type Space struct {
	Key  string `json:"key"`
	Name string `json:"name,omitempty"`
}

// Version carries the optimistic-versioning metadata of a content object
type Version struct {
	Number    int    `json:"number"`
	When      string `json:"when,omitempty"`
	Message   string `json:"message,omitempty"`
	MinorEdit bool   `json:"minorEdit,omitempty"`
}

// Body wraps the representations of a content body
type Body struct {
	Storage *Storage `json:"storage,omitempty"`
}

// Storage is the storage-format representation of a content body
type Storage struct {
	Value          string `json:"value"`
	Representation string `json:"representation,omitempty"`
}

// Links carries the web links Confluence attaches to content
type Links struct {
	WebUI string `json:"webui,omitempty"`
	Base  string `json:"base,omitempty"`
	Self  string `json:"self,omitempty"`
}

// SearchResponse is the envelope returned by /content/search
type SearchResponse struct {
	Results []Content `json:"results"`
	Start   int       `json:"start"`
	Limit   int       `json:"limit"`
	Size    int       `json:"size"`
}

// User is the identity object returned by /user/current
type User struct {
	Type        string `json:"type,omitempty"`
	Username    string `json:"username,omitempty"`
	UserKey     string `json:"userKey,omitempty"`
	AccountID   string `json:"accountId,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
}

// Ancestor references a parent page in a create payload
type Ancestor struct {
	ID string `json:"id"`
}

// CreateContentRequest is the POST /content payload
type CreateContentRequest struct {
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Space     Space      `json:"space"`
	Body      Body       `json:"body"`
	Ancestors []Ancestor `json:"ancestors,omitempty"`
}

// UpdateContentRequest is the PUT /content/{id} payload
type UpdateContentRequest struct {
	Type    string  `json:"type"`
	Title   string  `json:"title"`
	Version Version `json:"version"`
	Body    Body    `json:"body"`
}
