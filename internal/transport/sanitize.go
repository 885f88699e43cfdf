package transport

import "regexp"

// Credential patterns redacted from upstream response bodies. Confluence
// error pages can echo request headers back, so anything that looks like an
// Authorization value is stripped before the body is surfaced.
var (
	basicCredRegex  = regexp.MustCompile(`Basic\s+[A-Za-z0-9+/=]+`)
	bearerCredRegex = regexp.MustCompile(`Bearer\s+[A-Za-z0-9._~+/-]+=*`)
)

// SanitizeCredentials replaces Basic and Bearer credential substrings in s
// with a placeholder so error text never leaks secrets.
func SanitizeCredentials(s string) string {
	s = basicCredRegex.ReplaceAllString(s, "Basic ***")
	s = bearerCredRegex.ReplaceAllString(s, "Bearer ***")
	return s
}
