package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned when the Confluence API responds with a non-2xx status.
// Body is read best-effort and has credentials redacted before it can reach
// a log line or an agent-visible error message.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %s", statusMessage(e.StatusCode), e.Status)
	}
	return fmt.Sprintf("%s: %s: %s", statusMessage(e.StatusCode), e.Status, e.Body)
}

// RequestError is returned when every attempt failed before a response was
// received, so there is no HTTP status to report.
type RequestError struct {
	Attempts int
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// statusMessage maps a status code to a human-readable error prefix.
func statusMessage(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "invalid request parameters"
	case http.StatusUnauthorized:
		return "authentication failed"
	case http.StatusForbidden:
		return "permission denied"
	case http.StatusNotFound:
		return "resource not found"
	case http.StatusConflict:
		return "version conflict (retry with latest version)"
	default:
		return "API error"
	}
}

// IsNotFound reports whether err is an upstream 404 response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsConflict reports whether err is an upstream 409 response, which the
// Confluence API uses to reject a stale page version.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// IsAuthFailure reports whether err is an upstream 401 or 403 response.
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}
