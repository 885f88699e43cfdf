package confluence

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Deployment modes. Server and Data Center share an API shape, so the
// dc aliases collapse to ModeServer.
const (
	ModeCloud  = "cloud"
	ModeServer = "server"
)

// Resolved authentication modes
const (
	AuthBasic  = "basic"
	AuthBearer = "bearer"
)

// Config holds resolved Confluence connection settings. It is immutable once
// built; every invalid combination is rejected by LoadConfig before the
// server starts serving tools.
type Config struct {
	// BaseURL is the site root without a trailing slash
	// (e.g., https://example.atlassian.net)
	BaseURL string

	// Mode is the deployment topology: ModeCloud or ModeServer
	Mode string

	// AuthMode is the resolved credential scheme: AuthBasic or AuthBearer
	AuthMode string

	// AuthHeader is the pre-built Authorization header value
	AuthHeader string

	// Username used for Basic auth, empty for Bearer
	Username string

	// DefaultSpace is used when a tool call omits a space key
	DefaultSpace string
}

// LoadConfig loads and validates configuration from environment variables.
// Any missing or invalid required input returns an error naming the exact
// variable or combination; main treats that as fatal.
func LoadConfig() (*Config, error) {
	baseURL := os.Getenv("CONFLUENCE_URL")
	if baseURL == "" {
		return nil, errors.New("CONFLUENCE_URL environment variable is required")
	}
	baseURL = strings.TrimRight(baseURL, "/")

	mode, err := resolveMode(os.Getenv("CONFLUENCE_MODE"))
	if err != nil {
		return nil, err
	}

	username := os.Getenv("CONFLUENCE_USERNAME")
	token := os.Getenv("CONFLUENCE_TOKEN")
	password := os.Getenv("CONFLUENCE_PASSWORD")

	authMode, authHeader, err := resolveAuth(mode, os.Getenv("CONFLUENCE_AUTH_MODE"), username, token, password)
	if err != nil {
		return nil, err
	}

	return &Config{
		BaseURL:      baseURL,
		Mode:         mode,
		AuthMode:     authMode,
		AuthHeader:   authHeader,
		Username:     username,
		DefaultSpace: os.Getenv("CONFLUENCE_SPACE_KEY"),
	}, nil
}

// resolveMode normalizes the deployment mode.
func resolveMode(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return ModeServer, nil
	case ModeCloud:
		return ModeCloud, nil
	case ModeServer, "dc", "datacenter", "data-center":
		return ModeServer, nil
	default:
		return "", fmt.Errorf("invalid CONFLUENCE_MODE %q: must be cloud, server, dc, datacenter, or data-center", raw)
	}
}

// resolveAuth picks the credential scheme for the deployment mode and
// pre-builds the Authorization header value.
func resolveAuth(mode, rawAuthMode, username, token, password string) (authMode, authHeader string, err error) {
	requested := strings.ToLower(strings.TrimSpace(rawAuthMode))
	if requested == "" {
		requested = "auto"
	}
	switch requested {
	case "auto", AuthBasic, AuthBearer:
	default:
		return "", "", fmt.Errorf("invalid CONFLUENCE_AUTH_MODE %q: must be auto, basic, or bearer", rawAuthMode)
	}

	// Cloud always authenticates with Basic: username plus API token,
	// password accepted as a fallback secret.
	if mode == ModeCloud {
		if username == "" {
			return "", "", errors.New("cloud mode requires CONFLUENCE_USERNAME")
		}
		secret := token
		if secret == "" {
			secret = password
		}
		if secret == "" {
			return "", "", errors.New("cloud mode requires CONFLUENCE_TOKEN or CONFLUENCE_PASSWORD")
		}
		return AuthBasic, basicHeader(username, secret), nil
	}

	switch requested {
	case AuthBearer:
		if token == "" {
			return "", "", errors.New("auth mode bearer requires CONFLUENCE_TOKEN")
		}
		return AuthBearer, "Bearer " + token, nil
	case AuthBasic:
		if username == "" {
			return "", "", errors.New("auth mode basic requires CONFLUENCE_USERNAME")
		}
		secret := password
		if secret == "" {
			secret = token
		}
		if secret == "" {
			return "", "", errors.New("auth mode basic requires CONFLUENCE_PASSWORD or CONFLUENCE_TOKEN")
		}
		return AuthBasic, basicHeader(username, secret), nil
	default:
		if token != "" {
			return AuthBearer, "Bearer " + token, nil
		}
		if username != "" && password != "" {
			return AuthBasic, basicHeader(username, password), nil
		}
		return "", "", errors.New("server mode requires CONFLUENCE_TOKEN or both CONFLUENCE_USERNAME and CONFLUENCE_PASSWORD")
	}
}

// basicHeader builds a Basic Authorization header value.
func basicHeader(username, secret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+secret))
}
