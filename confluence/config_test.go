package confluence

import (
	"encoding/base64"
	"strings"
	"testing"
)

var configEnvKeys = []string{
	"CONFLUENCE_URL",
	"CONFLUENCE_MODE",
	"CONFLUENCE_AUTH_MODE",
	"CONFLUENCE_USERNAME",
	"CONFLUENCE_TOKEN",
	"CONFLUENCE_PASSWORD",
	"CONFLUENCE_SPACE_KEY",
}

// setEnv clears every configuration variable and applies the given values,
// so tests never see credentials from the surrounding environment.
func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
	for key, value := range vars {
		t.Setenv(key, value)
	}
}

func basicAuth(username, secret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+secret))
}

func TestLoadConfig_MissingURL(t *testing.T) {
	setEnv(t, nil)

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("Expected error for missing CONFLUENCE_URL")
	}
	if err.Error() != "CONFLUENCE_URL environment variable is required" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestLoadConfig_TrimsTrailingSlash(t *testing.T) {
	setEnv(t, map[string]string{
		"CONFLUENCE_URL":   "https://wiki.example.com/",
		"CONFLUENCE_TOKEN": "pat-token",
	})

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.BaseURL != "https://wiki.example.com" {
		t.Errorf("Expected trailing slash trimmed, got %q", cfg.BaseURL)
	}
}

func TestLoadConfig_Modes(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		want     string
		wantErr  bool
		errPhase string
	}{
		{name: "empty defaults to server", mode: "", want: ModeServer},
		{name: "cloud", mode: "cloud", want: ModeCloud},
		{name: "server", mode: "server", want: ModeServer},
		{name: "dc alias", mode: "dc", want: ModeServer},
		{name: "datacenter alias", mode: "datacenter", want: ModeServer},
		{name: "data-center alias", mode: "data-center", want: ModeServer},
		{name: "uppercase accepted", mode: "CLOUD", want: ModeCloud},
		{name: "whitespace trimmed", mode: "  server  ", want: ModeServer},
		{name: "unknown rejected", mode: "onprem", wantErr: true, errPhase: "invalid CONFLUENCE_MODE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, map[string]string{
				"CONFLUENCE_URL":      "https://wiki.example.com",
				"CONFLUENCE_MODE":     tt.mode,
				"CONFLUENCE_USERNAME": "alice",
				"CONFLUENCE_TOKEN":    "tok",
			})

			cfg, err := LoadConfig()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for mode %q", tt.mode)
				}
				if !strings.Contains(err.Error(), tt.errPhase) {
					t.Errorf("Expected error containing %q, got %v", tt.errPhase, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if cfg.Mode != tt.want {
				t.Errorf("Expected mode %q, got %q", tt.want, cfg.Mode)
			}
		})
	}
}

func TestLoadConfig_CloudBasicAuth(t *testing.T) {
	setEnv(t, map[string]string{
		"CONFLUENCE_URL":      "https://example.atlassian.net",
		"CONFLUENCE_MODE":     "cloud",
		"CONFLUENCE_USERNAME": "alice",
		"CONFLUENCE_TOKEN":    "token",
	})

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.AuthMode != AuthBasic {
		t.Errorf("Expected basic auth, got %q", cfg.AuthMode)
	}
	if cfg.AuthHeader != "Basic YWxpY2U6dG9rZW4=" {
		t.Errorf("Unexpected auth header %q", cfg.AuthHeader)
	}
}

func TestLoadConfig_CloudPrefersTokenOverPassword(t *testing.T) {
	setEnv(t, map[string]string{
		"CONFLUENCE_URL":      "https://example.atlassian.net",
		"CONFLUENCE_MODE":     "cloud",
		"CONFLUENCE_USERNAME": "alice",
		"CONFLUENCE_TOKEN":    "api-token",
		"CONFLUENCE_PASSWORD": "password",
	})

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.AuthHeader != basicAuth("alice", "api-token") {
		t.Errorf("Expected token to win over password, got %q", cfg.AuthHeader)
	}
}

func TestLoadConfig_CloudPasswordFallback(t *testing.T) {
	setEnv(t, map[string]string{
		"CONFLUENCE_URL":      "https://example.atlassian.net",
		"CONFLUENCE_MODE":     "cloud",
		"CONFLUENCE_USERNAME": "alice",
		"CONFLUENCE_PASSWORD": "password",
	})

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.AuthHeader != basicAuth("alice", "password") {
		t.Errorf("Expected password fallback, got %q", cfg.AuthHeader)
	}
}

func TestLoadConfig_CloudIgnoresBearerRequest(t *testing.T) {
	// Cloud never uses Bearer regardless of the requested auth mode.
	setEnv(t, map[string]string{
		"CONFLUENCE_URL":       "https://example.atlassian.net",
		"CONFLUENCE_MODE":      "cloud",
		"CONFLUENCE_AUTH_MODE": "bearer",
		"CONFLUENCE_USERNAME":  "alice",
		"CONFLUENCE_TOKEN":     "token",
	})

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.AuthMode != AuthBasic {
		t.Errorf("Expected cloud to force basic auth, got %q", cfg.AuthMode)
	}
}

func TestLoadConfig_CloudMissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		wantErr string
	}{
		{
			name: "missing username",
			vars: map[string]string{
				"CONFLUENCE_TOKEN": "token",
			},
			wantErr: "cloud mode requires CONFLUENCE_USERNAME",
		},
		{
			name: "missing secret",
			vars: map[string]string{
				"CONFLUENCE_USERNAME": "alice",
			},
			wantErr: "cloud mode requires CONFLUENCE_TOKEN or CONFLUENCE_PASSWORD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := map[string]string{
				"CONFLUENCE_URL":  "https://example.atlassian.net",
				"CONFLUENCE_MODE": "cloud",
			}
			for k, v := range tt.vars {
				vars[k] = v
			}
			setEnv(t, vars)

			_, err := LoadConfig()
			if err == nil {
				t.Fatal("Expected error")
			}
			if err.Error() != tt.wantErr {
				t.Errorf("Expected %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestLoadConfig_ServerAuto(t *testing.T) {
	tests := []struct {
		name       string
		vars       map[string]string
		wantMode   string
		wantHeader string
		wantErr    string
	}{
		{
			name:       "token wins",
			vars:       map[string]string{"CONFLUENCE_TOKEN": "pat"},
			wantMode:   AuthBearer,
			wantHeader: "Bearer pat",
		},
		{
			name: "token wins over basic pair",
			vars: map[string]string{
				"CONFLUENCE_TOKEN":    "pat",
				"CONFLUENCE_USERNAME": "alice",
				"CONFLUENCE_PASSWORD": "pass",
			},
			wantMode:   AuthBearer,
			wantHeader: "Bearer pat",
		},
		{
			name: "basic pair without token",
			vars: map[string]string{
				"CONFLUENCE_USERNAME": "alice",
				"CONFLUENCE_PASSWORD": "pass",
			},
			wantMode:   AuthBasic,
			wantHeader: basicAuth("alice", "pass"),
		},
		{
			name:    "username alone insufficient",
			vars:    map[string]string{"CONFLUENCE_USERNAME": "alice"},
			wantErr: "server mode requires CONFLUENCE_TOKEN or both CONFLUENCE_USERNAME and CONFLUENCE_PASSWORD",
		},
		{
			name:    "no credentials",
			vars:    map[string]string{},
			wantErr: "server mode requires CONFLUENCE_TOKEN or both CONFLUENCE_USERNAME and CONFLUENCE_PASSWORD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := map[string]string{
				"CONFLUENCE_URL":  "https://wiki.example.com",
				"CONFLUENCE_MODE": "server",
			}
			for k, v := range tt.vars {
				vars[k] = v
			}
			setEnv(t, vars)

			cfg, err := LoadConfig()
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("Expected error")
				}
				if err.Error() != tt.wantErr {
					t.Errorf("Expected %q, got %q", tt.wantErr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if cfg.AuthMode != tt.wantMode {
				t.Errorf("Expected auth mode %q, got %q", tt.wantMode, cfg.AuthMode)
			}
			if cfg.AuthHeader != tt.wantHeader {
				t.Errorf("Expected header %q, got %q", tt.wantHeader, cfg.AuthHeader)
			}
		})
	}
}

func TestLoadConfig_ServerBearer(t *testing.T) {
	setEnv(t, map[string]string{
		"CONFLUENCE_URL":       "https://wiki.example.com",
		"CONFLUENCE_AUTH_MODE": "bearer",
		"CONFLUENCE_TOKEN":     "pat-token",
	})

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.AuthHeader != "Bearer pat-token" {
		t.Errorf("Unexpected auth header %q", cfg.AuthHeader)
	}
}

func TestLoadConfig_ServerBearerMissingToken(t *testing.T) {
	setEnv(t, map[string]string{
		"CONFLUENCE_URL":       "https://wiki.example.com",
		"CONFLUENCE_AUTH_MODE": "bearer",
		"CONFLUENCE_USERNAME":  "alice",
		"CONFLUENCE_PASSWORD":  "pass",
	})

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("Expected error for bearer without token")
	}
	if err.Error() != "auth mode bearer requires CONFLUENCE_TOKEN" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestLoadConfig_ServerBasic(t *testing.T) {
	tests := []struct {
		name       string
		vars       map[string]string
		wantHeader string
		wantErr    string
	}{
		{
			name: "password preferred",
			vars: map[string]string{
				"CONFLUENCE_USERNAME": "alice",
				"CONFLUENCE_PASSWORD": "pass",
				"CONFLUENCE_TOKEN":    "pat",
			},
			wantHeader: basicAuth("alice", "pass"),
		},
		{
			name: "token as secret fallback",
			vars: map[string]string{
				"CONFLUENCE_USERNAME": "alice",
				"CONFLUENCE_TOKEN":    "pat",
			},
			wantHeader: basicAuth("alice", "pat"),
		},
		{
			name:    "missing username",
			vars:    map[string]string{"CONFLUENCE_PASSWORD": "pass"},
			wantErr: "auth mode basic requires CONFLUENCE_USERNAME",
		},
		{
			name:    "missing secret",
			vars:    map[string]string{"CONFLUENCE_USERNAME": "alice"},
			wantErr: "auth mode basic requires CONFLUENCE_PASSWORD or CONFLUENCE_TOKEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := map[string]string{
				"CONFLUENCE_URL":       "https://wiki.example.com",
				"CONFLUENCE_AUTH_MODE": "basic",
			}
			for k, v := range tt.vars {
				vars[k] = v
			}
			setEnv(t, vars)

			cfg, err := LoadConfig()
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("Expected error")
				}
				if err.Error() != tt.wantErr {
					t.Errorf("Expected %q, got %q", tt.wantErr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if cfg.AuthHeader != tt.wantHeader {
				t.Errorf("Expected header %q, got %q", tt.wantHeader, cfg.AuthHeader)
			}
		})
	}
}

func TestLoadConfig_InvalidAuthMode(t *testing.T) {
	setEnv(t, map[string]string{
		"CONFLUENCE_URL":       "https://wiki.example.com",
		"CONFLUENCE_AUTH_MODE": "oauth",
		"CONFLUENCE_TOKEN":     "pat",
	})

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("Expected error for invalid auth mode")
	}
	if !strings.Contains(err.Error(), "invalid CONFLUENCE_AUTH_MODE") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestLoadConfig_DefaultSpace(t *testing.T) {
	setEnv(t, map[string]string{
		"CONFLUENCE_URL":       "https://wiki.example.com",
		"CONFLUENCE_TOKEN":     "pat",
		"CONFLUENCE_SPACE_KEY": "DEV",
	})

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.DefaultSpace != "DEV" {
		t.Errorf("Expected default space DEV, got %q", cfg.DefaultSpace)
	}
}
