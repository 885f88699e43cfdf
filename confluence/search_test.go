package confluence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

func TestEscapeCQL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text untouched", input: "release notes", want: "release notes"},
		{name: "quotes escaped", input: `say "hello"`, want: `say \"hello\"`},
		{name: "backslash escaped first", input: `a\b`, want: `a\\b`},
		{name: "backslash before quote", input: `a\"b`, want: `a\\\"b`},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeCQL(tt.input); got != tt.want {
				t.Errorf("escapeCQL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildSearchCQL(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		spaceKey string
		want     string
	}{
		{
			name: "no inputs still restricts to pages",
			want: "type=page",
		},
		{
			name:     "space only",
			spaceKey: "DEV",
			want:     `type=page AND space="DEV"`,
		},
		{
			name:  "query only searches title and text",
			query: "deploy guide",
			want:  `type=page AND (title ~ "deploy guide" OR text ~ "deploy guide")`,
		},
		{
			name:     "space and query",
			query:    "deploy guide",
			spaceKey: "DEV",
			want:     `type=page AND space="DEV" AND (title ~ "deploy guide" OR text ~ "deploy guide")`,
		},
		{
			name:  "quotes in query are escaped",
			query: `the "big" release`,
			want:  `type=page AND (title ~ "the \"big\" release" OR text ~ "the \"big\" release")`,
		},
		{
			name:     "quotes in space key are escaped",
			spaceKey: `D"EV`,
			want:     `type=page AND space="D\"EV"`,
		},
		{
			name:  "whitespace-only query ignored",
			query: "   ",
			want:  "type=page",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildSearchCQL(tt.query, tt.spaceKey)
			if got != tt.want {
				t.Errorf("buildSearchCQL(%q, %q) = %q, want %q", tt.query, tt.spaceKey, got, tt.want)
			}
		})
	}
}

func searchResponseJSON(titles ...string) []byte {
	resp := SearchResponse{Size: len(titles)}
	for i, title := range titles {
		resp.Results = append(resp.Results, Content{
			ID:      strconv.Itoa(1000 + i),
			Type:    "page",
			Title:   title,
			Space:   &Space{Key: "DEV"},
			Version: &Version{Number: 1},
			Links:   &Links{WebUI: "/display/DEV/" + title},
		})
	}
	data, _ := json.Marshal(resp)
	return data
}

func TestSearch_Success(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/content/search" {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("cql")
		if got := r.URL.Query().Get("limit"); got != "25" {
			t.Errorf("Expected limit 25, got %q", got)
		}
		if got := r.URL.Query().Get("expand"); got != "space,version" {
			t.Errorf("Expected default expand, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(searchResponseJSON("First", "Second"))
	}))
	defer server.Close()

	client := newTestClient(t, server, ModeServer)
	pages, err := client.Search(context.Background(), `space="DEV"`, 25, "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if gotQuery != `space="DEV"` {
		t.Errorf("Expected cql passed through verbatim, got %q", gotQuery)
	}
	if len(pages) != 2 {
		t.Fatalf("Expected 2 pages, got %d", len(pages))
	}
	if pages[0].Title != "First" {
		t.Errorf("Expected first page 'First', got %q", pages[0].Title)
	}
	if pages[0].SpaceKey != "DEV" {
		t.Errorf("Expected space DEV, got %q", pages[0].SpaceKey)
	}
	if !strings.HasPrefix(pages[0].URL, server.URL) {
		t.Errorf("Expected URL under %q, got %q", server.URL, pages[0].URL)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Request should not reach the server")
	}))
	defer server.Close()

	client := newTestClient(t, server, ModeServer)
	_, err := client.Search(context.Background(), "   ", 10, "")
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !IsValidation(err) {
		t.Errorf("Expected validation error, got %T: %v", err, err)
	}
}

func TestSearch_ClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  string
	}{
		{name: "above maximum", limit: 100, want: "50"},
		{name: "zero", limit: 0, want: "1"},
		{name: "negative", limit: -3, want: "1"},
		{name: "in range", limit: 10, want: "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("limit"); got != tt.want {
					t.Errorf("Expected limit %s, got %q", tt.want, got)
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(searchResponseJSON())
			}))
			defer server.Close()

			client := newTestClient(t, server, ModeServer)
			if _, err := client.Search(context.Background(), "type=page", tt.limit, ""); err != nil {
				t.Fatalf("Search failed: %v", err)
			}
		})
	}
}

func TestSearch_CustomExpand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("expand"); got != "space,version,history" {
			t.Errorf("Expected custom expand, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(searchResponseJSON())
	}))
	defer server.Close()

	client := newTestClient(t, server, ModeServer)
	if _, err := client.Search(context.Background(), "type=page", 5, "space,version,history"); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
}

func TestSearch_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[],"start":0,"limit":10,"size":0}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, ModeServer)
	pages, err := client.Search(context.Background(), "type=page", 10, "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if pages == nil {
		t.Error("Expected empty slice, got nil")
	}
	if len(pages) != 0 {
		t.Errorf("Expected no pages, got %d", len(pages))
	}
}

func TestSearchPages_BuildsCQL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		want := `type=page AND space="DEV" AND (title ~ "deploy" OR text ~ "deploy")`
		if got := r.URL.Query().Get("cql"); got != want {
			t.Errorf("Expected cql %q, got %q", want, got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(searchResponseJSON("Deploy Guide"))
	}))
	defer server.Close()

	client := newTestClient(t, server, ModeServer)
	pages, err := client.SearchPages(context.Background(), "deploy", "DEV", 10)
	if err != nil {
		t.Fatalf("SearchPages failed: %v", err)
	}
	if len(pages) != 1 {
		t.Errorf("Expected 1 page, got %d", len(pages))
	}
}

func TestSearchPages_DefaultSpaceFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("cql"); !strings.Contains(got, `space="TEAM"`) {
			t.Errorf("Expected configured default space in cql, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(searchResponseJSON())
	}))
	defer server.Close()

	config := newTestConfig(server.URL, ModeServer)
	config.DefaultSpace = "TEAM"
	client := NewClient(config, nil)

	if _, err := client.SearchPages(context.Background(), "deploy", "", 10); err != nil {
		t.Fatalf("SearchPages failed: %v", err)
	}
}

func TestSearchPages_NoSpaceSearchesEverywhere(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("cql"); strings.Contains(got, "space=") {
			t.Errorf("Expected no space clause, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(searchResponseJSON())
	}))
	defer server.Close()

	client := newTestClient(t, server, ModeServer)
	if _, err := client.SearchPages(context.Background(), "deploy", "", 10); err != nil {
		t.Fatalf("SearchPages failed: %v", err)
	}
}

func TestSearchPages_BlankEverything(t *testing.T) {
	// A search with no query and no space still issues type=page,
	// effectively listing recent pages.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("cql"); got != "type=page" {
			t.Errorf("Expected bare type clause, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(searchResponseJSON())
	}))
	defer server.Close()

	client := newTestClient(t, server, ModeServer)
	if _, err := client.SearchPages(context.Background(), "", "", 10); err != nil {
		t.Fatalf("SearchPages failed: %v", err)
	}
}
