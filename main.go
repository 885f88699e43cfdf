// Confluence MCP Server - A Model Context Protocol server for Atlassian Confluence
// Provides tools for searching, reading, and writing Confluence pages
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/confluence-mcp-server/confluence"
	"github.com/olgasafonova/confluence-mcp-server/tools"
	"github.com/olgasafonova/confluence-mcp-server/tracing"
)

const (
	ServerName    = "confluence-mcp-server"
	ServerVersion = "1.0.0"
)

func main() {
	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Load configuration from environment
	config, err := confluence.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Initialize tracing (no-op unless OTEL_ENABLED or an OTLP endpoint is set)
	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("Failed to shut down tracing", "error", err)
		}
	}()

	// Create Confluence client
	client := confluence.NewClient(config, logger)

	// Create MCP server
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger: logger,
		Instructions: `Confluence MCP Server provides tools for working with an Atlassian Confluence wiki (Cloud or Server/Data Center).

Available tools:
- get_current_user: Verify which account the configured credentials belong to
- search_pages: Search pages by text, optionally within one space
- execute_raw_search: Run a raw CQL query verbatim for advanced searches
- get_page: Retrieve a page with its body in storage format
- create_page: Create a new page (requires write permission)
- update_page: Replace the body of an existing page (requires write permission)

Configure via environment variables:
- CONFLUENCE_URL: Site root, e.g. https://example.atlassian.net or https://wiki.example.com
- CONFLUENCE_MODE: "cloud" or "server" (default server; dc/datacenter are aliases)
- CONFLUENCE_AUTH_MODE: "auto" (default), "basic", or "bearer"
- CONFLUENCE_USERNAME: Account email (Cloud) or username (Server basic auth)
- CONFLUENCE_TOKEN: API token (Cloud) or personal access token (Server)
- CONFLUENCE_PASSWORD: Password for Server basic auth
- CONFLUENCE_SPACE_KEY: Default space for search_pages and create_page`,
	})

	// Register all tools
	registry := tools.NewHandlerRegistry(client, logger)
	registry.RegisterAll(server)

	// Run server on stdio transport
	logger.Info("Starting Confluence MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"confluence_url", config.BaseURL,
		"mode", config.Mode,
		"auth_mode", config.AuthMode,
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
