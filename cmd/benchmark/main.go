package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/olgasafonova/confluence-mcp-server/confluence"
)

// measureAuthLatency times the authenticated user lookup, which is the
// cheapest round trip the API offers
func measureAuthLatency() {
	config, err := confluence.LoadConfig()
	if err != nil {
		fmt.Printf("Config error: %v\n", err)
		return
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	client := confluence.NewClient(config, logger)
	ctx := context.Background()

	fmt.Println("=== Authentication Round Trip ===")
	fmt.Println()

	fmt.Println("1. GetCurrentUser Latency:")

	start := time.Now()
	user, err := client.GetCurrentUser(ctx)
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		return
	}
	firstCall := time.Since(start)
	fmt.Printf("   First call (cold connection): %v\n", firstCall)

	start = time.Now()
	_, _ = client.GetCurrentUser(ctx)
	secondCall := time.Since(start)
	fmt.Printf("   Second call (reused connection): %v\n", secondCall)
	fmt.Printf("   Authenticated as: %s\n", user.DisplayName)
	fmt.Println()
}

// measureSearchPerformance compares the escaped text search against a raw
// CQL query of equivalent scope
func measureSearchPerformance() {
	config, err := confluence.LoadConfig()
	if err != nil {
		fmt.Printf("Config error: %v\n", err)
		return
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	client := confluence.NewClient(config, logger)
	ctx := context.Background()

	fmt.Println("=== Search Performance ===")
	fmt.Println()

	fmt.Println("2. Text Search (escaped CQL built server-side):")
	start := time.Now()
	pages, err := client.SearchPages(ctx, "documentation", "", 10)
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		return
	}
	textTime := time.Since(start)
	fmt.Printf("   Search time: %v (%d results)\n", textTime, len(pages))
	fmt.Println()

	fmt.Println("3. Raw CQL Search (passed through verbatim):")
	start = time.Now()
	pages, err = client.Search(ctx, "type=page ORDER BY lastmodified DESC", 10, "")
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		return
	}
	rawTime := time.Since(start)
	fmt.Printf("   Search time: %v (%d results)\n", rawTime, len(pages))
	fmt.Println()
}

// measureReadPerformance times sequential full page reads, body included
func measureReadPerformance() {
	config, err := confluence.LoadConfig()
	if err != nil {
		fmt.Printf("Config error: %v\n", err)
		return
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	client := confluence.NewClient(config, logger)
	ctx := context.Background()

	fmt.Println("=== Page Read Performance ===")
	fmt.Println()

	pages, err := client.Search(ctx, "type=page ORDER BY lastmodified DESC", 3, "")
	if err != nil {
		fmt.Printf("Error finding pages to read: %v\n", err)
		return
	}

	if len(pages) == 0 {
		fmt.Println("No pages available to test")
		return
	}

	fmt.Printf("4. Sequential GetPage for %d pages (with body.storage):\n", len(pages))
	start := time.Now()
	var totalBytes int
	for _, page := range pages {
		detail, err := client.GetPage(ctx, page.ID, "")
		if err != nil {
			fmt.Printf("   Error reading page %s: %v\n", page.ID, err)
			return
		}
		totalBytes += len(detail.BodyStorage)
	}
	readTime := time.Since(start)
	fmt.Printf("   Total time: %v\n", readTime)
	fmt.Printf("   Average per page: %v\n", readTime/time.Duration(len(pages)))
	fmt.Printf("   Body bytes fetched: %d\n", totalBytes)
	fmt.Println()
}

func main() {
	fmt.Println("Confluence MCP Server - Performance Measurements")
	fmt.Println("================================================")
	fmt.Println()

	measureAuthLatency()
	measureSearchPerformance()
	measureReadPerformance()

	fmt.Println("=== Summary ===")
	fmt.Println()
	fmt.Println("Key characteristics:")
	fmt.Println("• Connection reuse: HTTP keep-alive makes repeat calls much cheaper than the first")
	fmt.Println("• Retries: transient 5xx responses are retried with exponential backoff")
	fmt.Println("• Expansion control: the expand parameter trades response size for round trips")
}
