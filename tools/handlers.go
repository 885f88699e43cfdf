package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/confluence-mcp-server/confluence"
	"github.com/olgasafonova/confluence-mcp-server/metrics"
	"github.com/olgasafonova/confluence-mcp-server/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	client *confluence.Client
	logger *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(client *confluence.Client, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		client: client,
		logger: logger,
	}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	for _, spec := range AllTools {
		h.registerByName(server, spec)
	}
	h.logger.Info("Registered all tools", "count", len(AllTools))
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) {
	tool := h.buildTool(spec)

	switch spec.Method {
	case "GetCurrentUser":
		register(h, server, tool, spec, h.client.GetCurrentUserMCP)
	case "SearchPages":
		register(h, server, tool, spec, h.client.SearchPagesMCP)
	case "ExecuteRawSearch":
		register(h, server, tool, spec, h.client.ExecuteRawSearchMCP)
	case "GetPage":
		register(h, server, tool, spec, h.client.GetPageMCP)
	case "CreatePage":
		register(h, server, tool, spec, h.client.CreatePageMCP)
	case "UpdatePage":
		register(h, server, tool, spec, h.client.UpdatePageMCP)
	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
	}
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the client method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	if schema, err := jsonschema.For[Args](nil); err != nil {
		// Fall back to the SDK's own inference
		h.logger.Error("Failed to build input schema", "tool", spec.Name, "error", err)
	} else {
		if spec.MaxLimit > 0 {
			if limit, ok := schema.Properties["limit"]; ok {
				limit.Minimum = ptr(1.0)
				limit.Maximum = ptr(float64(spec.MaxLimit))
			}
		}
		tool.InputSchema = schema
	}

	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (*mcp.CallToolResult, Result, error) {
		defer h.recoverPanic(spec.Name)

		// Start trace span
		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		span.SetAttributes(
			attribute.String("mcp.tool.name", spec.Name),
			attribute.String("mcp.tool.category", spec.Category),
			attribute.Bool("mcp.tool.readonly", spec.ReadOnly),
		)

		// Track in-flight requests
		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		span.SetStatus(codes.Ok, "")
		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, args, result)
		return nil, result, nil
	})
}

// recoverPanic recovers from panics in tool handlers.
func (h *HandlerRegistry) recoverPanic(toolName string) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name}

	// Add extractable fields from args using type assertions
	switch a := args.(type) {
	case confluence.GetCurrentUserArgs:
		// No args to log
	case confluence.SearchPagesArgs:
		attrs = append(attrs, "query", a.Query, "space_key", a.SpaceKey)
	case confluence.ExecuteRawSearchArgs:
		attrs = append(attrs, "cql", a.Query)
	case confluence.GetPageArgs:
		attrs = append(attrs, "page_id", a.PageID)
	case confluence.CreatePageArgs:
		attrs = append(attrs, "title", a.Title, "space_key", a.SpaceKey)
	case confluence.UpdatePageArgs:
		attrs = append(attrs, "page_id", a.PageID)
	}

	// Add extractable fields from result
	switch r := result.(type) {
	case confluence.CurrentUser:
		attrs = append(attrs, "user_id", r.ID)
	case confluence.SearchPagesResult:
		attrs = append(attrs, "results_count", r.Count)
	case confluence.ExecuteRawSearchResult:
		attrs = append(attrs, "results_count", r.Count)
	case confluence.PageDetail:
		attrs = append(attrs, "page_id", r.ID, "body_bytes", len(r.BodyStorage))
	case confluence.Page:
		attrs = append(attrs, "page_id", r.ID)
	}

	h.logger.Info("Tool executed", attrs...)
}
