package components

import (
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// MaxToolLimit caps the number of results any tool returns.
	MaxToolLimit = 100

	// DefaultListLimit is the default for suggestion and related lookups.
	DefaultListLimit = 5
)

// textResult wraps markdown text in a tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// errorResult wraps a message in a tool error result.
func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

// notReadyResult is returned by every tool while the catalog is not loaded.
func notReadyResult() *mcp.CallToolResult {
	return errorResult("The component catalog is not loaded yet. Please try again later.")
}

// serviceErrorResult maps a service error to a tool error result.
func serviceErrorResult(err error) *mcp.CallToolResult {
	if errors.Is(err, ErrNotReady) {
		return notReadyResult()
	}
	return errorResult("Request failed: %s", err)
}

// resolveLimit applies the default to an omitted limit and caps large ones.
func resolveLimit(limit, def int) (int, error) {
	switch {
	case limit < 0:
		return 0, fmt.Errorf("limit must be positive, got %d", limit)
	case limit == 0:
		return def, nil
	case limit > MaxToolLimit:
		return MaxToolLimit, nil
	default:
		return limit, nil
	}
}

// RegisterTools registers every catalog tool with an MCP server.
// The full-text tool is only registered when the full-text index is enabled.
func RegisterTools(server *mcp.Server, service *Service) {
	RegisterSearchTool(server, service)
	if service.Settings().FullText {
		RegisterFullTextTool(server, service)
	}
	RegisterSuggestTool(server, service)
	RegisterRelatedTool(server, service)
	RegisterGetComponentTool(server, service)
	RegisterCategoriesTool(server, service)
}
