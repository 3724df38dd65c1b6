package components

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SuggestArgument defines suggestion parameters.
type SuggestArgument struct {
	Prefix string `json:"prefix" jsonschema:"Beginning of a component name, with or without the st. prefix"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of suggestions (default 5)"`
}

// SuggestHandler handles the suggestion MCP tool.
type SuggestHandler struct {
	service *Service
}

// NewSuggestHandler creates a new suggestion handler.
func NewSuggestHandler(service *Service) *SuggestHandler {
	return &SuggestHandler{
		service: service,
	}
}

// Handle returns component names completing the prefix.
func (h *SuggestHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SuggestArgument) (*mcp.CallToolResult, any, error) {
	if !h.service.IsReady() {
		return notReadyResult(), nil, nil
	}

	if strings.TrimSpace(args.Prefix) == "" {
		return errorResult("Prefix cannot be empty"), nil, nil
	}

	limit, err := resolveLimit(args.Limit, DefaultListLimit)
	if err != nil {
		return errorResult("Invalid limit: %s", err), nil, nil
	}

	names, err := h.service.Suggest(args.Prefix, limit)
	if err != nil {
		return serviceErrorResult(err), nil, nil
	}

	if len(names) == 0 {
		return textResult(fmt.Sprintf("No suggestions for prefix: %s", args.Prefix)), nil, nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Suggestions for '%s':\n\n", args.Prefix))
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("- `%s`\n", name))
	}
	return textResult(sb.String()), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *SuggestHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "suggest_components",
		Description: "Autocomplete component names from a prefix",
	}
}

// RegisterSuggestTool registers the suggestion tool with an MCP server.
func RegisterSuggestTool(server *mcp.Server, service *Service) {
	handler := NewSuggestHandler(service)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
