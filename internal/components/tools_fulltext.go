package components

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-widget-catalog/internal/search"
)

// FullTextArgument defines full-text search parameters.
type FullTextArgument struct {
	Query    string   `json:"query" jsonschema:"Free text query; Japanese text is matched by character bigrams"`
	Limit    int      `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
	Category string   `json:"category,omitempty" jsonschema:"Only return components in this category"`
	Tags     []string `json:"tags,omitempty" jsonschema:"Only return components carrying at least one of these tags"`
}

// FullTextHandler handles the full-text search MCP tool.
type FullTextHandler struct {
	service *Service
}

// NewFullTextHandler creates a new full-text search handler.
func NewFullTextHandler(service *Service) *FullTextHandler {
	return &FullTextHandler{
		service: service,
	}
}

// Handle executes the query and returns formatted results.
func (h *FullTextHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args FullTextArgument) (*mcp.CallToolResult, any, error) {
	if !h.service.IsReady() {
		return notReadyResult(), nil, nil
	}

	if strings.TrimSpace(args.Query) == "" {
		return errorResult("Query cannot be empty"), nil, nil
	}

	limit, err := resolveLimit(args.Limit, h.service.DefaultLimit())
	if err != nil {
		return errorResult("Invalid limit: %s", err), nil, nil
	}

	searchReq := search.NewRequest(args.Query,
		search.WithLimit(limit),
		search.WithCategory(args.Category),
		search.WithTags(args.Tags...),
	)

	results, err := h.service.FullTextSearch(ctx, searchReq)
	if err != nil {
		if errors.Is(err, ErrFullTextDisabled) {
			return errorResult("Full-text search is disabled on this server"), nil, nil
		}
		return serviceErrorResult(err), nil, nil
	}

	return textResult(formatSearchResults(results, args.Query)), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *FullTextHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "fulltext_search_components",
		Description: "Relevance-ranked full-text search over component names, descriptions and synonyms",
	}
}

// RegisterFullTextTool registers the full-text search tool with an MCP server.
func RegisterFullTextTool(server *mcp.Server, service *Service) {
	handler := NewFullTextHandler(service)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
