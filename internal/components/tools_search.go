package components

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-widget-catalog/internal/domain"
	"github.com/sha1n/mcp-widget-catalog/internal/search"
)

// SearchArgument defines search parameters.
type SearchArgument struct {
	Query    string   `json:"query" jsonschema:"Keywords to search for, in English or Japanese"`
	Mode     string   `json:"mode,omitempty" jsonschema:"Match mode: partial (default) also matches substrings, exact matches whole tokens only"`
	Limit    int      `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
	Category string   `json:"category,omitempty" jsonschema:"Only return components in this category (e.g. input_widgets)"`
	Tags     []string `json:"tags,omitempty" jsonschema:"Only return components carrying at least one of these tags"`
}

// SearchHandler handles the search MCP tool.
type SearchHandler struct {
	service *Service
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(service *Service) *SearchHandler {
	return &SearchHandler{
		service: service,
	}
}

// Handle executes the search and returns formatted results.
func (h *SearchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SearchArgument) (*mcp.CallToolResult, any, error) {
	// Check if service is ready
	if !h.service.IsReady() {
		return notReadyResult(), nil, nil
	}

	// Validate query
	if strings.TrimSpace(args.Query) == "" {
		return errorResult("Query cannot be empty"), nil, nil
	}

	mode := search.ModePartial
	if args.Mode != "" {
		m, err := search.ParseMode(args.Mode)
		if err != nil {
			return errorResult("Invalid mode: %s", err), nil, nil
		}
		mode = m
	}

	limit, err := resolveLimit(args.Limit, h.service.DefaultLimit())
	if err != nil {
		return errorResult("Invalid limit: %s", err), nil, nil
	}

	searchReq := search.NewRequest(args.Query,
		search.WithMode(mode),
		search.WithLimit(limit),
		search.WithCategory(args.Category),
		search.WithTags(args.Tags...),
	)

	results, err := h.service.Search(ctx, searchReq)
	if err != nil {
		return serviceErrorResult(err), nil, nil
	}

	return textResult(formatSearchResults(results, args.Query)), nil, nil
}

// formatSearchResults formats ranked results as markdown.
func formatSearchResults(results []domain.SearchResult, queryStr string) string {
	if len(results) == 0 {
		return fmt.Sprintf("No components found for query: %s", queryStr)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d components for '%s':\n\n", len(results), queryStr))

	for i, r := range results {
		name := r.Name
		if hl, ok := r.Highlights[domain.FieldName]; ok {
			name = hl
		}
		description := r.Description
		if hl, ok := r.Highlights[domain.FieldDescription]; ok {
			description = hl
		}

		// Write result header
		sb.WriteString(fmt.Sprintf("### %d. %s (`%s`)\n", i+1, name, r.ComponentID))
		sb.WriteString(fmt.Sprintf("**Category**: %s | **Score**: %s", r.Category, formatScore(r.Score)))
		if len(r.MatchedFields) > 0 {
			sb.WriteString(fmt.Sprintf(" | **Matched**: %s", strings.Join(r.MatchedFields, ", ")))
		}
		sb.WriteString("\n\n")

		if description != "" {
			sb.WriteString(description)
			sb.WriteString("\n\n")
		}
	}

	return sb.String()
}

// formatScore prints integral token scores without decimals and bleve scores with four.
func formatScore(score float64) string {
	if score == float64(int64(score)) {
		return fmt.Sprintf("%d", int64(score))
	}
	return fmt.Sprintf("%.4f", score)
}

// GetToolDefinition returns the MCP tool definition.
func (h *SearchHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_components",
		Description: "Search the UI component catalog by keyword. Matches ids, names, descriptions, categories and synonyms, and returns ranked results with highlights.",
	}
}

// RegisterSearchTool registers the search tool with an MCP server.
func RegisterSearchTool(server *mcp.Server, service *Service) {
	handler := NewSearchHandler(service)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
