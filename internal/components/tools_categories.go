package components

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CategoriesArgument is the (empty) argument of the list_categories tool.
type CategoriesArgument struct{}

// CategoriesHandler handles the list_categories MCP tool.
type CategoriesHandler struct {
	service *Service
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(service *Service) *CategoriesHandler {
	return &CategoriesHandler{
		service: service,
	}
}

// Handle lists the categories present in the catalog.
func (h *CategoriesHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args CategoriesArgument) (*mcp.CallToolResult, any, error) {
	if !h.service.IsReady() {
		return notReadyResult(), nil, nil
	}

	categories, err := h.service.Categories()
	if err != nil {
		return serviceErrorResult(err), nil, nil
	}

	if len(categories) == 0 {
		return textResult("The catalog has no categories"), nil, nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d categories:\n\n", len(categories)))
	for _, c := range categories {
		label := c.Name
		if c.Icon != "" {
			label = c.Icon + " " + c.Name
		}
		sb.WriteString(fmt.Sprintf("- **%s** (`%s`): %d components", label, c.Key, c.Count))
		if c.Description != "" {
			sb.WriteString(" - " + c.Description)
		}
		sb.WriteString("\n")
	}
	return textResult(sb.String()), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *CategoriesHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_categories",
		Description: "List the component categories with their component counts",
	}
}

// RegisterCategoriesTool registers the categories tool with an MCP server.
func RegisterCategoriesTool(server *mcp.Server, service *Service) {
	handler := NewCategoriesHandler(service)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
