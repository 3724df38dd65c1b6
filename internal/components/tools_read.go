package components

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-widget-catalog/internal/domain"
)

// GetComponentArgument defines component lookup parameters.
type GetComponentArgument struct {
	ComponentID string `json:"component_id" jsonschema:"ID of the component, e.g. text_input"`
}

// GetComponentHandler handles the get_component MCP tool.
type GetComponentHandler struct {
	service *Service
}

// NewGetComponentHandler creates a new component lookup handler.
func NewGetComponentHandler(service *Service) *GetComponentHandler {
	return &GetComponentHandler{
		service: service,
	}
}

// Handle returns the full record of one component.
func (h *GetComponentHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args GetComponentArgument) (*mcp.CallToolResult, any, error) {
	if !h.service.IsReady() {
		return notReadyResult(), nil, nil
	}

	id := strings.TrimSpace(args.ComponentID)
	if id == "" {
		return errorResult("Component ID cannot be empty"), nil, nil
	}

	c, err := h.service.Component(id)
	if err != nil {
		if errors.Is(err, ErrComponentNotFound) {
			return errorResult("Component not found: %s", id), nil, nil
		}
		return serviceErrorResult(err), nil, nil
	}

	related, err := h.service.Related(id, DefaultListLimit)
	if err != nil {
		return serviceErrorResult(err), nil, nil
	}

	return textResult(formatComponent(c, related)), nil, nil
}

// formatComponent renders a component record as markdown.
func formatComponent(c domain.Component, related []string) string {
	info, _ := domain.LookupCategory(c.Category)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s\n\n", c.Name))
	sb.WriteString(fmt.Sprintf("**ID**: `%s`\n", c.ID))
	if info.Icon != "" {
		sb.WriteString(fmt.Sprintf("**Category**: %s %s (`%s`)\n", info.Icon, info.Name, c.Category))
	} else {
		sb.WriteString(fmt.Sprintf("**Category**: `%s`\n", c.Category))
	}
	if len(c.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("**Tags**: %s\n", strings.Join(c.Tags, ", ")))
	}
	if c.Description != "" {
		sb.WriteString(fmt.Sprintf("\n%s\n", c.Description))
	}
	if len(related) > 0 {
		sb.WriteString("\n**Related**: ")
		for i, id := range related {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("`%s`", id))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// GetToolDefinition returns the MCP tool definition.
func (h *GetComponentHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_component",
		Description: "Get the details of a catalog component by its ID",
	}
}

// RegisterGetComponentTool registers the component lookup tool with an MCP server.
func RegisterGetComponentTool(server *mcp.Server, service *Service) {
	handler := NewGetComponentHandler(service)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
