package components

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RelatedArgument defines related-component lookup parameters.
type RelatedArgument struct {
	ComponentID string `json:"component_id" jsonschema:"ID of the component, e.g. text_input"`
	Limit       int    `json:"limit,omitempty" jsonschema:"Maximum number of related components (default 5)"`
}

// RelatedHandler handles the related components MCP tool.
type RelatedHandler struct {
	service *Service
}

// NewRelatedHandler creates a new related components handler.
func NewRelatedHandler(service *Service) *RelatedHandler {
	return &RelatedHandler{
		service: service,
	}
}

// Handle lists components related to the given one.
func (h *RelatedHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args RelatedArgument) (*mcp.CallToolResult, any, error) {
	if !h.service.IsReady() {
		return notReadyResult(), nil, nil
	}

	id := strings.TrimSpace(args.ComponentID)
	if id == "" {
		return errorResult("Component ID cannot be empty"), nil, nil
	}

	limit, err := resolveLimit(args.Limit, DefaultListLimit)
	if err != nil {
		return errorResult("Invalid limit: %s", err), nil, nil
	}

	if _, err := h.service.Component(id); err != nil {
		if errors.Is(err, ErrComponentNotFound) {
			return errorResult("Component not found: %s", id), nil, nil
		}
		return serviceErrorResult(err), nil, nil
	}

	ids, err := h.service.Related(id, limit)
	if err != nil {
		return serviceErrorResult(err), nil, nil
	}

	if len(ids) == 0 {
		return textResult(fmt.Sprintf("No related components for: %s", id)), nil, nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Components related to `%s`:\n\n", id))
	for _, rid := range ids {
		c, err := h.service.Component(rid)
		if err != nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("- **%s** (`%s`): %s\n", c.Name, c.ID, c.Description))
	}
	return textResult(sb.String()), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *RelatedHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "related_components",
		Description: "List components related to a component: explicitly linked ones first, then others from the same category",
	}
}

// RegisterRelatedTool registers the related components tool with an MCP server.
func RegisterRelatedTool(server *mcp.Server, service *Service) {
	handler := NewRelatedHandler(service)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
