package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-widget-catalog/internal/components"
	"github.com/sha1n/mcp-widget-catalog/internal/config"
	mcputil "github.com/sha1n/mcp-widget-catalog/internal/mcp"
	"github.com/sha1n/mcp-widget-catalog/internal/metrics"
	"github.com/spf13/pflag"
)

// ServerName is the MCP implementation name reported to clients
const ServerName = "widget-catalog-mcp"

// RunParams contains dependencies for the run function
type RunParams struct {
	LoadSettings      func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings     func(*config.Settings) error
	StartSSEServer    func(*mcp.Server, *config.Settings, *metrics.Metrics) error
	CreateServer      func(*config.Settings, *metrics.Metrics) (*mcp.Server, func(), error)
	CustomIOTransport mcp.Transport // Optional: for testing with custom IO
}

// DefaultRunParams returns production dependencies
func DefaultRunParams() RunParams {
	return RunParams{
		LoadSettings:   config.LoadSettingsWithFlags,
		ValidSettings:  config.ValidateSettings,
		StartSSEServer: StartSSEServer,
		CreateServer:   CreateMCPServer,
	}
}

// RunWithDeps executes the server with the provided dependencies
func RunWithDeps(ctx context.Context, params RunParams, flags *pflag.FlagSet, version string) error {
	// Load settings
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// Validate settings for conflicting configurations
	if err := params.ValidSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Configure logging - always use stderr to avoid buffering issues
	handler := slog.NewTextHandler(os.Stderr, nil)
	slog.SetDefault(slog.New(handler))

	slog.Info("Starting widget catalog MCP server", "version", version)
	config.Log(settings)

	// Metrics are only reachable over HTTP
	var m *metrics.Metrics
	if settings.Transport == "sse" && settings.Metrics.Enabled {
		m = metrics.New()
	}

	mcpServer, cleanup, err := params.CreateServer(settings, m)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	// Start server
	if settings.Transport == "stdio" {
		// Use custom transport if provided (for testing), otherwise use stdio
		transport := params.CustomIOTransport
		if transport == nil {
			transport = &mcp.StdioTransport{}
		}
		return mcpServer.Run(ctx, transport)
	} else {
		slog.Info("Starting SSE server", "host", settings.Host, "port", settings.Port)
		return params.StartSSEServer(mcpServer, settings, m)
	}
}

// CreateMCPServer loads the catalog and creates the MCP server with registered tools
func CreateMCPServer(settings *config.Settings, m *metrics.Metrics) (*mcp.Server, func(), error) {
	svc, err := components.NewService(&settings.Catalog, m)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create catalog service: %w", err)
	}

	// Initialize in background context (not tied to request context)
	if err := svc.Initialize(context.Background()); err != nil {
		if closeErr := svc.Close(); closeErr != nil {
			slog.Error("Failed to close catalog service", "error", closeErr)
		}
		return nil, nil, fmt.Errorf("failed to initialize catalog: %w", err)
	}

	cleanup := func() {
		if err := svc.Close(); err != nil {
			slog.Error("Failed to close catalog service", "error", err)
		}
	}

	server := mcputil.CreateServer(mcputil.ServerConfig{
		Name:       ServerName,
		Version:    "1.0.0",
		CatalogSvc: svc,
	})

	return server, cleanup, nil
}
