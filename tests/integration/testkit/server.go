package testkit

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/sha1n/mcp-widget-catalog/internal/app"
	"github.com/sha1n/mcp-widget-catalog/internal/config"
	"github.com/sha1n/mcp-widget-catalog/internal/metrics"
	"github.com/spf13/pflag"
)

// Property keys published by MCPServerService.Start
const (
	PropBaseURL  = "base_url"
	PropSettings = "settings"
)

// MCPServerService runs the full SSE server stack, as assembled by the app
// package, on the address configured by its flags.
type MCPServerService struct {
	flags   *pflag.FlagSet
	server  *http.Server
	cleanup func()
	done    chan error
}

// NewMCPServerService creates a service that starts the server described by flags
func NewMCPServerService(flags *pflag.FlagSet) *MCPServerService {
	return &MCPServerService{flags: flags}
}

// GetName returns the service name
func (s *MCPServerService) GetName() string {
	return "mcp-server"
}

// Start loads settings, builds the MCP server and serves it over HTTP
func (s *MCPServerService) Start() (map[string]any, error) {
	settings, err := config.LoadSettingsWithFlags(s.flags)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if err := config.ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	var m *metrics.Metrics
	if settings.Metrics.Enabled {
		m = metrics.New()
	}

	mcpServer, cleanup, err := app.CreateMCPServer(settings, m)
	if err != nil {
		return nil, err
	}

	srv, err := app.NewSSEServer(mcpServer, settings, m)
	if err != nil {
		cleanup()
		return nil, err
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
	}

	s.server = srv
	s.cleanup = cleanup
	s.done = make(chan error, 1)
	go func() {
		s.done <- srv.Serve(ln)
	}()

	return map[string]any{
		PropBaseURL:  "http://" + ln.Addr().String(),
		PropSettings: settings,
	}, nil
}

// Stop closes the HTTP server and releases the catalog
func (s *MCPServerService) Stop() error {
	if s.server == nil {
		return nil
	}

	// SSE streams never go idle, so Shutdown would wait for its deadline
	err := s.server.Close()
	if serveErr := <-s.done; serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		err = errors.Join(err, serveErr)
	}
	if s.cleanup != nil {
		s.cleanup()
	}
	s.server = nil
	return err
}
