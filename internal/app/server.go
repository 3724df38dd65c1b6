package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-widget-catalog/internal/auth"
	"github.com/sha1n/mcp-widget-catalog/internal/config"
	"github.com/sha1n/mcp-widget-catalog/internal/metrics"
)

// StartSSEServer starts the SSE server with authentication
func StartSSEServer(s *mcp.Server, settings *config.Settings, m *metrics.Metrics) error {
	srv, err := NewSSEServer(s, settings, m)
	if err != nil {
		return err
	}

	slog.Info("Server listening (HTTP)", "addr", srv.Addr, "auth_type", settings.Auth.Type)
	return srv.ListenAndServe()
}

// NewSSEServer creates a new SSE server with authentication middleware.
// When m is non-nil its registry is served, unauthenticated, at settings.Metrics.Path.
func NewSSEServer(s *mcp.Server, settings *config.Settings, m *metrics.Metrics) (*http.Server, error) {
	// Factory function returns the server instance for each request
	sseHandler := mcp.NewSSEHandler(func(r *http.Request) *mcp.Server {
		return s
	}, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/sse", sseHandler)

	var publicPaths []string
	if m != nil {
		path := settings.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		mux.Handle(path, m.Handler())
		publicPaths = append(publicPaths, path)
	}

	authMiddleware, err := auth.NewMiddleware(settings.Auth, publicPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth middleware: %w", err)
	}

	handler := authMiddleware(mux)
	addr := fmt.Sprintf("%s:%d", settings.Host, settings.Port)

	return &http.Server{
		Addr:    addr,
		Handler: handler,
	}, nil
}
