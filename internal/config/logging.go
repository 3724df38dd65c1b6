package config

import (
	"context"
	"log/slog"
)

// Log logs the resolved settings in a granular way, skipping irrelevant ones
func Log(s *Settings) {
	LogWithLogger(s, slog.Default())
}

// LogWithLogger logs the resolved settings using the provided logger
func LogWithLogger(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	logger.InfoContext(ctx, "Config: transport", "value", s.Transport)
	if s.Transport == "sse" {
		logger.InfoContext(ctx, "Config: host", "value", s.Host)
		logger.InfoContext(ctx, "Config: port", "value", s.Port)
	}

	logger.InfoContext(ctx, "Config: auth.type", "value", s.Auth.Type)
	switch s.Auth.Type {
	case AuthTypeBasic:
		logger.InfoContext(ctx, "Config: auth.basic.username", "value", s.Auth.Basic.Username)
		logger.InfoContext(ctx, "Config: auth.basic.password", "value", "****")
	case AuthTypeAPIKey:
		logger.InfoContext(ctx, "Config: auth.api_keys", "count", len(s.Auth.APIKeys))
	}

	logger.InfoContext(ctx, "Config: catalog.path", "value", s.Catalog.Path)
	logger.InfoContext(ctx, "Config: catalog.watch", "value", s.Catalog.Watch)
	if s.Catalog.Watch {
		logger.InfoContext(ctx, "Config: catalog.watch_debounce", "value", s.Catalog.WatchDebounce)
	}
	if s.Catalog.ReloadSchedule != "" {
		logger.InfoContext(ctx, "Config: catalog.reload_schedule", "value", s.Catalog.ReloadSchedule)
	}
	logger.InfoContext(ctx, "Config: catalog.name_prefix", "value", s.Catalog.NamePrefix)
	logger.InfoContext(ctx, "Config: catalog.default_limit", "value", s.Catalog.DefaultLimit)
	logger.InfoContext(ctx, "Config: catalog.full_text", "value", s.Catalog.FullText)
	logger.InfoContext(ctx, "Config: catalog.cache.enabled", "value", s.Catalog.Cache.Enabled)
	if s.Catalog.Cache.Enabled {
		logger.InfoContext(ctx, "Config: catalog.cache.size", "value", s.Catalog.Cache.Size)
		logger.InfoContext(ctx, "Config: catalog.cache.ttl", "value", s.Catalog.Cache.TTL)
	}

	// Metrics are only served over the HTTP transport
	if s.Transport == "sse" {
		logger.InfoContext(ctx, "Config: metrics.enabled", "value", s.Metrics.Enabled)
		if s.Metrics.Enabled {
			logger.InfoContext(ctx, "Config: metrics.path", "value", s.Metrics.Path)
		}
	}
}

// AuthSettingsLogValue returns a slog.Value for AuthSettings with masked data
func AuthSettingsLogValue(s AuthSettings) slog.Value {
	keys := make([]string, len(s.APIKeys))
	for i := range s.APIKeys {
		keys[i] = "****"
	}
	return slog.GroupValue(
		slog.String("type", s.Type),
		slog.Any("basic", BasicAuthSettingsLogValue(s.Basic)),
		slog.Any("api_keys", keys),
	)
}

// BasicAuthSettingsLogValue returns a slog.Value for BasicAuthSettings with masked data
func BasicAuthSettingsLogValue(s BasicAuthSettings) slog.Value {
	return slog.GroupValue(
		slog.String("username", s.Username),
		slog.String("password", "****"),
	)
}

// SettingsLogValue returns a slog.Value for Settings with masked data
func SettingsLogValue(s Settings) slog.Value {
	return slog.GroupValue(
		slog.String("transport", s.Transport),
		slog.String("host", s.Host),
		slog.Int("port", s.Port),
		slog.Any("auth", AuthSettingsLogValue(s.Auth)),
		slog.Any("catalog", CatalogSettingsLogValue(s.Catalog)),
	)
}

// CatalogSettingsLogValue returns a slog.Value for CatalogSettings
func CatalogSettingsLogValue(s CatalogSettings) slog.Value {
	return slog.GroupValue(
		slog.String("path", s.Path),
		slog.Bool("watch", s.Watch),
		slog.String("name_prefix", s.NamePrefix),
		slog.Int("default_limit", s.DefaultLimit),
		slog.Bool("full_text", s.FullText),
		slog.Bool("cache", s.Cache.Enabled),
	)
}
