package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by the server.
const EnvPrefix = "WIDGET_MCP"

// Auth type constants
const (
	AuthTypeNone   = "none"
	AuthTypeBasic  = "basic"
	AuthTypeAPIKey = "apikey"
)

// DefaultCatalogPath is where the catalog file is looked up when none is configured.
const DefaultCatalogPath = "data/components_meta.json"

// AuthSettings configuration for authentication
type AuthSettings struct {
	Type    string            `mapstructure:"type"` // AuthTypeNone, AuthTypeBasic, or AuthTypeAPIKey
	Basic   BasicAuthSettings `mapstructure:"basic"`
	APIKeys []string          `mapstructure:"api_keys"`
}

// BasicAuthSettings configuration for basic auth
type BasicAuthSettings struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// CacheSettings configuration for the search result cache
type CacheSettings struct {
	Enabled bool          `mapstructure:"enabled"`
	Size    int           `mapstructure:"size"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// CatalogSettings configuration for the component catalog and its search engine
type CatalogSettings struct {
	Path          string        `mapstructure:"path"`
	Watch         bool          `mapstructure:"watch"`
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
	NamePrefix    string        `mapstructure:"name_prefix"`
	DefaultLimit  int           `mapstructure:"default_limit"`
	FullText      bool          `mapstructure:"full_text"`
	Cache         CacheSettings `mapstructure:"cache"`

	// ReloadSchedule is a cron spec ("@every 5m", "*/10 * * * *") for polling the
	// catalog file. Empty disables polling.
	ReloadSchedule string `mapstructure:"reload_schedule"`
}

// MetricsSettings configuration for the Prometheus endpoint
type MetricsSettings struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Settings application settings
type Settings struct {
	Transport string          `mapstructure:"transport"`
	Host      string          `mapstructure:"host"`
	Port      int             `mapstructure:"port"`
	Auth      AuthSettings    `mapstructure:"auth"`
	Catalog   CatalogSettings `mapstructure:"catalog"`
	Metrics   MetricsSettings `mapstructure:"metrics"`
}

// LoadSettings loads settings from environment variables and optional .env file
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > .env file > defaults.
// If flags is nil, only env vars and defaults are used.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	// Default values
	v.SetDefault("transport", "stdio")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("auth.type", AuthTypeNone)

	// Catalog defaults
	v.SetDefault("catalog.path", DefaultCatalogPath)
	v.SetDefault("catalog.watch", false)
	v.SetDefault("catalog.watch_debounce", 250*time.Millisecond)
	v.SetDefault("catalog.name_prefix", "st.")
	v.SetDefault("catalog.reload_schedule", "")
	v.SetDefault("catalog.default_limit", 10)
	v.SetDefault("catalog.full_text", true)
	v.SetDefault("catalog.cache.enabled", true)
	v.SetDefault("catalog.cache.size", 100)
	v.SetDefault("catalog.cache.ttl", time.Hour)

	// Metrics defaults
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.path", "/metrics")

	// Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind specific env vars for nested config
	_ = v.BindEnv("auth.type", EnvPrefix+"_AUTH_TYPE")
	_ = v.BindEnv("auth.basic.username", EnvPrefix+"_AUTH_BASIC_USERNAME")
	_ = v.BindEnv("auth.basic.password", EnvPrefix+"_AUTH_BASIC_PASSWORD")
	_ = v.BindEnv("auth.api_keys", EnvPrefix+"_AUTH_API_KEYS")

	// Catalog env var bindings
	_ = v.BindEnv("catalog.path", EnvPrefix+"_CATALOG_PATH")
	_ = v.BindEnv("catalog.watch", EnvPrefix+"_CATALOG_WATCH")
	_ = v.BindEnv("catalog.watch_debounce", EnvPrefix+"_CATALOG_WATCH_DEBOUNCE")
	_ = v.BindEnv("catalog.name_prefix", EnvPrefix+"_CATALOG_NAME_PREFIX")
	_ = v.BindEnv("catalog.reload_schedule", EnvPrefix+"_CATALOG_RELOAD_SCHEDULE")
	_ = v.BindEnv("catalog.default_limit", EnvPrefix+"_CATALOG_DEFAULT_LIMIT")
	_ = v.BindEnv("catalog.full_text", EnvPrefix+"_CATALOG_FULL_TEXT")
	_ = v.BindEnv("catalog.cache.enabled", EnvPrefix+"_CATALOG_CACHE_ENABLED")
	_ = v.BindEnv("catalog.cache.size", EnvPrefix+"_CATALOG_CACHE_SIZE")
	_ = v.BindEnv("catalog.cache.ttl", EnvPrefix+"_CATALOG_CACHE_TTL")

	// Metrics env var bindings
	_ = v.BindEnv("metrics.enabled", EnvPrefix+"_METRICS_ENABLED")
	_ = v.BindEnv("metrics.path", EnvPrefix+"_METRICS_PATH")

	// Bind CLI flags if provided (highest priority)
	if flags != nil {
		bindFlag(v, flags, "transport", "transport")
		bindFlag(v, flags, "host", "host")
		bindFlag(v, flags, "port", "port")
		bindFlag(v, flags, "auth.type", "auth-type")
		bindFlag(v, flags, "auth.basic.username", "auth-basic-username")
		bindFlag(v, flags, "auth.basic.password", "auth-basic-password")
		bindFlag(v, flags, "auth.api_keys", "auth-api-keys")

		// Catalog CLI flags
		bindFlag(v, flags, "catalog.path", "catalog")
		bindFlag(v, flags, "catalog.watch", "catalog-watch")
		bindFlag(v, flags, "catalog.watch_debounce", "catalog-watch-debounce")
		bindFlag(v, flags, "catalog.name_prefix", "catalog-name-prefix")
		bindFlag(v, flags, "catalog.reload_schedule", "catalog-reload-schedule")
		bindFlag(v, flags, "catalog.default_limit", "catalog-default-limit")
		bindFlag(v, flags, "catalog.full_text", "catalog-full-text")
		bindFlag(v, flags, "catalog.cache.enabled", "catalog-cache-enabled")
		bindFlag(v, flags, "catalog.cache.size", "catalog-cache-size")
		bindFlag(v, flags, "catalog.cache.ttl", "catalog-cache-ttl")

		// Metrics CLI flags
		bindFlag(v, flags, "metrics.enabled", "metrics-enabled")
		bindFlag(v, flags, "metrics.path", "metrics-path")
	}

	// Helper to look for .env file
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if .env doesn't exist

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	// Handle explicit parsing of API keys if provided via env var as comma-separated string
	apiKeysEnv := os.Getenv(EnvPrefix + "_AUTH_API_KEYS")
	if apiKeysEnv != "" {
		if len(settings.Auth.APIKeys) == 0 || (len(settings.Auth.APIKeys) == 1 && strings.Contains(settings.Auth.APIKeys[0], ",")) {
			settings.Auth.APIKeys = strings.Split(apiKeysEnv, ",")
		}
	}

	// Trim spaces from API keys
	for i := range settings.Auth.APIKeys {
		settings.Auth.APIKeys[i] = strings.TrimSpace(settings.Auth.APIKeys[i])
	}
	settings.Auth.APIKeys = filterEmptyStrings(settings.Auth.APIKeys)

	// Expand home directory in the catalog path
	settings.Catalog.Path = expandHomeDir(strings.TrimSpace(settings.Catalog.Path))

	return &settings, nil
}

// bindFlag binds a viper key to a flag when the flag set defines it.
// Subcommands register only the flags they need.
func bindFlag(v *viper.Viper, flags *pflag.FlagSet, key, name string) {
	if f := flags.Lookup(name); f != nil {
		_ = v.BindPFlag(key, f)
	}
}

// expandHomeDir expands ~ to the user's home directory
func expandHomeDir(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}

// filterEmptyStrings removes empty strings from a slice
func filterEmptyStrings(s []string) []string {
	var result []string
	for _, str := range s {
		if str != "" {
			result = append(result, str)
		}
	}
	return result
}

// ValidateSettings checks for conflicting configurations.
// Returns an error if the settings contain mutually exclusive or incomplete auth config,
// or out of range catalog and metrics values.
func ValidateSettings(s *Settings) error {
	// Validate transport type
	switch s.Transport {
	case "stdio", "sse":
		// valid
	default:
		return errors.New("transport must be 'stdio' or 'sse', got: " + s.Transport)
	}

	hasBasicCreds := s.Auth.Basic.Username != "" || s.Auth.Basic.Password != ""
	hasAPIKeys := len(s.Auth.APIKeys) > 0

	switch s.Auth.Type {
	case AuthTypeNone, "":
		if hasBasicCreds || hasAPIKeys {
			return errors.New("auth-type 'none' is incompatible with auth credentials")
		}
	case AuthTypeBasic:
		if hasAPIKeys {
			return errors.New("auth-type 'basic' is mutually exclusive with auth-api-keys")
		}
		if s.Auth.Basic.Username == "" || s.Auth.Basic.Password == "" {
			return errors.New("auth-type 'basic' requires both username and password")
		}
	case AuthTypeAPIKey:
		if hasBasicCreds {
			return errors.New("auth-type 'apikey' is mutually exclusive with basic auth credentials")
		}
		if !hasAPIKeys {
			return errors.New("auth-type 'apikey' requires at least one API key")
		}
	default:
		return errors.New("unknown auth-type: " + s.Auth.Type)
	}

	if err := validateCatalogSettings(&s.Catalog); err != nil {
		return err
	}

	return validateMetricsSettings(&s.Metrics)
}

// validateCatalogSettings validates the catalog configuration
func validateCatalogSettings(c *CatalogSettings) error {
	if c.DefaultLimit <= 0 {
		return errors.New("catalog-default-limit must be positive")
	}

	if c.Watch {
		if c.Path == "" {
			return errors.New("catalog-watch requires a catalog path")
		}
		if c.WatchDebounce <= 0 {
			return errors.New("catalog-watch-debounce must be positive")
		}
	}

	if c.ReloadSchedule != "" {
		if c.Path == "" {
			return errors.New("catalog-reload-schedule requires a catalog path")
		}
		if _, err := cron.ParseStandard(c.ReloadSchedule); err != nil {
			return fmt.Errorf("invalid catalog-reload-schedule %q: %w", c.ReloadSchedule, err)
		}
	}

	if c.Cache.Enabled {
		if c.Cache.Size <= 0 {
			return errors.New("catalog-cache-size must be positive")
		}
		if c.Cache.TTL <= 0 {
			return errors.New("catalog-cache-ttl must be positive")
		}
	}

	return nil
}

// validateMetricsSettings validates the metrics configuration
func validateMetricsSettings(m *MetricsSettings) error {
	if !m.Enabled {
		return nil // No validation needed when disabled
	}

	if !strings.HasPrefix(m.Path, "/") {
		return errors.New("metrics-path must start with '/', got: " + m.Path)
	}

	switch m.Path {
	case "/", "/health", "/sse", "/message":
		return errors.New("metrics-path conflicts with a server route: " + m.Path)
	}

	return nil
}
