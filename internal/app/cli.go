package app

import "github.com/spf13/pflag"

// RegisterFlags registers all CLI flags on the given FlagSet
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("transport", "t", "", "Transport type: stdio or sse")
	flags.StringP("host", "H", "", "Host for SSE transport")
	flags.IntP("port", "p", 0, "Port for SSE transport")
	flags.StringP("auth-type", "a", "", "Authentication type: none, basic, or apikey")
	flags.StringP("auth-basic-username", "u", "", "Basic auth username")
	flags.StringP("auth-basic-password", "P", "", "Basic auth password")
	flags.StringSliceP("auth-api-keys", "k", nil, "API keys (comma-separated)")

	RegisterCatalogFlags(flags)
	flags.Bool("catalog-watch", false, "Reload the catalog when the file changes")
	flags.Duration("catalog-watch-debounce", 0, "Delay between a catalog change and the reload")
	flags.String("catalog-reload-schedule", "", "Cron schedule for polling the catalog file (e.g. '@every 5m')")
	flags.Int("catalog-default-limit", 0, "Default maximum number of search results")
	flags.Bool("catalog-full-text", false, "Enable the full-text search tool")
	flags.Bool("catalog-cache-enabled", false, "Cache search results")
	flags.Int("catalog-cache-size", 0, "Maximum number of cached searches")
	flags.Duration("catalog-cache-ttl", 0, "How long cached searches stay valid")

	flags.Bool("metrics-enabled", false, "Expose Prometheus metrics (SSE transport only)")
	flags.String("metrics-path", "", "HTTP path of the metrics endpoint")
}

// RegisterCatalogFlags registers the flags that select and interpret a catalog.
// They are shared by the server and the offline subcommands.
func RegisterCatalogFlags(flags *pflag.FlagSet) {
	flags.StringP("catalog", "c", "", "Path to the component catalog (.json, .yaml or .toml)")
	flags.String("catalog-name-prefix", "", "Prefix of component names used by suggestions")
}
