// Package cli implements the offline catalog subcommands. They load a catalog
// the same way the server does and print results to stdout.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sha1n/mcp-widget-catalog/internal/app"
	"github.com/sha1n/mcp-widget-catalog/internal/components"
	"github.com/sha1n/mcp-widget-catalog/internal/config"
	"github.com/spf13/cobra"
)

// Commands returns the catalog subcommands.
func Commands() []*cobra.Command {
	return []*cobra.Command{
		NewSearchCommand(),
		NewSuggestCommand(),
		NewRelatedCommand(),
		NewCategoriesCommand(),
		NewExportCommand(),
	}
}

// registerCommonFlags adds the catalog selection and output flags shared by every subcommand.
func registerCommonFlags(cmd *cobra.Command, withFormat bool) {
	app.RegisterCatalogFlags(cmd.Flags())
	cmd.Flags().BoolP("verbose", "v", false, "Log catalog loading details to stderr")
	if withFormat {
		cmd.Flags().StringP("format", "f", FormatText, "Output format: text or json")
	}
}

// loadService resolves the catalog settings from flags and environment and loads the catalog.
// The caller owns the returned service and must close it.
func loadService(cmd *cobra.Command) (*components.Service, error) {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	settings, err := config.LoadSettingsWithFlags(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	catalogSettings := oneShot(settings.Catalog)
	svc, err := components.NewService(&catalogSettings, nil)
	if err != nil {
		return nil, err
	}
	if err := svc.Initialize(context.Background()); err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return svc, nil
}

// oneShot strips file watching and scheduled polling from catalog settings.
// A one-shot command exits before either could fire.
func oneShot(settings config.CatalogSettings) config.CatalogSettings {
	settings.Watch = false
	settings.ReloadSchedule = ""
	return settings
}

// newRenderer creates a renderer for the command's --format flag.
func newRenderer(cmd *cobra.Command) (*Renderer, error) {
	format, _ := cmd.Flags().GetString("format")
	return NewRenderer(cmd.OutOrStdout(), format)
}

func closeService(svc *components.Service) {
	if err := svc.Close(); err != nil {
		slog.Error("Failed to close catalog service", "error", err)
	}
}
