package cli

import (
	"fmt"

	"github.com/sha1n/mcp-widget-catalog/internal/components"
	"github.com/spf13/cobra"
)

// NewExportCommand creates the export subcommand.
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Write the loaded catalog to a file",
		Long: "Write the loaded catalog to a file. The format follows the extension\n" +
			"(.json, .yaml, .yml or .toml). When no catalog file is found the embedded default catalog is written.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService(cmd)
			if err != nil {
				return err
			}
			defer closeService(svc)

			list, err := svc.Components()
			if err != nil {
				return err
			}

			path := args[0]
			if err := components.SaveCatalogContext(cmd.Context(), path, list); err != nil {
				return err
			}

			styles := StylesFor(cmd.OutOrStdout())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d components from %s to %s\n",
				styles.Title.Render("Exported"), len(list), svc.Source(), styles.ID.Render(path))
			return nil
		},
	}

	registerCommonFlags(cmd, false)
	return cmd
}
