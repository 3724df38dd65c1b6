package cli

import (
	"github.com/sha1n/mcp-widget-catalog/internal/components"
	"github.com/spf13/cobra"
)

// NewSuggestCommand creates the suggest subcommand.
func NewSuggestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "Complete a component name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			svc, err := loadService(cmd)
			if err != nil {
				return err
			}
			defer closeService(svc)

			limit, _ := cmd.Flags().GetInt("limit")
			names, err := svc.Suggest(args[0], limit)
			if err != nil {
				return err
			}
			return renderer.Names("No suggestions for prefix: "+args[0], names)
		},
	}

	registerCommonFlags(cmd, true)
	cmd.Flags().IntP("limit", "l", components.DefaultListLimit, "Maximum number of suggestions")

	return cmd
}
