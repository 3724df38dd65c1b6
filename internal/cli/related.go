package cli

import (
	"github.com/sha1n/mcp-widget-catalog/internal/components"
	"github.com/sha1n/mcp-widget-catalog/internal/domain"
	"github.com/spf13/cobra"
)

// NewRelatedCommand creates the related subcommand.
func NewRelatedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "related <component-id>",
		Short: "List components related to a component",
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

			id := args[0]
			if _, err := svc.Component(id); err != nil {
				return err
			}

			limit, _ := cmd.Flags().GetInt("limit")
			ids, err := svc.Related(id, limit)
			if err != nil {
				return err
			}

			related := make([]domain.Component, 0, len(ids))
			for _, rid := range ids {
				c, err := svc.Component(rid)
				if err != nil {
					return err
				}
				related = append(related, c)
			}
			return renderer.Components("No related components for: "+id, related)
		},
	}

	registerCommonFlags(cmd, true)
	cmd.Flags().IntP("limit", "l", components.DefaultListLimit, "Maximum number of related components")

	return cmd
}
