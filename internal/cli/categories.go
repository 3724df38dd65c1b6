package cli

import "github.com/spf13/cobra"

// NewCategoriesCommand creates the categories subcommand.
func NewCategoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the categories present in the catalog",
		Args:  cobra.NoArgs,
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

			categories, err := svc.Categories()
			if err != nil {
				return err
			}
			return renderer.Categories(categories)
		},
	}

	registerCommonFlags(cmd, true)
	return cmd
}
