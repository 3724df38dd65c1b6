package cli

import (
	"strings"

	"github.com/sha1n/mcp-widget-catalog/internal/domain"
	"github.com/sha1n/mcp-widget-catalog/internal/search"
	"github.com/spf13/cobra"
)

// NewSearchCommand creates the search subcommand.
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search the component catalog",
		Long: "Search the component catalog by keyword. Words are joined into one query;\n" +
			"partial mode (the default) also matches substrings of indexed tokens.",
		Args: cobra.MinimumNArgs(1),
		RunE: runSearch,
	}

	registerCommonFlags(cmd, true)
	cmd.Flags().StringP("mode", "m", search.ModePartial.String(), "Match mode: partial or exact")
	cmd.Flags().IntP("limit", "l", 0, "Maximum number of results (default from configuration)")
	cmd.Flags().String("category", "", "Only show components in this category")
	cmd.Flags().StringSlice("tag", nil, "Only show components carrying one of these tags (repeatable)")
	cmd.Flags().Bool("full-text", false, "Use the relevance-ranked full-text index")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	modeName, _ := cmd.Flags().GetString("mode")
	mode, err := search.ParseMode(modeName)
	if err != nil {
		return err
	}

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
	if limit <= 0 {
		limit = svc.DefaultLimit()
	}
	category, _ := cmd.Flags().GetString("category")
	tags, _ := cmd.Flags().GetStringSlice("tag")
	fullText, _ := cmd.Flags().GetBool("full-text")

	query := strings.Join(args, " ")
	req := search.NewRequest(query,
		search.WithMode(mode),
		search.WithLimit(limit),
		search.WithCategory(category),
		search.WithTags(tags...),
	)

	var results []domain.SearchResult
	if fullText {
		results, err = svc.FullTextSearch(cmd.Context(), req)
	} else {
		results, err = svc.Search(cmd.Context(), req)
	}
	if err != nil {
		return err
	}
	return renderer.SearchResults(query, results)
}
