package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snipstash/snipstash/internal/api"
)

func newSearchCmd(a *App) *cobra.Command {
	var (
		sortOrder  string
		searchCode bool
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search snippets by title and description",
		Long: "Searches snippet titles and descriptions. With --search-code the file " +
			"contents are searched as well.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, err := a.Service.Search(cmd.Context(), api.SearchQuery{
				Text:       args[0],
				Sort:       api.SortOrder(sortOrder),
				SearchCode: searchCode,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSnippets(out, matches)
			fmt.Fprintf(out, "%d match(es).\n", len(matches))
			return nil
		},
	}
	cmd.Flags().StringVarP(&sortOrder, "sort", "s", string(api.SortNewest),
		"sort order: newest, oldest, alpha-asc, alpha-desc")
	cmd.Flags().BoolVar(&searchCode, "search-code", false, "also search file contents")
	return cmd
}
