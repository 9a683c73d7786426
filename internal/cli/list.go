package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/snipstash/snipstash/internal/api"
)

func newListCmd(a *App) *cobra.Command {
	var (
		all      bool
		pageSize int
		page     int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show a paginated list of snippets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if all {
				items, err := a.Service.ListAll(cmd.Context())
				if err != nil {
					return err
				}
				printSnippets(out, items)
				fmt.Fprintf(out, "%d snippet(s).\n", len(items))
				return nil
			}

			p, err := a.Service.List(cmd.Context(), page, pageSize)
			if err != nil {
				return err
			}
			printSnippets(out, p.Items)
			pages := totalPages(p.Total, p.PageSize)
			fmt.Fprintf(out, "Page %d of %d (%d snippet(s) total).\n", p.Page, pages, p.Total)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "fetch every page, not just one")
	cmd.Flags().IntVarP(&pageSize, "number", "n", 0, "page size (defaults to the configured page size)")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number, starting at 1")
	return cmd
}

func printSnippets(w io.Writer, items []api.Snippet) {
	for _, s := range items {
		fmt.Fprintf(w, "%s  %-30s  %s\n", s.ID, s.Title, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

func totalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}
