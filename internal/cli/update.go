package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snipstash/snipstash/internal/api"
)

func newUpdateCmd(a *App) *cobra.Command {
	var (
		title       string
		description string
		public      bool
		categories  []string
	)
	cmd := &cobra.Command{
		Use:   "update <id> <file> [file...]",
		Short: "Replace a snippet's metadata and files",
		Long: "Uploads a full replacement for the snippet: the supplied files replace the " +
			"stored file set entirely. Files not listed here are removed from the snippet.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if title == "" {
				reader := bufio.NewReader(a.In)
				var err error
				if title, err = promptLine(reader, out, "Title"); err != nil {
					return err
				}
				if description, err = promptLine(reader, out, "Description (optional)"); err != nil {
					return err
				}
				if public, err = promptConfirm(reader, out, "Make the snippet public?"); err != nil {
					return err
				}
				raw, err := promptLine(reader, out, "Categories (comma-separated, optional)")
				if err != nil {
					return err
				}
				categories = splitCategories(raw)
			}

			files, err := readFiles(args[1:])
			if err != nil {
				return err
			}
			in := api.SnippetInput{
				Title:       title,
				Description: description,
				Visibility:  visibilityFor(public),
				Categories:  categories,
				Files:       files,
			}
			s, err := a.Service.Update(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Updated snippet %s; it now holds %d file(s).\n", s.ID, len(s.Files))
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "snippet title (prompted when omitted)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "snippet description")
	cmd.Flags().BoolVar(&public, "public", false, "make the snippet public")
	cmd.Flags().StringSliceVarP(&categories, "categories", "c", nil, "categories, repeatable or comma-separated")
	return cmd
}
