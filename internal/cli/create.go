package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snipstash/snipstash/internal/api"
)

func newCreateCmd(a *App) *cobra.Command {
	var (
		title       string
		description string
		public      bool
		categories  []string
	)
	cmd := &cobra.Command{
		Use:   "create <file> [file...]",
		Short: "Create a new snippet from local files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			// Without --title the metadata is collected interactively,
			// mirroring a bare `snipstash create file...` invocation.
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

			files, err := readFiles(args)
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
			s, err := a.Service.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Created snippet %q (id %s, %d file(s)).\n", s.Title, s.ID, len(s.Files))
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "snippet title (prompted when omitted)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "snippet description")
	cmd.Flags().BoolVar(&public, "public", false, "make the snippet public")
	cmd.Flags().StringSliceVarP(&categories, "categories", "c", nil, "categories, repeatable or comma-separated")
	return cmd
}

func visibilityFor(public bool) api.Visibility {
	if public {
		return api.VisibilityPublic
	}
	return api.VisibilityPrivate
}
