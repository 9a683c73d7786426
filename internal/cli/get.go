package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd(a *App) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a snippet and write its files to disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.Service.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			written, err := writeFiles(output, s.Files)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s, %s)\n", s.Title, s.ID, s.Visibility)
			if s.Description != "" {
				fmt.Fprintln(out, s.Description)
			}
			for _, path := range written {
				fmt.Fprintf(out, "  wrote %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", ".", "directory to write the snippet's files into")
	return cmd
}
