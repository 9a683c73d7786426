package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *App) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "login <server-url>",
		Short: "Authenticate against a SnipStash server",
		Long: "Validates the API token with a probe request and, on success, saves the " +
			"server address to the config file and the token to the OS keyring.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := token
			if secret == "" {
				var err error
				secret, err = promptSecret(cmd.OutOrStdout(), "API token: ")
				if err != nil {
					return err
				}
			}
			if err := a.Service.Login(cmd.Context(), args[0], secret); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s. Token saved to the OS keyring.\n",
				a.Service.ServerURL())
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "API token (prompted without echo when omitted)")
	return cmd
}

func newLogoutCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Service.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}
