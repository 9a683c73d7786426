// Package cli wires the command-line surface of snipstash: it parses
// commands and interactive input into typed requests and hands them to
// the snippet service. No domain logic lives here.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/snipstash/snipstash/internal/api"
	"github.com/snipstash/snipstash/internal/config"
	"github.com/snipstash/snipstash/internal/logger"
	"github.com/snipstash/snipstash/internal/snippets"
	"github.com/snipstash/snipstash/internal/vault"
)

// App carries the dependencies of the command handlers. Tests preset
// Service and In/Out; the binary fills them in initService.
type App struct {
	Version   string
	BuildDate string

	// In is the interactive input source, stdin by default.
	In io.Reader

	// ConfigDir overrides the config location, empty for the OS default.
	ConfigDir string

	Service *snippets.Service

	verbose bool
	log     *zap.Logger
}

// NewApp returns an App for the given build metadata.
func NewApp(version, buildDate string) *App {
	return &App{Version: version, BuildDate: buildDate, In: os.Stdin}
}

// initService builds the production wiring: logger, config store, OS
// keyring vault, HTTP client factory, service. Skipped when a test
// already injected a Service.
func (a *App) initService() error {
	if a.Service != nil {
		return nil
	}
	log, err := logger.New(a.verbose)
	if err != nil {
		return err
	}
	a.log = log

	store, err := config.NewStore(a.ConfigDir)
	if err != nil {
		return err
	}
	svc, err := snippets.NewService(store, vault.NewKeyring(), func(serverURL, token string) snippets.API {
		return api.New(serverURL, token, log)
	}, log)
	if err != nil {
		return err
	}
	a.Service = svc
	return nil
}

// NewRootCmd builds the snipstash command tree. Shell completion comes
// from cobra's generated completion subcommand.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "snipstash",
		Short:         "Manage snippets on a SnipStash server",
		Long:          "snipstash pushes, fetches and searches code snippets on a SnipStash server over its HTTP API.",
		Version:       fmt.Sprintf("%s (built %s)", orNA(a.Version), orNA(a.BuildDate)),
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initService()
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newCreateCmd(a),
		newGetCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newListCmd(a),
		newSearchCmd(a),
	)
	return root
}

// Execute runs the command tree and reports whether it succeeded.
func Execute(a *App) error {
	return NewRootCmd(a).Execute()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
