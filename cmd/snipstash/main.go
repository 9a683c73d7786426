// Command snipstash is the CLI client for a SnipStash snippet server.
package main

import (
	"os"

	"github.com/snipstash/snipstash/internal/cli"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	if err := cli.Execute(cli.NewApp(version, buildDate)); err != nil {
		os.Exit(1)
	}
}
