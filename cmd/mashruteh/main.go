// Command mashruteh is a terminal reader and assistant for the 1906 Persian
// constitution.
package main

import (
	"os"

	"github.com/custodia-labs/mashruteh/internal/adapters/driving/cli"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
