// Command tcm manages publications on a Content Manager server from the
// command line.
package main

import (
	"os"

	"github.com/smnsjas/go-coreservice/internal/cli"
)

func main() {
	if err := cli.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
