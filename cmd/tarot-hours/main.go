package main

import (
	"os"

	"github.com/minjilee/tarot-hours/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
