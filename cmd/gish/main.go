package main

import (
	"fmt"
	"os"

	"github.com/gish-shell/gish/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gish: %v\n", err)
		os.Exit(1)
	}
	os.Exit(cli.ExitCode())
}
