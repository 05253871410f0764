// Package main is the entry point for the tally CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/runoshun/tally/internal/app"
	"github.com/runoshun/tally/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run executes the CLI with args. The container is initialized lazily by the
// root command, so --help and --version work without config or store.
func run(args []string, stdout, stderr io.Writer) (err error) {
	container := app.NewContainer()
	defer func() {
		err = errors.Join(err, container.Close())
	}()

	rootCmd := cli.NewRootCommand(container, version)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}
