// Package main provides the CLI entrypoint for wrapper-generator.
//
// wrapper-generator reads a YAML ruleset and a C++ source tree and writes
// pybind11 wrapper sources:
//   - Infers template instantiations from the headers
//   - Parses the headers with castxml
//   - Matches the ruleset against the declarations found
//   - Decides per class what can be bound and renders the wrappers
package main

import (
	"context"
	"os"
	"os/signal"

	"wrapper-generator/internal/cli"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	app := &cli.App{Version: version, Stdout: os.Stdout, Stderr: os.Stderr}
	code := app.Run(ctx, os.Args[1:])

	stop()
	os.Exit(code)
}
