// Package main provides the entry point for the fabsync CLI tool.
package main

import (
	"context"
	"os"

	"github.com/Ty9112/FabricationSample-sub002/cmd/fabsync/app"
	"github.com/Ty9112/FabricationSample-sub002/pkg/constants"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	application, err := app.New(version, commit, date)
	if err != nil {
		app.ExitOnError(err)
	}

	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	// Batch runs against large catalogs can stall on locked files; bound
	// the whole invocation rather than hang.
	ctx, timeout := context.WithTimeout(ctx, constants.CommandTimeout)
	defer timeout()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		app.ExitOnError(err)
	}
}
