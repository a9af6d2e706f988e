// Package main is the groundstation command itself.
package main

import (
	"context"
	"os"

	"go.viam.com/utils"

	"go.viam.com/groundstation/cli"
	"go.viam.com/groundstation/logging"
)

var logger = logging.NewLogger("entrypoint")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

func mainWithArgs(ctx context.Context, args []string, logger logging.Logger) error {
	return cli.NewApp(os.Stdout, os.Stderr).RunContext(ctx, args)
}
