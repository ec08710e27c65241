package main

import (
	"context"
	"fmt"
	"os"

	"github.com/CodexForgeBR/flash-ui/internal/cli"
	"github.com/CodexForgeBR/flash-ui/internal/exitcode"
	"github.com/CodexForgeBR/flash-ui/internal/logging"
	sighandler "github.com/CodexForgeBR/flash-ui/internal/signal"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := sighandler.WithInterrupt(context.Background(), func(os.Signal) {
		logging.Warn("Interrupted, saving partial results...")
	})

	root := cli.NewRootCommand(cli.NewApp(), fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date))
	err := cli.Execute(ctx, root, os.Args[1:])
	stop()

	if err != nil {
		logging.Error(err.Error())
	}
	os.Exit(exitcode.ForError(err))
}
