package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"opencsg.com/csghub-release/cmd/csghub-release/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := cmd.RootCmd
	if err := command.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
