package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kbukum/cdnkit/cmd/cdnkit/commands"
)

func main() {
	// Create context that cancels on interrupt signals so in-flight
	// fetches abort cleanly.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Cobra reports the failure on stderr; just set the exit code.
	if err := commands.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
