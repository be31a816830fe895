// Package main is the entry point for the pipekit binary.
// It provides a CLI for running and composing record pipelines.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd, state := newRootCmd()
	err := cmd.ExecuteContext(ctx)
	stop()

	if terr := state.teardown(); terr != nil && err == nil {
		err = terr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
