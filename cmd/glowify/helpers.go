package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/glowify/storefront/internal/config"
)

// exitOnError prints the error to stderr and exits.
func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// stdoutIsTTY reports whether stdout is a terminal. Piped output gets the
// plain renderer.
func stdoutIsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// cmdContext returns a context bounded by the configured request timeout.
func cmdContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), config.Env().Timeout)
}
