// Package main is the entry point for the git-llm CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mrz1836/git-llm-tool/internal/cli"
	"github.com/mrz1836/git-llm-tool/internal/errors"
	"github.com/mrz1836/git-llm-tool/internal/signal"
)

// Build information, injected via -ldflags at release time.
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	os.Exit(run())
}

// run executes the CLI and maps the result to a process exit code. Deferred
// cleanup happens inside run so os.Exit in main cannot skip it.
func run() int {
	handler := signal.NewHandler(context.Background())
	defer handler.Stop()
	defer cli.CloseLogFile()

	err := cli.Execute(handler.Context(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	if err != nil {
		printError(err)
	}
	return cli.ExitCodeForError(err)
}

// printError renders a user-facing message to stderr. Messages come from the
// curated error table, so credentials and raw provider payloads never reach
// the terminal here.
func printError(err error) {
	message, action := errors.Actionable(err)
	_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	if action != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  → %s\n", action)
	}
}
