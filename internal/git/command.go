// Package git wraps the git CLI for git-llm.
// This file provides shared git command execution utilities.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	llmerrors "github.com/mrz1836/git-llm-tool/internal/errors"
)

// RunCommand executes a git command in the specified directory and returns
// its trimmed stdout. All failures are wrapped with ErrGitOperation and
// include stderr for debugging.
func RunCommand(ctx context.Context, workDir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...) //#nosec G204 -- args are constructed internally, not user input
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		// Context cancellation wins over the process error.
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		// git writes some diagnostics to stdout (e.g. "nothing to commit"),
		// so fall back to it when stderr is empty.
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = strings.TrimSpace(stdout.String())
		}
		if detail != "" {
			return "", fmt.Errorf("git %s failed: %s: %w", args[0], detail, llmerrors.ErrGitOperation)
		}
		return "", fmt.Errorf("git %s failed: %w", args[0], llmerrors.ErrGitOperation)
	}

	return strings.TrimSpace(stdout.String()), nil
}
