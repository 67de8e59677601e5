// Package git wraps the git CLI for git-llm.
// This file implements the CLIRunner which wraps git CLI commands.
package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrz1836/git-llm-tool/internal/ctxutil"
	llmerrors "github.com/mrz1836/git-llm-tool/internal/errors"
)

// CLIRunner implements Runner using the git CLI.
type CLIRunner struct {
	workDir string // Working directory for git commands
}

// NewRunner creates a new CLIRunner for the given working directory.
// Returns an error if the directory is not a git repository.
func NewRunner(ctx context.Context, workDir string) (*CLIRunner, error) {
	if workDir == "" {
		return nil, fmt.Errorf("work directory cannot be empty: %w", llmerrors.ErrEmptyValue)
	}

	r := &CLIRunner{workDir: workDir}

	// Verify this is a git repository
	_, err := r.runGitCommand(ctx, "rev-parse", "--git-dir")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", llmerrors.ErrNotGitRepo, err)
	}

	return r, nil
}

// CurrentBranch returns the name of the currently checked out branch.
// Uses symbolic-ref so a detached HEAD fails instead of reporting "HEAD".
func (r *CLIRunner) CurrentBranch(ctx context.Context) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}

	output, err := r.runGitCommand(ctx, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}

	return output, nil
}

// StagedDiff returns the diff of staged changes.
func (r *CLIRunner) StagedDiff(ctx context.Context) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}

	output, err := r.runGitCommand(ctx, "diff", "--cached")
	if err != nil {
		return "", fmt.Errorf("failed to get staged diff: %w", err)
	}

	if strings.TrimSpace(output) == "" {
		return "", fmt.Errorf("no staged changes found, use 'git add' to stage files first: %w", llmerrors.ErrNoStagedChanges)
	}

	return output, nil
}

// CommitMessages returns the commit subjects in fromRef..toRef, newest first.
func (r *CLIRunner) CommitMessages(ctx context.Context, fromRef, toRef string) ([]string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	if toRef == "" {
		toRef = "HEAD"
	}

	commitRange := toRef
	if fromRef != "" {
		commitRange = fromRef + ".." + toRef
	}

	output, err := r.runGitCommand(ctx, "log", commitRange, "--pretty=format:%s")
	if err != nil {
		return nil, fmt.Errorf("failed to read commit log: %w", err)
	}

	var messages []string
	for _, line := range strings.Split(output, "\n") {
		if msg := strings.TrimSpace(line); msg != "" {
			messages = append(messages, msg)
		}
	}

	if len(messages) == 0 {
		return nil, fmt.Errorf("no commits found in range %s: %w", commitRange, llmerrors.ErrNoCommitsInRange)
	}

	return messages, nil
}

// LatestTag returns the most recent tag reachable from HEAD.
func (r *CLIRunner) LatestTag(ctx context.Context) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}

	output, err := r.runGitCommand(ctx, "describe", "--tags", "--abbrev=0")
	if err != nil {
		// An untagged repository is not an error; callers fall back to
		// the root commit.
		errStr := strings.ToLower(err.Error())
		if strings.Contains(errStr, "no names found") ||
			strings.Contains(errStr, "cannot describe") ||
			strings.Contains(errStr, "no tags can describe") {
			return "", nil
		}
		return "", fmt.Errorf("failed to find latest tag: %w", err)
	}

	return output, nil
}

// RootCommit returns the hash of the repository's initial commit.
// Histories with multiple roots yield the first one listed.
func (r *CLIRunner) RootCommit(ctx context.Context) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}

	output, err := r.runGitCommand(ctx, "rev-list", "--max-parents=0", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to find root commit: %w", err)
	}

	lines := strings.Split(output, "\n")
	return strings.TrimSpace(lines[0]), nil
}

// RepoRoot returns the absolute path of the repository's top-level directory.
func (r *CLIRunner) RepoRoot(ctx context.Context) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}

	output, err := r.runGitCommand(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("failed to get repository root: %w", err)
	}

	return output, nil
}

// Commit creates a commit with the given message.
func (r *CLIRunner) Commit(ctx context.Context, message string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	if message == "" {
		return fmt.Errorf("commit message cannot be empty: %w", llmerrors.ErrEmptyValue)
	}

	_, err := r.runGitCommand(ctx, "commit", "-m", message)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "nothing to commit") {
			return fmt.Errorf("no staged changes to commit: %w", llmerrors.ErrNoStagedChanges)
		}
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

// ConfigGet returns a git configuration value.
// Unset keys exit git with status 1 and no stderr, indistinguishable from
// other lookup misses, so any git-level failure reads as unset.
func (r *CLIRunner) ConfigGet(ctx context.Context, key string) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}

	output, err := r.runGitCommand(ctx, "config", "--get", key)
	if err != nil {
		if errors.Is(err, llmerrors.ErrGitOperation) {
			return "", nil
		}
		return "", err
	}

	return output, nil
}

// runGitCommand executes a git command and returns its output.
// This is a convenience wrapper around RunCommand that uses the runner's workDir.
func (r *CLIRunner) runGitCommand(ctx context.Context, args ...string) (string, error) {
	return RunCommand(ctx, r.workDir, args...)
}
