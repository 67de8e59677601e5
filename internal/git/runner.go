// Package git wraps the git CLI for git-llm.
// This file defines the Runner interface for git CLI operations.
package git

import "context"

// Runner defines the git operations used by commit and changelog generation.
// All operations run in the runner's working directory and use context for
// cancellation.
type Runner interface {
	// CurrentBranch returns the name of the currently checked out branch.
	// Returns an error in detached HEAD state.
	CurrentBranch(ctx context.Context) (string, error)

	// StagedDiff returns the diff of staged changes (git diff --cached).
	// Returns ErrNoStagedChanges when nothing is staged.
	StagedDiff(ctx context.Context) (string, error)

	// CommitMessages returns the commit subjects in fromRef..toRef,
	// newest first. Returns ErrNoCommitsInRange when the range is empty.
	CommitMessages(ctx context.Context, fromRef, toRef string) ([]string, error)

	// LatestTag returns the most recent tag reachable from HEAD.
	// Returns "" without error when the repository has no tags.
	LatestTag(ctx context.Context) (string, error)

	// RootCommit returns the hash of the repository's initial commit.
	RootCommit(ctx context.Context) (string, error)

	// RepoRoot returns the absolute path of the repository's top-level
	// directory.
	RepoRoot(ctx context.Context) (string, error)

	// Commit creates a commit with the given message.
	// Returns ErrNoStagedChanges when there is nothing to commit.
	Commit(ctx context.Context, message string) error

	// ConfigGet returns a git configuration value (git config --get).
	// Returns "" without error when the key is unset.
	ConfigGet(ctx context.Context, key string) (string, error)
}
