// Package errors provides centralized error handling for git-llm-tool.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrConfig indicates malformed or invalid configuration: an unparsable
	// config file, an invalid Jira branch regex, or a regex without a
	// capture group. Fatal to the current command; never retried.
	ErrConfig = errors.New("invalid configuration")

	// ErrConfigNotFound indicates the configuration file was not found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrUnknownConfigKey indicates a config get/set used a key that is not
	// in the recognized key table.
	ErrUnknownConfigKey = errors.New("unknown configuration key")

	// ErrMissingCredential indicates the selected provider requires an API
	// key that no configuration source supplies. The error message names
	// the dotted key path, never a credential value.
	ErrMissingCredential = errors.New("missing credential")

	// ErrUnsupportedModel indicates no registered provider matches the
	// requested model name.
	ErrUnsupportedModel = errors.New("unsupported model")

	// ErrNoEditorFound indicates the editor resolution chain was exhausted
	// without finding a usable editor.
	ErrNoEditorFound = errors.New("no suitable editor found")

	// ErrEditorFailed indicates the editor subprocess exited with a
	// non-zero status.
	ErrEditorFailed = errors.New("editor failed")

	// ErrGeneration wraps any backend or transport failure during an LLM
	// call. Backend-specific errors never leak past this sentinel, and
	// generation is never retried automatically.
	ErrGeneration = errors.New("generation failed")

	// ErrUserCancelled indicates the user deliberately aborted: an
	// interrupt during a prompt or network call, a declined confirmation,
	// or an emptied commit message. Not a failure; carries its own exit code.
	ErrUserCancelled = errors.New("cancelled by user")

	// ErrGitOperation indicates that a git command (diff, log, commit, etc.)
	// failed during execution.
	ErrGitOperation = errors.New("git operation failed")

	// ErrNotGitRepo indicates the working directory is not a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrNoStagedChanges indicates the staged diff is empty.
	ErrNoStagedChanges = errors.New("no staged changes")

	// ErrNoCommitsInRange indicates the requested log range contains no commits.
	ErrNoCommitsInRange = errors.New("no commits in range")

	// ErrInvalidTicket indicates text that does not look like a Jira issue
	// key (e.g. PROJ-123).
	ErrInvalidTicket = errors.New("invalid ticket format")

	// ErrInvalidWorkHours indicates work-hours input that does not match
	// the Nw Nd Nh Nm token grammar.
	ErrInvalidWorkHours = errors.New("invalid work hours format")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrFileExists indicates a refusal to overwrite an existing file
	// without --force.
	ErrFileExists = errors.New("file already exists")

	// ErrLockTimeout indicates a file lock could not be acquired.
	ErrLockTimeout = errors.New("lock acquisition timeout")

	// ErrInteractiveRequired indicates that interactive prompts are
	// required but stdin is not a terminal.
	ErrInteractiveRequired = errors.New("interactive prompt required")

	// ErrInvalidArgument indicates that an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
