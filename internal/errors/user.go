package errors

import (
	"errors"
	"strings"
)

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries is the pre-built mapping of sentinel errors to their user-facing messages.
// This single source of truth ensures UserMessage and Actionable stay in sync.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Configuration
	// ===================
	{
		err: ErrConfig,
		info: ErrorInfo{
			Message: "Configuration is invalid.",
			Action:  "Check ~/.git-llm-tool/config.yaml and ./.git-llm-tool.yaml for the reported problem.",
		},
	},
	{
		err: ErrConfigNotFound,
		info: ErrorInfo{
			Message: "Configuration file not found.",
			Action:  "Run 'git-llm config init' to create one.",
		},
	},
	{
		err: ErrUnknownConfigKey,
		info: ErrorInfo{
			Message: "The configuration key is not recognized.",
			Action:  "Run 'git-llm config show' to see the available keys.",
		},
	},
	{
		err: ErrMissingCredential,
		info: ErrorInfo{
			Message: "The selected provider has no API key configured.",
			Action:  "Set it with 'git-llm config set llm.api_keys.<provider> <key>' or export the provider's environment variable.",
		},
	},
	{
		err: ErrUnsupportedModel,
		info: ErrorInfo{
			Message: "No provider is registered for this model.",
			Action:  "Use a gpt-*, o1*, claude-*, gemini-* or local Ollama model name.",
		},
	},

	// ===================
	// Generation & Editor
	// ===================
	{
		err: ErrGeneration,
		info: ErrorInfo{
			Message: "The LLM request failed.",
			Action:  "Check your network and API key, then try again.",
		},
	},
	{
		err: ErrNoEditorFound,
		info: ErrorInfo{
			Message: "No suitable editor was found.",
			Action:  "Set editor.preferred_editor in your config or configure git core.editor.",
		},
	},
	{
		err: ErrEditorFailed,
		info: ErrorInfo{
			Message: "The editor exited with an error.",
			Action:  "Check your editor.preferred_editor or git core.editor setting.",
		},
	},

	// ===================
	// Git
	// ===================
	{
		err: ErrGitOperation,
		info: ErrorInfo{
			Message: "Git operation failed. Check your repository state.",
			Action:  "Ensure you have a clean git state and proper permissions.",
		},
	},
	{
		err: ErrNotGitRepo,
		info: ErrorInfo{
			Message: "This command must be run from within a git repository.",
			Action:  "Navigate to a git repository or run 'git init' to create one.",
		},
	},
	{
		err: ErrNoStagedChanges,
		info: ErrorInfo{
			Message: "No staged changes found.",
			Action:  "Use 'git add' to stage files before committing.",
		},
	},
	{
		err: ErrNoCommitsInRange,
		info: ErrorInfo{
			Message: "No commits found in the requested range.",
			Action:  "Check the --from and --to references.",
		},
	},

	// ===================
	// User Interaction
	// ===================
	{
		err: ErrUserCancelled,
		info: ErrorInfo{
			Message: "Cancelled.",
			Action:  "",
		},
	},
	{
		err: ErrInteractiveRequired,
		info: ErrorInfo{
			Message: "This operation requires an interactive terminal.",
			Action:  "Run in an interactive terminal, not in a script.",
		},
	},
	{
		err: ErrInvalidTicket,
		info: ErrorInfo{
			Message: "The ticket does not look like a Jira issue key.",
			Action:  "Use the PROJECT-123 format.",
		},
	},
	{
		err: ErrInvalidWorkHours,
		info: ErrorInfo{
			Message: "The work hours format was not understood.",
			Action:  "Use formats like '1h 30m', '2h', '45m' or '1w 2d 3h 30m'.",
		},
	},

	// ===================
	// Files & Misc
	// ===================
	{
		err: ErrFileExists,
		info: ErrorInfo{
			Message: "The output file already exists.",
			Action:  "Use --force to overwrite it.",
		},
	},
	{
		err: ErrLockTimeout,
		info: ErrorInfo{
			Message: "Could not acquire the config file lock. Another process may be writing.",
			Action:  "Wait and try again, or check for stuck processes.",
		},
	},
	{
		err: ErrEmptyValue,
		info: ErrorInfo{
			Message: "A required value was not provided.",
			Action:  "Provide the required value and try again.",
		},
	},
	{
		err: ErrInvalidArgument,
		info: ErrorInfo{
			Message: "An invalid argument was provided.",
			Action:  "Check the command help for valid arguments.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Invalid output format specified.",
			Action:  "Use 'text' or 'json'.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
// Built once from errorInfoEntries during package initialization.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

// buildErrorInfoMap creates a map from the errorInfoEntries slice.
// This is called once during package init for O(1) direct lookups.
func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// It first tries O(1) direct map lookup for unwrapped sentinel errors,
// then falls back to errors.Is() traversal for wrapped errors.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	// Fast path: O(1) lookup for direct sentinel errors
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	// Slow path: errors.Is() for wrapped errors
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// This function maps sentinel errors to helpful, actionable messages
// that are suitable for display to end users.
//
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// detailedSentinels lists error classes whose wrapped context must reach the
// user: the dotted key path for a missing credential and the model name for
// an unsupported model. The wrapping for these carries key paths and model
// names only, never credential values.
//
//nolint:gochecknoglobals // Static classification table
var detailedSentinels = []error{
	ErrMissingCredential,
	ErrUnsupportedModel,
}

// wrapDetail returns the context a wrapped error added on top of its
// sentinel, or "" for a bare sentinel.
func wrapDetail(err, sentinel error) string {
	full := err.Error()
	base := sentinel.Error()
	if full == base {
		return ""
	}
	return strings.TrimSuffix(full, ": "+base)
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
//
// For credential and model-routing errors, the message includes the wrapped
// detail so the user sees which key or model is the problem. For errors that
// are not recoverable or have no clear action, the action string will be
// empty.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	message = info.Message

	for _, sentinel := range detailedSentinels {
		if !errors.Is(err, sentinel) {
			continue
		}
		if detail := wrapDetail(err, sentinel); detail != "" {
			message = message + " (" + detail + ")"
		}
		break
	}

	return message, info.Action
}
