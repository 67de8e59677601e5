// Package editor resolves and runs the user's text editor for reviewing
// generated commit messages.
//
// Resolution walks a fixed chain, first hit wins:
//  1. editor.preferred_editor from the resolved configuration
//  2. git config core.editor
//  3. GIT_EDITOR, VISUAL, EDITOR environment variables, in that order
//  4. platform defaults (nano, vim, vi; notepad on Windows)
package editor

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/mrz1836/git-llm-tool/internal/ctxutil"
	"github.com/mrz1836/git-llm-tool/internal/errors"
)

// ConfigReader reads a git configuration value. *git.CLIRunner satisfies it.
type ConfigReader interface {
	ConfigGet(ctx context.Context, key string) (string, error)
}

// editorEnvVars are consulted in order after git core.editor.
//
//nolint:gochecknoglobals // fixed lookup order
var editorEnvVars = []string{"GIT_EDITOR", "VISUAL", "EDITOR"}

// unixDefaultEditors are tried in order when nothing else is configured.
//
//nolint:gochecknoglobals // fixed lookup order
var unixDefaultEditors = []string{"nano", "vim", "vi"}

// Resolve returns the editor command to use. The command may carry
// arguments (e.g. "code --wait"); Open splits it on whitespace.
//
// Configured editors are trusted without an availability check; only the
// platform-default tier probes PATH. Returns ErrNoEditorFound when the
// chain is exhausted.
func Resolve(ctx context.Context, preferred string, gitConfig ConfigReader) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}

	if preferred = strings.TrimSpace(preferred); preferred != "" {
		return preferred, nil
	}

	if gitConfig != nil {
		coreEditor, err := gitConfig.ConfigGet(ctx, "core.editor")
		if err != nil {
			return "", err
		}
		if coreEditor = strings.TrimSpace(coreEditor); coreEditor != "" {
			return coreEditor, nil
		}
	}

	for _, name := range editorEnvVars {
		if value := strings.TrimSpace(os.Getenv(name)); value != "" {
			return value, nil
		}
	}

	if runtime.GOOS == "windows" {
		return "notepad", nil
	}

	for _, candidate := range unixDefaultEditors {
		if _, err := exec.LookPath(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", errors.Wrap(errors.ErrNoEditorFound, "set editor.preferred_editor or git core.editor")
}

// Open writes initial to a temporary file, runs the editor command on it,
// and returns the edited content with surrounding whitespace trimmed.
//
// An emptied file means the user cancelled and yields ErrUserCancelled.
// A non-zero editor exit yields ErrEditorFailed. The temporary file is
// removed in every case, so no partial message is left behind.
func Open(ctx context.Context, command, initial string) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "git-llm-message-*.txt")
	if err != nil {
		return "", errors.Wrap(err, "failed to create temporary message file")
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err = tmp.WriteString(initial); err != nil {
		_ = tmp.Close()
		return "", errors.Wrap(err, "failed to write temporary message file")
	}
	if err = tmp.Close(); err != nil {
		return "", errors.Wrap(err, "failed to close temporary message file")
	}

	parts := strings.Fields(command)
	if len(parts) == 0 {
		return "", errors.Wrapf(errors.ErrNoEditorFound, "editor command is empty")
	}
	args := append([]string{}, parts[1:]...)
	args = append(args, tmpPath)

	cmd := exec.CommandContext(ctx, parts[0], args...) //#nosec G204 -- editor command comes from the user's own configuration
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err = cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", errors.Wrapf(errors.ErrEditorFailed, "%s: %v", parts[0], err)
	}

	edited, err := os.ReadFile(tmpPath) //#nosec G304 -- temp file created above
	if err != nil {
		return "", errors.Wrap(err, "failed to read edited message")
	}

	message := strings.TrimSpace(string(edited))
	if message == "" {
		return "", errors.Wrap(errors.ErrUserCancelled, "empty commit message")
	}

	return message, nil
}
