// Package workflow assembles the generation context for the commit and
// changelog commands: resolved configuration, git state, Jira details
// gathered interactively, and the selected provider backend.
package workflow

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	llmerrors "github.com/mrz1836/git-llm-tool/internal/errors"
	"github.com/mrz1836/git-llm-tool/internal/tui"
)

// Prompter gathers interactive input during context assembly.
type Prompter interface {
	// Input asks for one line of text. An empty answer is accepted when
	// allowEmpty is set; validate, when non-nil, runs on non-empty answers.
	Input(ctx context.Context, title, placeholder string, allowEmpty bool, validate func(string) error) (string, error)

	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, title string, defaultYes bool) (bool, error)
}

// HuhPrompter implements Prompter with huh forms on the terminal.
//
// Without a terminal on stdin the prompter degrades instead of hanging:
// optional inputs resolve to empty, confirms resolve to their default, and
// required inputs fail with ErrInteractiveRequired.
type HuhPrompter struct {
	isTerminal func() bool
}

// NewHuhPrompter creates a terminal-backed Prompter.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
	}
}

// Input implements Prompter.
func (p *HuhPrompter) Input(ctx context.Context, title, placeholder string, allowEmpty bool, validate func(string) error) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", llmerrors.Wrap(llmerrors.ErrUserCancelled, "prompt interrupted")
	}

	if !p.isTerminal() {
		if allowEmpty {
			return "", nil
		}
		return "", llmerrors.Wrapf(llmerrors.ErrInteractiveRequired, "%s", title)
	}

	var value string
	field := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&value).
		Validate(func(s string) error {
			if s == "" {
				if allowEmpty {
					return nil
				}
				return llmerrors.ErrEmptyValue
			}
			if validate != nil {
				return validate(s)
			}
			return nil
		})

	form := huh.NewForm(huh.NewGroup(field)).WithTheme(tui.Theme())
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) || ctx.Err() != nil {
			return "", llmerrors.Wrap(llmerrors.ErrUserCancelled, "prompt aborted")
		}
		return "", llmerrors.Wrapf(err, "prompt failed: %s", title)
	}

	return value, nil
}

// Confirm implements Prompter.
func (p *HuhPrompter) Confirm(ctx context.Context, title string, defaultYes bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, llmerrors.Wrap(llmerrors.ErrUserCancelled, "prompt interrupted")
	}

	if !p.isTerminal() {
		return defaultYes, nil
	}

	answer := defaultYes
	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&answer)

	form := huh.NewForm(huh.NewGroup(field)).WithTheme(tui.Theme())
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) || ctx.Err() != nil {
			return false, llmerrors.Wrap(llmerrors.ErrUserCancelled, "prompt aborted")
		}
		return false, llmerrors.Wrapf(err, "prompt failed: %s", title)
	}

	return answer, nil
}

// Compile-time check that HuhPrompter implements Prompter.
var _ Prompter = (*HuhPrompter)(nil)
