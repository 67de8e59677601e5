// Package ai selects and drives LLM provider backends for git-llm.
//
// A static, ordered registry maps model names to provider descriptors
// (Azure OpenAI, OpenAI, Anthropic, Google Gemini, Ollama). Each backend
// exposes exactly two operations, one blocking HTTP call each; every
// transport or API failure is wrapped in errors.ErrGeneration so no
// provider-specific error type leaks to callers, and nothing is retried.
package ai

import (
	"context"
	"strings"

	"github.com/mrz1836/git-llm-tool/internal/errors"
	"github.com/mrz1836/git-llm-tool/internal/prompts"
)

// Backend is the handle to one LLM vendor's generation API.
// Both operations are synchronous and perform a single network call.
type Backend interface {
	// GenerateCommitMessage produces a commit message for the staged diff.
	// jiraTicket and workHours may be empty; an empty ticket omits the Jira
	// smart-commit instructions from the prompt entirely.
	GenerateCommitMessage(ctx context.Context, diffText, languageCode, jiraTicket, workHours string) (string, error)

	// GenerateChangelog produces a Markdown changelog from commit subjects,
	// organized under fixed Features / Fixes / Breaking Changes headers.
	GenerateChangelog(ctx context.Context, logEntries []string, languageCode string) (string, error)
}

// completer is the single low-level operation each provider implements.
type completer interface {
	complete(ctx context.Context, prompt string) (string, error)
}

// generateCommitMessage builds the commit prompt and runs one completion.
func generateCommitMessage(ctx context.Context, c completer, diffText, languageCode, jiraTicket, workHours string) (string, error) {
	prompt, err := prompts.BuildCommitMessage(diffText, languageCode, jiraTicket, workHours)
	if err != nil {
		return "", errors.Wrapf(errors.ErrGeneration, "failed to build commit prompt: %v", err)
	}
	return runCompletion(ctx, c, prompt)
}

// generateChangelog builds the changelog prompt and runs one completion.
func generateChangelog(ctx context.Context, c completer, logEntries []string, languageCode string) (string, error) {
	prompt, err := prompts.BuildChangelog(logEntries, languageCode)
	if err != nil {
		return "", errors.Wrapf(errors.ErrGeneration, "failed to build changelog prompt: %v", err)
	}
	return runCompletion(ctx, c, prompt)
}

// runCompletion performs the blocking provider call. An interrupt during the
// call surfaces as the user-cancel condition, not a generation failure.
func runCompletion(ctx context.Context, c completer, prompt string) (string, error) {
	text, err := c.complete(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return "", errors.Wrap(errors.ErrUserCancelled, "generation interrupted")
		}
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.Wrap(errors.ErrGeneration, "empty response from provider")
	}
	return text, nil
}
