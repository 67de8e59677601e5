package prompts

import (
	"bytes"
	"errors"
	"fmt"
)

// Render executes a prompt template with the provided data and returns the result.
// The data type should match the expected type for the given prompt ID.
//
// Example:
//
//	data := prompts.CommitMessageData{
//	    Diff:         diff,
//	    LanguageName: prompts.LanguageName("en"),
//	    JiraTicket:   "PROJ-123",
//	    WorkHours:    "0w 0d 2h 0m",
//	}
//	prompt, err := prompts.Render(prompts.CommitMessage, data)
func Render(id PromptID, data any) (string, error) {
	tmpl, err := globalRegistry.get(id)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Join(ErrTemplateExecution, fmt.Errorf("prompt %s: %w", id, err))
	}

	return buf.String(), nil
}

// BuildCommitMessage renders the commit-message prompt.
//
// languageCode is resolved to a display name for the instruction text. The
// Jira smart-commit block is included only for a non-empty ticket; an empty
// ticket produces the plain conventional-commit prompt with no Jira mention.
func BuildCommitMessage(diff, languageCode, jiraTicket, workHours string) (string, error) {
	return Render(CommitMessage, CommitMessageData{
		Diff:         diff,
		LanguageName: LanguageName(languageCode),
		JiraTicket:   jiraTicket,
		WorkHours:    workHours,
	})
}

// BuildChangelog renders the changelog prompt for the given commit subjects.
func BuildChangelog(commits []string, languageCode string) (string, error) {
	return Render(Changelog, ChangelogData{
		Commits:      commits,
		LanguageName: LanguageName(languageCode),
	})
}

// List returns all registered prompt IDs.
// Useful for debugging or documentation generation.
func List() []PromptID {
	return globalRegistry.list()
}

// Exists checks if a prompt ID is registered.
func Exists(id PromptID) bool {
	_, err := globalRegistry.get(id)
	return err == nil
}

// GetTemplate returns the raw template source for a prompt ID.
// This is primarily useful for debugging and testing.
func GetTemplate(id PromptID) (string, error) {
	return globalRegistry.getSource(id)
}
