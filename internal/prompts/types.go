package prompts

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// PromptID identifies a prompt template.
type PromptID string

// Available prompt templates.
const (
	// CommitMessage generates a commit message from a staged diff.
	CommitMessage PromptID = "commit_message"

	// Changelog generates a Markdown changelog from commit subjects.
	Changelog PromptID = "changelog"
)

// CommitMessageData is the data for the CommitMessage template.
type CommitMessageData struct {
	// Diff is the staged diff text.
	Diff string

	// LanguageName is the human-readable output language (e.g. "English").
	LanguageName string

	// JiraTicket is the issue key (e.g. "PROJ-123"). Empty means no ticket:
	// the template emits the conventional-commit instructions only, with no
	// Jira block at all.
	JiraTicket string

	// WorkHours is the normalized time spent (e.g. "0w 0d 2h 0m").
	// Only used when JiraTicket is set.
	WorkHours string
}

// ChangelogData is the data for the Changelog template.
type ChangelogData struct {
	// Commits holds the commit subjects for the release range, newest first.
	Commits []string

	// LanguageName is the human-readable output language.
	LanguageName string
}

// LanguageName resolves a language code ("en", "zh", "pt-BR") to its English
// display name for use in prompt instructions. Unparseable or unknown codes
// fall back to the code itself.
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}
