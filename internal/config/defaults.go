package config

import (
	"github.com/mrz1836/git-llm-tool/internal/constants"
)

// defaultEntries returns the built-in defaults as flattened key paths.
// Keys with no sensible default (credentials, branch regex, preferred
// editor, Azure settings) are absent rather than empty, so provenance
// tracing never claims a default supplied them.
func defaultEntries() map[string]any {
	return map[string]any{
		"llm.default_model":   constants.DefaultModel,
		"llm.language":        constants.DefaultLanguage,
		"llm.ollama_base_url": constants.DefaultOllamaBaseURL,
		"jira.enabled":        false,
		"changelog.file":      constants.DefaultChangelogFileName,
	}
}

// DefaultConfig returns a new Config carrying only the built-in defaults.
// It mirrors what Resolve(DefaultSource()).Struct() produces and exists for
// callers and tests that want the baseline without building sources.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			// DefaultModel: "gpt-4o" balances capability and availability;
			// any provider-prefixed model can be selected per invocation.
			DefaultModel: constants.DefaultModel,

			// Language: "en" is the conventional default for commit history.
			Language: constants.DefaultLanguage,

			// OllamaBaseURL: the standard local Ollama listen address.
			OllamaBaseURL: constants.DefaultOllamaBaseURL,
		},
		Jira: JiraConfig{
			// Enabled: false keeps commit generation prompt-free until the
			// user opts into ticket tracking.
			Enabled: false,
		},
		Changelog: ChangelogConfig{
			// File: lowercase "changelog.md" at the repository root.
			File: constants.DefaultChangelogFileName,
		},
	}
}
