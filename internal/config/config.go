// Package config provides layered configuration resolution for git-llm.
//
// Configuration sources are merged at the individual key-path level in the
// following order (highest precedence first):
//  1. CLI flags (--model, --language)
//  2. Environment variables (OPENAI_API_KEY, GIT_LLM_MODEL, ...)
//  3. Project config (./.git-llm-tool.yaml)
//  4. Global config (~/.git-llm-tool/config.yaml)
//  5. Built-in defaults
//
// Credential keys (llm.api_keys.*) are the one exception: a project file
// overrides an environment variable for those keys, so a repository can pin
// its own key without the shell environment silently winning.
//
// Each key resolves independently. Two files that set disjoint keys under
// the same parent path both contribute; a higher layer never wipes out its
// siblings. The resolver records which source supplied every key so that
// --verbose can trace provenance without ever printing a secret value.
//
// IMPORTANT: This package may import internal/constants, internal/errors,
// and internal/logging, but MUST NOT import other internal packages.
package config

// Config is the typed view of a resolved configuration.
// It is produced by Resolved.Struct for callers that prefer struct access
// over key-path lookups.
type Config struct {
	// LLM contains model selection, output language, and provider credentials.
	LLM LLMConfig `yaml:"llm" mapstructure:"llm"`

	// Jira contains ticket extraction settings for commit message generation.
	Jira JiraConfig `yaml:"jira" mapstructure:"jira"`

	// Editor contains settings for the interactive message editor.
	Editor EditorConfig `yaml:"editor" mapstructure:"editor"`

	// Changelog contains settings for changelog file management.
	Changelog ChangelogConfig `yaml:"changelog" mapstructure:"changelog"`
}

// LLMConfig contains settings for LLM generation.
type LLMConfig struct {
	// DefaultModel is the model used when no --model flag is given.
	// Default: "gpt-4o"
	DefaultModel string `yaml:"default_model" mapstructure:"default_model"`

	// Language is the output language code for generated text (e.g. "en", "ja").
	// Default: "en"
	Language string `yaml:"language" mapstructure:"language"`

	// APIKeys maps provider names to credentials.
	// Known providers: "openai", "anthropic", "google", "azure_openai".
	// Keys normally arrive via environment variables; storing them in a
	// config file is supported but the file should be permission-restricted.
	APIKeys map[string]string `yaml:"api_keys,omitempty" mapstructure:"api_keys"`

	// AzureOpenAI holds the non-credential Azure OpenAI settings.
	AzureOpenAI AzureOpenAIConfig `yaml:"azure_openai,omitempty" mapstructure:"azure_openai"`

	// OllamaBaseURL is the base URL of a local Ollama server.
	// Default: "http://localhost:11434"
	OllamaBaseURL string `yaml:"ollama_base_url" mapstructure:"ollama_base_url"`
}

// APIKey returns the credential configured for the given provider.
// The second return value is false when no non-empty key is configured.
func (c *LLMConfig) APIKey(provider string) (string, bool) {
	if c.APIKeys == nil {
		return "", false
	}
	key, ok := c.APIKeys[provider]
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// AzureOpenAIConfig contains Azure OpenAI resource settings.
// The credential itself lives under llm.api_keys.azure_openai.
type AzureOpenAIConfig struct {
	// Endpoint is the Azure resource endpoint URL
	// (e.g. "https://myresource.openai.azure.com"). An empty endpoint means
	// Azure is not configured and OpenAI-family models route to OpenAI.
	Endpoint string `yaml:"endpoint,omitempty" mapstructure:"endpoint"`

	// APIVersion is the Azure OpenAI REST API version query parameter.
	APIVersion string `yaml:"api_version,omitempty" mapstructure:"api_version"`

	// DeploymentName is the Azure deployment to call.
	// Defaults to the model name when empty.
	DeploymentName string `yaml:"deployment_name,omitempty" mapstructure:"deployment_name"`
}

// JiraConfig contains ticket extraction settings.
type JiraConfig struct {
	// Enabled turns the Jira sub-flow on. When false, commit generation
	// never prompts for a ticket or work hours.
	// Default: false
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// BranchRegex extracts a ticket from the current branch name.
	// The pattern must contain exactly one capture group; the group is the
	// ticket (e.g. "feature/(JIRA-\d+)-.*"). Empty means not configured,
	// in which case the ticket is prompted for interactively.
	BranchRegex string `yaml:"branch_regex,omitempty" mapstructure:"branch_regex"`
}

// EditorConfig contains settings for the interactive message editor.
type EditorConfig struct {
	// PreferredEditor is a shell command template for the editor
	// (e.g. "vim", "code --wait"). When empty, git core.editor and the
	// GIT_EDITOR/VISUAL/EDITOR environment variables are consulted instead.
	PreferredEditor string `yaml:"preferred_editor,omitempty" mapstructure:"preferred_editor"`
}

// ChangelogConfig contains settings for changelog file management.
type ChangelogConfig struct {
	// File is the changelog file name relative to the repository root.
	// Default: "changelog.md"
	File string `yaml:"file" mapstructure:"file"`
}
