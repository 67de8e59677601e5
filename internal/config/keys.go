package config

import (
	"sort"
	"strings"
)

// Kind describes the value type of a configuration key.
type Kind int

// Supported key kinds.
const (
	// KindString is a plain string value.
	KindString Kind = iota

	// KindBool is a boolean value. On the command line it accepts
	// true/false, 1/0, yes/no, and on/off (case-insensitive).
	KindBool
)

// credentialKeyPrefix marks the subtree of keys holding provider credentials.
// Keys under this prefix follow the credential precedence rule (project file
// beats environment) and are always masked in output and logs.
const credentialKeyPrefix = "llm.api_keys."

// azureKeyPrefix marks the Azure OpenAI settings subtree.
const azureKeyPrefix = "llm.azure_openai."

// Key describes one recognized configuration key.
type Key struct {
	// Path is the dotted key path (e.g. "llm.default_model").
	Path string

	// Kind is the expected value type.
	Kind Kind

	// Secret marks keys whose values must never be printed or logged.
	Secret bool

	// Description is a one-line summary shown by "config show".
	Description string
}

// keyRegistry lists every recognized configuration key.
// Provider names under llm.api_keys and fields under llm.azure_openai beyond
// those listed here are also accepted (see LookupKey).
var keyRegistry = []Key{ //nolint:gochecknoglobals // Static key metadata
	{Path: "llm.default_model", Kind: KindString, Description: "model used when no --model flag is given"},
	{Path: "llm.language", Kind: KindString, Description: "output language code for generated text"},
	{Path: "llm.api_keys.openai", Kind: KindString, Secret: true, Description: "OpenAI API key"},
	{Path: "llm.api_keys.anthropic", Kind: KindString, Secret: true, Description: "Anthropic API key"},
	{Path: "llm.api_keys.google", Kind: KindString, Secret: true, Description: "Google AI API key"},
	{Path: "llm.api_keys.azure_openai", Kind: KindString, Secret: true, Description: "Azure OpenAI API key"},
	{Path: "llm.azure_openai.endpoint", Kind: KindString, Description: "Azure OpenAI resource endpoint URL"},
	{Path: "llm.azure_openai.api_version", Kind: KindString, Description: "Azure OpenAI REST API version"},
	{Path: "llm.azure_openai.deployment_name", Kind: KindString, Description: "Azure OpenAI deployment name"},
	{Path: "llm.ollama_base_url", Kind: KindString, Description: "base URL of the local Ollama server"},
	{Path: "jira.enabled", Kind: KindBool, Description: "prompt for a Jira ticket during commit generation"},
	{Path: "jira.branch_regex", Kind: KindString, Description: "regex with one capture group extracting a ticket from the branch name"},
	{Path: "editor.preferred_editor", Kind: KindString, Description: "editor command for reviewing generated messages"},
	{Path: "changelog.file", Kind: KindString, Description: "changelog file name relative to the repository root"},
}

// Keys returns the recognized keys sorted by path.
func Keys() []Key {
	keys := make([]Key, len(keyRegistry))
	copy(keys, keyRegistry)
	sort.Slice(keys, func(i, j int) bool { return keys[i].Path < keys[j].Path })
	return keys
}

// LookupKey returns the metadata for a dotted key path.
// Exact registry entries match first. Additionally, any single-segment
// provider name under llm.api_keys and any single-segment field under
// llm.azure_openai is accepted, so custom providers can store credentials
// without a registry change.
func LookupKey(path string) (Key, bool) {
	for _, k := range keyRegistry {
		if k.Path == path {
			return k, true
		}
	}

	if provider, ok := wildcardSegment(path, credentialKeyPrefix); ok {
		return Key{
			Path:        path,
			Kind:        KindString,
			Secret:      true,
			Description: "API key for the " + provider + " provider",
		}, true
	}

	if field, ok := wildcardSegment(path, azureKeyPrefix); ok {
		return Key{
			Path:        path,
			Kind:        KindString,
			Description: "Azure OpenAI " + field + " setting",
		}, true
	}

	return Key{}, false
}

// wildcardSegment returns the remainder of path after prefix when the
// remainder is exactly one non-empty segment.
func wildcardSegment(path, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(path, prefix)
	if !ok || rest == "" || strings.Contains(rest, ".") {
		return "", false
	}
	return rest, true
}

// IsCredentialKey reports whether the key path holds a provider credential.
// Credential keys use the swapped precedence rank (project file above
// environment) and are masked everywhere they are displayed.
func IsCredentialKey(path string) bool {
	return strings.HasPrefix(path, credentialKeyPrefix)
}

// IsSecretKey reports whether the value of the key must be masked in output.
func IsSecretKey(path string) bool {
	k, ok := LookupKey(path)
	return ok && k.Secret
}

// MaskValue renders a secret value for display. Long values keep their first
// eight characters so the operator can recognize which key is set; short
// values are fully hidden.
func MaskValue(value string) string {
	if len(value) > 8 {
		return value[:8] + "..."
	}
	return "***"
}
