package ai

import (
	"strings"
	"sync"

	"github.com/mrz1836/git-llm-tool/internal/config"
	"github.com/mrz1836/git-llm-tool/internal/constants"
	"github.com/mrz1836/git-llm-tool/internal/errors"
)

// Descriptor maps a family of model names to a backend constructor.
type Descriptor struct {
	// Name identifies the provider ("openai", "azure_openai", ...).
	Name string

	// CredentialKey is the dotted config key holding the provider's API
	// key. Empty means the provider needs no credential (Ollama).
	CredentialKey string

	// Matches reports whether this descriptor handles the model.
	// model arrives lowercased. The resolved config participates so the
	// Azure descriptor can gate on a configured endpoint.
	Matches func(model string, cfg *config.Resolved) bool

	// New constructs the backend. credential is empty when CredentialKey is.
	New func(model, credential string, cfg *config.Resolved) Backend
}

// Registry holds provider descriptors in registration order.
// Selection walks the descriptors in order and the first match wins, so
// ambiguous model names resolve deterministically. The registry is populated
// once at startup and is safe for concurrent reads afterwards.
type Registry struct {
	mu          sync.RWMutex
	descriptors []Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a descriptor. Order matters: earlier descriptors win
// ties, which is how the Azure descriptor shadows plain OpenAI when an
// endpoint is configured.
func (r *Registry) Register(d Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.descriptors = append(r.descriptors, d)
}

// Providers returns the provider names in registration order.
func (r *Registry) Providers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		names = append(names, d.Name)
	}
	return names
}

// Select resolves a model name to a ready backend.
//
// Matching is case-insensitive against the fixed registration order. No
// matching descriptor yields ErrUnsupportedModel naming the model. A
// matching descriptor with a missing or empty credential yields
// ErrMissingCredential naming the dotted key path; the credential value
// itself never appears in any error.
func (r *Registry) Select(model string, cfg *config.Resolved) (Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	normalized := strings.ToLower(strings.TrimSpace(model))
	if normalized == "" {
		return nil, errors.Wrap(errors.ErrUnsupportedModel, "model name is empty")
	}

	for _, d := range r.descriptors {
		if !d.Matches(normalized, cfg) {
			continue
		}

		credential := ""
		if d.CredentialKey != "" {
			credential = cfg.GetString(d.CredentialKey)
			if credential == "" {
				return nil, errors.Wrapf(errors.ErrMissingCredential, "%s (required for model %q)", d.CredentialKey, model)
			}
		}

		return d.New(model, credential, cfg), nil
	}

	return nil, errors.Wrapf(errors.ErrUnsupportedModel, "%q", model)
}

// openAIFamily reports whether a lowercased model name belongs to the
// OpenAI model families (gpt-*, o1*).
func openAIFamily(model string) bool {
	return strings.HasPrefix(model, "gpt-") || strings.HasPrefix(model, "o1")
}

// hasAnyPrefix reports whether model starts with one of the prefixes.
func hasAnyPrefix(model string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(model, p) {
			return true
		}
	}
	return false
}

// defaultRegistry is the static provider set, built once.
//
//nolint:gochecknoglobals // process-wide read-only registry
var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the static provider registry.
//
// Registration order is fixed: Azure OpenAI first (it claims OpenAI-family
// models only when llm.azure_openai.endpoint is configured), then OpenAI,
// Anthropic, Google Gemini, and Ollama for the local model families.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		r := NewRegistry()

		r.Register(Descriptor{
			Name:          "azure_openai",
			CredentialKey: "llm.api_keys.azure_openai",
			Matches: func(model string, cfg *config.Resolved) bool {
				if cfg.GetString("llm.azure_openai.endpoint") == "" {
					return false
				}
				return openAIFamily(model) || strings.Contains(model, "azure")
			},
			New: func(model, credential string, cfg *config.Resolved) Backend {
				return NewAzureOpenAIClient(
					cfg.GetString("llm.azure_openai.endpoint"),
					cfg.GetString("llm.azure_openai.deployment_name"),
					cfg.GetString("llm.azure_openai.api_version"),
					model,
					credential,
				)
			},
		})

		r.Register(Descriptor{
			Name:          "openai",
			CredentialKey: "llm.api_keys.openai",
			Matches: func(model string, _ *config.Resolved) bool {
				return openAIFamily(model)
			},
			New: func(model, credential string, _ *config.Resolved) Backend {
				return NewOpenAIClient(model, credential)
			},
		})

		r.Register(Descriptor{
			Name:          "anthropic",
			CredentialKey: "llm.api_keys.anthropic",
			Matches: func(model string, _ *config.Resolved) bool {
				return strings.HasPrefix(model, "claude-")
			},
			New: func(model, credential string, _ *config.Resolved) Backend {
				return NewAnthropicClient(model, credential)
			},
		})

		r.Register(Descriptor{
			Name:          "gemini",
			CredentialKey: "llm.api_keys.google",
			Matches: func(model string, _ *config.Resolved) bool {
				return strings.HasPrefix(model, "gemini-")
			},
			New: func(model, credential string, _ *config.Resolved) Backend {
				return NewGeminiClient(model, credential)
			},
		})

		r.Register(Descriptor{
			Name: "ollama",
			Matches: func(model string, _ *config.Resolved) bool {
				return hasAnyPrefix(model, "llama", "codellama", "mistral", "qwen", "phi")
			},
			New: func(model, _ string, cfg *config.Resolved) Backend {
				baseURL := cfg.GetString("llm.ollama_base_url")
				if baseURL == "" {
					baseURL = constants.DefaultOllamaBaseURL
				}
				return NewOllamaClient(model, baseURL)
			},
		})

		defaultRegistry = r
	})
	return defaultRegistry
}
