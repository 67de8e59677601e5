package config

import (
	"github.com/mrz1836/git-llm-tool/internal/errors"
)

// Validate checks a resolved configuration for values that can never work.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - llm.default_model must not be empty
//   - llm.language must not be empty
//   - llm.ollama_base_url must not be empty
//
// The Jira branch regex is deliberately not compiled here: extraction
// reports its own configuration error with the pattern context, and a
// broken regex must not block commands that never consult it.
func Validate(r *Resolved) error {
	if r == nil {
		return errors.Wrap(errors.ErrConfig, "configuration is nil")
	}

	required := []string{
		"llm.default_model",
		"llm.language",
		"llm.ollama_base_url",
	}
	for _, key := range required {
		if r.GetString(key) == "" {
			return errors.Wrapf(errors.ErrConfig, "%s must not be empty", key)
		}
	}

	return nil
}
