package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/git-llm-tool/internal/errors"
)

func TestValidate_Defaults(t *testing.T) {
	t.Parallel()

	r := Resolve(DefaultSource())

	assert.NoError(t, Validate(r), "built-in defaults should pass validation")
}

func TestValidate_NilResolved(t *testing.T) {
	t.Parallel()

	err := Validate(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfig)
}

func TestValidate_RejectsEmptyRequiredKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
	}{
		{name: "empty model", key: "llm.default_model"},
		{name: "empty language", key: "llm.language"},
		{name: "empty ollama base url", key: "llm.ollama_base_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			blank := Source{
				Origin:  OriginFlag,
				Name:    "test",
				Entries: map[string]any{tt.key: ""},
			}
			r := Resolve(DefaultSource(), blank)

			err := Validate(r)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrConfig)
			assert.Contains(t, err.Error(), tt.key, "error should name the offending key")
		})
	}
}

func TestValidate_BrokenBranchRegexDoesNotFailValidation(t *testing.T) {
	t.Parallel()

	// An invalid branch regex must not block unrelated commands; extraction
	// reports its own configuration error when the pattern is actually used.
	src := Source{
		Origin:  OriginProjectFile,
		Name:    "test",
		Entries: map[string]any{"jira.branch_regex": "feature/(unclosed"},
	}
	r := Resolve(DefaultSource(), src)

	assert.NoError(t, Validate(r))
}
