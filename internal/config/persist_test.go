package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/git-llm-tool/internal/errors"
)

// readYAML parses a YAML file into a generic map for assertions.
func readYAML(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test fixture path
	require.NoError(t, err)
	doc := map[string]any{}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	return doc
}

func TestSetValue_CreatesFileAndDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".git-llm-tool", "config.yaml")

	err := SetValue(context.Background(), path, "llm.default_model", "gpt-4o-mini")
	require.NoError(t, err)

	doc := readYAML(t, path)
	llm, ok := doc["llm"].(map[string]any)
	require.True(t, ok, "llm section should exist")
	assert.Equal(t, "gpt-4o-mini", llm["default_model"])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "config file should be user-only")
}

func TestSetValue_PreservesUnknownKeys(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(`
llm:
  default_model: gpt-4o
future_section:
  some_key: some value
`), 0o600)
	require.NoError(t, err)

	err = SetValue(context.Background(), path, "llm.language", "ja")
	require.NoError(t, err)

	doc := readYAML(t, path)
	llm, ok := doc["llm"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ja", llm["language"])
	assert.Equal(t, "gpt-4o", llm["default_model"], "sibling keys should survive")

	future, ok := doc["future_section"].(map[string]any)
	require.True(t, ok, "keys this version does not recognize should survive a write")
	assert.Equal(t, "some value", future["some_key"])
}

func TestSetValue_BoolCoercion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "true", value: "true", want: true},
		{name: "yes", value: "yes", want: true},
		{name: "one", value: "1", want: true},
		{name: "on uppercased", value: "ON", want: true},
		{name: "false", value: "false", want: false},
		{name: "garbage", value: "maybe", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config.yaml")
			err := SetValue(context.Background(), path, "jira.enabled", tt.value)
			require.NoError(t, err)

			doc := readYAML(t, path)
			jira, ok := doc["jira"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.want, jira["enabled"], "bool key should be stored as a YAML bool")
		})
	}
}

func TestSetValue_UnknownKey(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")

	err := SetValue(context.Background(), path, "llm.temperature", "0.7")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownConfigKey)
	assert.Contains(t, err.Error(), "llm.temperature")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "a rejected set should not create the file")
}

func TestSetValue_CredentialWildcard(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")

	err := SetValue(context.Background(), path, "llm.api_keys.openai", "stored-key")
	require.NoError(t, err)

	doc := readYAML(t, path)
	llm, ok := doc["llm"].(map[string]any)
	require.True(t, ok)
	apiKeys, ok := llm["api_keys"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "stored-key", apiKeys["openai"])
}

func TestSetValue_RoundTripWithFileSource(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, SetValue(context.Background(), path, "llm.default_model", "claude-3-opus"))
	require.NoError(t, SetValue(context.Background(), path, "jira.enabled", "true"))
	require.NoError(t, SetValue(context.Background(), path, "jira.branch_regex", `feature/(JIRA-\d+)-.*`))

	src, err := FileSource(path, OriginGlobalFile)
	require.NoError(t, err)

	r := Resolve(DefaultSource(), src)
	assert.Equal(t, "claude-3-opus", r.GetString("llm.default_model"))
	assert.True(t, r.GetBool("jira.enabled"))
	assert.Equal(t, `feature/(JIRA-\d+)-.*`, r.GetString("jira.branch_regex"))
}

func TestSetValue_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	err := SetValue(ctx, path, "llm.default_model", "gpt-4o")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInitFile_WritesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".git-llm-tool", "config.yaml")

	err := InitFile(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path) // #nosec G304 -- test fixture path
	require.NoError(t, err)
	assert.Contains(t, string(data), "# git-llm configuration", "file should carry the header comment")

	doc := map[string]any{}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	llm, ok := doc["llm"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "gpt-4o", llm["default_model"])
	assert.Equal(t, "en", llm["language"])
	assert.Equal(t, "http://localhost:11434", llm["ollama_base_url"])
}

func TestInitFile_RefusesExisting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  language: ja\n"), 0o600))

	err := InitFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFileExists)

	doc := readYAML(t, path)
	llm, ok := doc["llm"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ja", llm["language"], "existing file should be untouched")
}
