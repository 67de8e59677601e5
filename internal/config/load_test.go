package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/git-llm-tool/internal/errors"
)

// noEnv is a LookupEnv that sees an empty environment, so host variables
// cannot leak into tests.
func noEnv(string) (string, bool) { return "", false }

// envMap builds a LookupEnv from a fixed map.
func envMap(env map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	r, err := Load(context.Background(), LoadOptions{
		GlobalPath:  filepath.Join(t.TempDir(), "config.yaml"),
		ProjectPath: filepath.Join(t.TempDir(), ".git-llm-tool.yaml"),
		LookupEnv:   noEnv,
	})
	require.NoError(t, err, "Load should not fail when no config file exists")
	require.NotNil(t, r)

	assert.Equal(t, "gpt-4o", r.GetString("llm.default_model"), "should use default model")
	assert.Equal(t, "en", r.GetString("llm.language"), "should use default language")
	assert.False(t, r.GetBool("jira.enabled"), "jira should be disabled by default")
	assert.Equal(t, "changelog.md", r.GetString("changelog.file"))

	p, ok := r.Origin("llm.default_model")
	require.True(t, ok)
	assert.Equal(t, OriginDefault, p.Origin)
}

func TestLoad_ProjectOverridesGlobalPerKey(t *testing.T) {
	t.Parallel()

	globalPath := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(globalPath, []byte(`
llm:
  default_model: gpt-4o
  language: en
`), 0o600)
	require.NoError(t, err)

	projectPath := filepath.Join(t.TempDir(), ".git-llm-tool.yaml")
	err = os.WriteFile(projectPath, []byte(`
llm:
  language: zh
`), 0o600)
	require.NoError(t, err)

	r, err := Load(context.Background(), LoadOptions{
		GlobalPath:  globalPath,
		ProjectPath: projectPath,
		LookupEnv:   noEnv,
	})
	require.NoError(t, err)

	// The project file overrides only the key it defines; the sibling key
	// under the same parent survives from the global file.
	assert.Equal(t, "zh", r.GetString("llm.language"), "project should override llm.language")
	assert.Equal(t, "gpt-4o", r.GetString("llm.default_model"), "global llm.default_model should survive")

	p, ok := r.Origin("llm.language")
	require.True(t, ok)
	assert.Equal(t, OriginProjectFile, p.Origin)
	assert.Equal(t, projectPath, p.Source)
}

func TestLoad_EnvOverridesFiles(t *testing.T) {
	t.Parallel()

	projectPath := filepath.Join(t.TempDir(), ".git-llm-tool.yaml")
	err := os.WriteFile(projectPath, []byte(`
llm:
  default_model: gpt-4o
`), 0o600)
	require.NoError(t, err)

	r, err := Load(context.Background(), LoadOptions{
		GlobalPath:  filepath.Join(t.TempDir(), "config.yaml"),
		ProjectPath: projectPath,
		LookupEnv:   envMap(map[string]string{"GIT_LLM_MODEL": "gpt-4o-mini"}),
	})
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", r.GetString("llm.default_model"),
		"environment should override the project file for normal keys")
}

func TestLoad_FlagOverridesEverything(t *testing.T) {
	t.Parallel()

	projectPath := filepath.Join(t.TempDir(), ".git-llm-tool.yaml")
	err := os.WriteFile(projectPath, []byte(`
llm:
  default_model: gpt-4o
`), 0o600)
	require.NoError(t, err)

	r, err := Load(context.Background(), LoadOptions{
		GlobalPath:  filepath.Join(t.TempDir(), "config.yaml"),
		ProjectPath: projectPath,
		LookupEnv:   envMap(map[string]string{"GIT_LLM_MODEL": "gpt-4o-mini"}),
		Overrides:   map[string]string{"llm.default_model": "claude-3-opus"},
	})
	require.NoError(t, err)

	assert.Equal(t, "claude-3-opus", r.GetString("llm.default_model"))

	p, ok := r.Origin("llm.default_model")
	require.True(t, ok)
	assert.Equal(t, OriginFlag, p.Origin)
}

func TestLoad_ProjectCredentialBeatsEnvironment(t *testing.T) {
	t.Parallel()

	projectPath := filepath.Join(t.TempDir(), ".git-llm-tool.yaml")
	err := os.WriteFile(projectPath, []byte(`
llm:
  default_model: gpt-4o
  api_keys:
    openai: project-key
`), 0o600)
	require.NoError(t, err)

	r, err := Load(context.Background(), LoadOptions{
		GlobalPath:  filepath.Join(t.TempDir(), "config.yaml"),
		ProjectPath: projectPath,
		LookupEnv: envMap(map[string]string{
			"OPENAI_API_KEY": "env-key",
			"GIT_LLM_MODEL":  "gpt-4o-mini",
		}),
	})
	require.NoError(t, err)

	// Credential keys: project file wins over the environment.
	key, ok := r.Credential("openai")
	require.True(t, ok)
	assert.Equal(t, "project-key", key,
		"project file should pin the credential over the ambient environment")

	// Normal keys keep the standard order: environment wins.
	assert.Equal(t, "gpt-4o-mini", r.GetString("llm.default_model"))
}

func TestLoad_EnvCredentialBeatsGlobalFile(t *testing.T) {
	t.Parallel()

	globalPath := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(globalPath, []byte(`
llm:
  api_keys:
    anthropic: global-key
`), 0o600)
	require.NoError(t, err)

	r, err := Load(context.Background(), LoadOptions{
		GlobalPath:  globalPath,
		ProjectPath: filepath.Join(t.TempDir(), ".git-llm-tool.yaml"),
		LookupEnv:   envMap(map[string]string{"ANTHROPIC_API_KEY": "env-key"}),
	})
	require.NoError(t, err)

	key, ok := r.Credential("anthropic")
	require.True(t, ok)
	assert.Equal(t, "env-key", key, "environment should beat the global file for credentials")
}

func TestLoad_MalformedProjectFile(t *testing.T) {
	t.Parallel()

	projectPath := filepath.Join(t.TempDir(), ".git-llm-tool.yaml")
	err := os.WriteFile(projectPath, []byte("llm: [unclosed"), 0o600)
	require.NoError(t, err)

	_, err = Load(context.Background(), LoadOptions{
		GlobalPath:  filepath.Join(t.TempDir(), "config.yaml"),
		ProjectPath: projectPath,
		LookupEnv:   noEnv,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfig)
}

func TestLoad_WorkDirResolvesProjectFile(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	err := os.WriteFile(filepath.Join(workDir, ".git-llm-tool.yaml"), []byte(`
llm:
  language: fr
`), 0o600)
	require.NoError(t, err)

	r, err := Load(context.Background(), LoadOptions{
		GlobalPath: filepath.Join(t.TempDir(), "config.yaml"),
		WorkDir:    workDir,
		LookupEnv:  noEnv,
	})
	require.NoError(t, err)

	assert.Equal(t, "fr", r.GetString("llm.language"))
}

func TestLoad_AzureEnvironmentBindings(t *testing.T) {
	t.Parallel()

	r, err := Load(context.Background(), LoadOptions{
		GlobalPath:  filepath.Join(t.TempDir(), "config.yaml"),
		ProjectPath: filepath.Join(t.TempDir(), ".git-llm-tool.yaml"),
		LookupEnv: envMap(map[string]string{
			"AZURE_OPENAI_API_KEY":         "azure-key",
			"AZURE_OPENAI_ENDPOINT":        "https://example.openai.azure.com",
			"AZURE_OPENAI_API_VERSION":     "2024-02-01",
			"AZURE_OPENAI_DEPLOYMENT_NAME": "prod-gpt4",
		}),
	})
	require.NoError(t, err)

	key, ok := r.Credential("azure_openai")
	require.True(t, ok)
	assert.Equal(t, "azure-key", key)
	assert.Equal(t, "https://example.openai.azure.com", r.GetString("llm.azure_openai.endpoint"))
	assert.Equal(t, "2024-02-01", r.GetString("llm.azure_openai.api_version"))
	assert.Equal(t, "prod-gpt4", r.GetString("llm.azure_openai.deployment_name"))
}

func TestLoad_UnknownFileKeysAreCarried(t *testing.T) {
	t.Parallel()

	// Files may hold keys this tool does not recognize; they resolve and
	// trace like any other so a newer version's config still loads.
	projectPath := filepath.Join(t.TempDir(), ".git-llm-tool.yaml")
	err := os.WriteFile(projectPath, []byte(`
llm:
  custom_setting: forty-two
`), 0o600)
	require.NoError(t, err)

	r, err := Load(context.Background(), LoadOptions{
		GlobalPath:  filepath.Join(t.TempDir(), "config.yaml"),
		ProjectPath: projectPath,
		LookupEnv:   noEnv,
	})
	require.NoError(t, err)

	assert.Equal(t, "forty-two", r.GetString("llm.custom_setting"))
}
