package config

import (
	"context"
	"os"

	"github.com/rs/zerolog"
)

// LoadOptions controls which concrete sources Load consults.
// The zero value loads the standard locations with the real environment.
type LoadOptions struct {
	// GlobalPath overrides the global config file location.
	// Empty means ~/.git-llm-tool/config.yaml (or $GIT_LLM_HOME/config.yaml).
	GlobalPath string

	// ProjectPath overrides the project config file location.
	// Empty means ./.git-llm-tool.yaml in the working directory.
	ProjectPath string

	// WorkDir is the directory the project config is resolved against.
	// Empty means the current directory.
	WorkDir string

	// LookupEnv overrides environment lookup. Nil means os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// Overrides holds CLI flag values keyed by dotted config path.
	// Only flags the user actually set may appear here.
	Overrides map[string]string
}

// Load resolves configuration from all layers with proper precedence.
// Layers are merged per key path (lowest precedence first):
//  1. Built-in defaults
//  2. Global config (~/.git-llm-tool/config.yaml)
//  3. Project config (./.git-llm-tool.yaml)
//  4. Environment variables
//  5. CLI flags
//
// Credential keys (llm.api_keys.*) swap layers 3 and 4.
//
// Missing config files are not errors; malformed files are. The resolved
// view is validated before being returned, and each key's provenance is
// traced at debug level (secrets redacted).
func Load(ctx context.Context, opts LoadOptions) (*Resolved, error) {
	globalPath := opts.GlobalPath
	if globalPath == "" {
		// A missing home directory only disables the global layer.
		if path, err := GlobalConfigPath(); err == nil {
			globalPath = path
		}
	}

	projectPath := opts.ProjectPath
	if projectPath == "" {
		if opts.WorkDir != "" {
			projectPath = ProjectConfigPathIn(opts.WorkDir)
		} else {
			projectPath = ProjectConfigPath()
		}
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	sources := []Source{DefaultSource()}

	if globalPath != "" {
		global, err := FileSource(globalPath, OriginGlobalFile)
		if err != nil {
			return nil, err
		}
		sources = append(sources, global)
	}

	project, err := FileSource(projectPath, OriginProjectFile)
	if err != nil {
		return nil, err
	}
	sources = append(sources, project)

	sources = append(sources, EnvSource(lookup), FlagSource(opts.Overrides))

	resolved := Resolve(sources...)
	if err := Validate(resolved); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Int("keys", len(resolved.Keys())).
		Str("model", resolved.GetString("llm.default_model")).
		Str("language", resolved.GetString("llm.language")).
		Msg("configuration resolved")
	resolved.Trace(ctx)

	return resolved, nil
}
