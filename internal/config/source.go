package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/mrz1836/git-llm-tool/internal/constants"
	"github.com/mrz1836/git-llm-tool/internal/errors"
)

// Origin identifies which configuration layer supplied a value.
type Origin int

// Configuration layers, lowest precedence first.
const (
	// OriginDefault is a built-in default value.
	OriginDefault Origin = iota

	// OriginGlobalFile is the user-wide config file (~/.git-llm-tool/config.yaml).
	OriginGlobalFile

	// OriginProjectFile is the repository config file (./.git-llm-tool.yaml).
	OriginProjectFile

	// OriginEnv is an environment variable.
	OriginEnv

	// OriginFlag is a CLI flag override.
	OriginFlag
)

// String returns the origin name used in provenance traces.
func (o Origin) String() string {
	switch o {
	case OriginDefault:
		return "default"
	case OriginGlobalFile:
		return "global file"
	case OriginProjectFile:
		return "project file"
	case OriginEnv:
		return "environment"
	case OriginFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// Source is one configuration layer flattened to dotted key paths.
// Entries holds leaf values only; nested YAML maps are flattened so that the
// resolver can merge at the individual key level.
type Source struct {
	// Origin is the layer this source belongs to.
	Origin Origin

	// Name describes the source for provenance traces
	// (a file path, "environment", "flags", or "built-in defaults").
	Name string

	// Entries maps dotted key paths to their raw values.
	Entries map[string]any
}

// DefaultSource returns the built-in defaults layer.
func DefaultSource() Source {
	return Source{
		Origin:  OriginDefault,
		Name:    "built-in defaults",
		Entries: defaultEntries(),
	}
}

// FileSource reads one YAML config file into a source of the given origin.
// A missing file yields an empty source; any other read or parse failure is
// a configuration error.
func FileSource(path string, origin Origin) (Source, error) {
	src := Source{Origin: origin, Name: path, Entries: map[string]any{}}

	if _, err := os.Stat(path); err != nil {
		// Missing config files are expected in many setups; skip silently.
		// Anything else (permissions, a file in the path) must surface, or
		// a present layer would be dropped without a trace.
		if os.IsNotExist(err) {
			return src, nil
		}
		return Source{}, errors.Wrapf(errors.ErrConfig, "failed to access config file %s: %v", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Source{}, errors.Wrapf(errors.ErrConfig, "failed to read config file %s: %v", path, err)
	}

	flattenInto("", v.AllSettings(), src.Entries)
	return src, nil
}

// envBindings maps environment variables to the config keys they populate.
// These mirror the conventional provider variables, so a shell already set
// up for the vendor SDKs works without any config file.
var envBindings = []struct { //nolint:gochecknoglobals // Static binding table
	Var string
	Key string
}{
	{Var: "OPENAI_API_KEY", Key: "llm.api_keys.openai"},
	{Var: "ANTHROPIC_API_KEY", Key: "llm.api_keys.anthropic"},
	{Var: "GOOGLE_API_KEY", Key: "llm.api_keys.google"},
	{Var: "AZURE_OPENAI_API_KEY", Key: "llm.api_keys.azure_openai"},
	{Var: "AZURE_OPENAI_ENDPOINT", Key: "llm.azure_openai.endpoint"},
	{Var: "AZURE_OPENAI_API_VERSION", Key: "llm.azure_openai.api_version"},
	{Var: "AZURE_OPENAI_DEPLOYMENT_NAME", Key: "llm.azure_openai.deployment_name"},
	{Var: constants.EnvModel, Key: "llm.default_model"},
	{Var: constants.EnvLanguage, Key: "llm.language"},
}

// EnvSource builds the environment layer from the binding table.
// lookup is os.LookupEnv in production and an injected map in tests.
// Empty variable values are treated as unset.
func EnvSource(lookup func(string) (string, bool)) Source {
	src := Source{Origin: OriginEnv, Name: "environment", Entries: map[string]any{}}
	for _, b := range envBindings {
		if value, ok := lookup(b.Var); ok && value != "" {
			src.Entries[b.Key] = value
		}
	}
	return src
}

// FlagSource builds the CLI flag layer from explicit overrides.
// The map holds dotted key paths for flags the user actually set; unset
// flags must not appear so they cannot shadow lower layers.
func FlagSource(overrides map[string]string) Source {
	src := Source{Origin: OriginFlag, Name: "flags", Entries: map[string]any{}}
	for key, value := range overrides {
		src.Entries[key] = value
	}
	return src
}

// flattenInto recursively flattens a nested settings map into dotted key
// paths. Scalar leaves are stored as-is; empty maps contribute nothing.
func flattenInto(prefix string, value any, out map[string]any) {
	switch m := value.(type) {
	case map[string]any:
		for k, v := range m {
			flattenInto(joinKey(prefix, k), v, out)
		}
	case map[any]any:
		for k, v := range m {
			flattenInto(joinKey(prefix, fmt.Sprint(k)), v, out)
		}
	default:
		if prefix != "" {
			out[prefix] = value
		}
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
