package config

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"

	"github.com/mrz1836/git-llm-tool/internal/errors"
	"github.com/mrz1836/git-llm-tool/internal/logging"
)

// Provenance records which source supplied a resolved value.
type Provenance struct {
	// Origin is the configuration layer.
	Origin Origin

	// Source is the human-readable source name (file path, "environment", ...).
	Source string
}

// Resolved is the merged view of all configuration layers for one command
// invocation. It is immutable after Resolve and safe for concurrent reads.
//
// Values resolve per key path: for every key, the defining source with the
// highest rank wins. There is no load-once singleton; each command builds
// its own Resolved and passes it down by argument.
type Resolved struct {
	values     map[string]any
	provenance map[string]Provenance
}

// rank returns the precedence rank of an origin for a specific key.
// Higher ranks win. Credential keys swap the environment and project file
// ranks so a repository-pinned credential beats the ambient shell while CLI
// flags still override everything.
func rank(origin Origin, key string) int {
	if IsCredentialKey(key) {
		switch origin {
		case OriginEnv:
			return int(OriginProjectFile)
		case OriginProjectFile:
			return int(OriginEnv)
		}
	}
	return int(origin)
}

// Resolve merges the given sources into a single configuration view.
// Later sources win ties, but with distinct origins per source the rank
// function alone determines every winner, so source order only matters for
// sources sharing an origin.
func Resolve(sources ...Source) *Resolved {
	r := &Resolved{
		values:     make(map[string]any),
		provenance: make(map[string]Provenance),
	}

	for _, src := range sources {
		for key, value := range src.Entries {
			current, defined := r.provenance[key]
			if defined && rank(src.Origin, key) < rank(current.Origin, key) {
				continue
			}
			r.values[key] = value
			r.provenance[key] = Provenance{Origin: src.Origin, Source: src.Name}
		}
	}

	return r
}

// Get returns the raw resolved value for a dotted key path.
// The second return value is false when no source defines the key.
func (r *Resolved) Get(key string) (any, bool) {
	value, ok := r.values[key]
	return value, ok
}

// GetString returns the resolved value as a string.
// Missing keys and explicit nulls yield "". Non-string scalars are
// formatted, so a numeric model identifier still round-trips.
func (r *Resolved) GetString(key string) string {
	value, ok := r.values[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

// GetBool returns the resolved value as a bool.
// String values accept true/false, 1/0, yes/no, and on/off
// (case-insensitive); anything unparseable is false.
func (r *Resolved) GetBool(key string) bool {
	value, ok := r.values[key]
	if !ok || value == nil {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return parseBoolValue(v)
	default:
		return false
	}
}

// parseBoolValue interprets the accepted textual boolean spellings.
func parseBoolValue(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}

// Credential returns the configured credential for a provider.
// The second return value is false when the key is absent or empty.
func (r *Resolved) Credential(provider string) (string, bool) {
	value := r.GetString(credentialKeyPrefix + provider)
	return value, value != ""
}

// Origin returns the provenance of a resolved key.
func (r *Resolved) Origin(key string) (Provenance, bool) {
	p, ok := r.provenance[key]
	return p, ok
}

// Keys returns all resolved key paths in sorted order.
func (r *Resolved) Keys() []string {
	keys := make([]string, 0, len(r.values))
	for key := range r.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Struct decodes the resolved values into the typed Config.
func (r *Resolved) Struct() (*Config, error) {
	nested := unflatten(r.values)

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build config decoder")
	}
	if err := decoder.Decode(nested); err != nil {
		return nil, errors.Wrapf(errors.ErrConfig, "failed to decode configuration: %v", err)
	}
	return &cfg, nil
}

// unflatten rebuilds a nested map from dotted key paths.
// A scalar colliding with a deeper path loses to the nested map; recognized
// keys never collide, so this only matters for malformed files.
func unflatten(flat map[string]any) map[string]any {
	root := make(map[string]any)
	for key, value := range flat {
		parts := strings.Split(key, ".")
		node := root
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = value
	}
	return root
}

// Trace writes one debug line per resolved key naming the supplying source.
// Secret values are redacted; only the dotted key path and origin appear.
func (r *Resolved) Trace(ctx context.Context) {
	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()

	for _, key := range r.Keys() {
		p := r.provenance[key]
		event := logger.Debug().
			Str("key", key).
			Str("origin", p.Origin.String()).
			Str("source", p.Source)

		if IsSecretKey(key) || logging.IsSensitiveFieldName(key) {
			event = event.Str("value", logging.RedactedValue)
		} else {
			event = event.Str("value", r.GetString(key))
		}

		event.Msg("resolved configuration value")
	}
}
