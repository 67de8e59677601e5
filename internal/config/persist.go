package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/git-llm-tool/internal/constants"
	"github.com/mrz1836/git-llm-tool/internal/errors"
	"github.com/mrz1836/git-llm-tool/internal/flock"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600

	// lockTimeout bounds how long a writer waits for a concurrent
	// invocation to release the config file.
	lockTimeout = 2 * time.Second

	lockRetryInterval = 50 * time.Millisecond
)

// SetValue sets one recognized key in the YAML config file at path.
// The rest of the file, including keys this tool does not recognize, is
// preserved. The file and its parent directory are created on demand.
// Values for bool keys are parsed from their textual spelling
// (true/false, 1/0, yes/no, on/off).
//
// Writes are serialized with a sidecar lock so concurrent invocations
// cannot interleave the read-modify-write.
func SetValue(ctx context.Context, path, keyPath, value string) error {
	key, ok := LookupKey(keyPath)
	if !ok {
		return errors.Wrapf(errors.ErrUnknownConfigKey, "%s", keyPath)
	}

	var typed any = value
	if key.Kind == KindBool {
		typed = parseBoolValue(value)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return errors.Wrapf(err, "failed to create config directory for %s", path)
	}

	unlock, err := acquireLock(ctx, path)
	if err != nil {
		return err
	}
	defer unlock()

	doc, err := readYAMLFile(path)
	if err != nil {
		return err
	}
	setNested(doc, strings.Split(keyPath, "."), typed)

	data, err := yaml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}
	return nil
}

// InitFile writes a starter config file with the built-in defaults.
// It refuses to overwrite an existing file.
func InitFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Wrapf(errors.ErrFileExists, "config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return errors.Wrapf(err, "failed to create config directory for %s", path)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	header := "# git-llm configuration\n" +
		"# Created by git-llm config init on " + time.Now().Format(constants.TimeFormatISO) + "\n" +
		"# A project-level " + constants.ProjectConfigFileName + " overrides these values per repository.\n" +
		"# API keys are read from the environment (OPENAI_API_KEY, ANTHROPIC_API_KEY, ...)\n" +
		"# or can be stored under llm.api_keys via 'git-llm config set'.\n\n"

	if err := os.WriteFile(path, []byte(header+string(data)), filePerm); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}
	return nil
}

// readYAMLFile reads a YAML file into a generic map.
// A missing or empty file yields an empty map.
func readYAMLFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is a config file location chosen by the caller
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	doc := map[string]any{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrConfig, "failed to parse config file %s: %v", path, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

// setNested sets a value at the given key path, creating intermediate maps.
// A scalar in the way of a deeper path is replaced by a map.
func setNested(doc map[string]any, parts []string, value any) {
	node := doc
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[part] = child
		}
		node = child
	}
	node[parts[len(parts)-1]] = value
}

// acquireLock takes an exclusive lock on a sidecar lock file next to path.
// It retries until lockTimeout, honoring context cancellation, and returns
// a release function.
func acquireLock(ctx context.Context, path string) (func(), error) {
	lockPath := path + ".lock"
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, filePerm) // #nosec G304 -- sidecar lock next to the config file
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open lock file %s", lockPath)
	}

	deadline := time.Now().Add(lockTimeout)
	for {
		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, ctx.Err()
		default:
		}

		if err := flock.Exclusive(f.Fd()); err == nil {
			return func() {
				_ = flock.Unlock(f.Fd())
				_ = f.Close()
			}, nil
		}

		if time.Now().After(deadline) {
			_ = f.Close()
			return nil, errors.Wrapf(errors.ErrLockTimeout, "config file %s is locked by another process", path)
		}

		time.Sleep(lockRetryInterval)
	}
}
