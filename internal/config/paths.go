package config

import (
	"os"
	"path/filepath"

	"github.com/mrz1836/git-llm-tool/internal/constants"
	"github.com/mrz1836/git-llm-tool/internal/errors"
)

// GlobalConfigDir returns the path to the global git-llm configuration
// directory, typically ~/.git-llm-tool. The GIT_LLM_HOME environment
// variable overrides the location (used by tests and CI).
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	if custom := os.Getenv(constants.EnvHome); custom != "" {
		return custom, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.ToolHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file,
// typically ~/.git-llm-tool/config.yaml.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.GlobalConfigFileName), nil
}

// ProjectConfigPath returns the project configuration file name.
// This is always .git-llm-tool.yaml relative to the working directory.
func ProjectConfigPath() string {
	return constants.ProjectConfigFileName
}

// ProjectConfigPathIn returns the project configuration file path inside
// the given directory.
func ProjectConfigPathIn(dir string) string {
	return filepath.Join(dir, constants.ProjectConfigFileName)
}

// LogsDir returns the directory where log files are written,
// typically ~/.git-llm-tool/logs.
func LogsDir() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.LogsDir), nil
}
