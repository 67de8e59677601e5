// Package constants provides centralized constant values used throughout
// git-llm-tool. This package is the single source of truth for all shared
// constants and MUST NOT import any other internal packages.
package constants

// Directory and file names used by git-llm-tool for configuration and logs.
const (
	// ToolHome is the hidden directory name where git-llm-tool stores its
	// global configuration and logs. This directory is created in the
	// user's home directory.
	ToolHome = ".git-llm-tool"

	// GlobalConfigFileName is the YAML file inside ToolHome that holds the
	// user-wide configuration.
	GlobalConfigFileName = "config.yaml"

	// ProjectConfigFileName is the per-repository configuration file,
	// looked up in the current working directory.
	ProjectConfigFileName = ".git-llm-tool.yaml"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// DefaultChangelogFileName is the file the changelog command maintains
	// at the repository root when no explicit output path is given.
	DefaultChangelogFileName = "changelog.md"
)

// Log file settings for the rotating CLI log.
const (
	// LogFileName is the global CLI log file inside ToolHome/logs.
	LogFileName = "git-llm.log"

	// LogMaxSizeMB is the size at which the log file rotates.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files to keep.
	LogMaxBackups = 3

	// LogMaxAgeDays is the retention period for rotated files.
	LogMaxAgeDays = 30

	// LogCompress enables gzip compression of rotated files.
	LogCompress = true
)

// Configuration defaults applied when no source defines a key.
const (
	// DefaultModel is the model used when llm.default_model is unset.
	DefaultModel = "gpt-4o"

	// DefaultLanguage is the output language when llm.language is unset.
	DefaultLanguage = "en"

	// DefaultOllamaBaseURL is the local Ollama server address used when
	// llm.ollama_base_url is unset.
	DefaultOllamaBaseURL = "http://localhost:11434"
)

// Time formats used in generated files and headers.
const (
	// TimeFormatISO is the timestamp format for generated file headers.
	TimeFormatISO = "2006-01-02 15:04:05"

	// DateFormatISO is the date format for changelog section headers.
	DateFormatISO = "2006-01-02"
)

// Environment variable names recognized by the tool.
const (
	// EnvHome overrides the location of the ToolHome directory. Intended
	// for tests and CI.
	EnvHome = "GIT_LLM_HOME"

	// EnvModel overrides llm.default_model.
	EnvModel = "GIT_LLM_MODEL"

	// EnvLanguage overrides llm.language.
	EnvLanguage = "GIT_LLM_LANGUAGE"
)
