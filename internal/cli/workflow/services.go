package workflow

import (
	"context"
	"io"

	"github.com/mrz1836/git-llm-tool/internal/ai"
	"github.com/mrz1836/git-llm-tool/internal/changelog"
	"github.com/mrz1836/git-llm-tool/internal/clock"
	"github.com/mrz1836/git-llm-tool/internal/config"
	"github.com/mrz1836/git-llm-tool/internal/git"
	"github.com/mrz1836/git-llm-tool/internal/tui"
)

// Services bundles the dependencies the commit and changelog commands need.
// Tests substitute fakes for individual fields.
type Services struct {
	Git       git.Runner
	Prompter  Prompter
	Registry  *ai.Registry
	Changelog *changelog.Writer
	Clock     clock.Clock
	Output    tui.Output
}

// NewServices wires the production dependencies.
// An empty workDir means the current directory. It fails when the working
// directory is not inside a git repository.
func NewServices(ctx context.Context, workDir string, out io.Writer, outputFormat string) (*Services, error) {
	if workDir == "" {
		workDir = "."
	}
	runner, err := git.NewRunner(ctx, workDir)
	if err != nil {
		return nil, err
	}

	c := clock.RealClock{}
	return &Services{
		Git:       runner,
		Prompter:  NewHuhPrompter(),
		Registry:  ai.Default(),
		Changelog: changelog.NewWriter(c),
		Clock:     c,
		Output:    tui.NewOutput(out, outputFormat),
	}, nil
}

// LoadConfig resolves the layered configuration for a command invocation.
// flagOverrides carries the explicit CLI flag values, which take the highest
// precedence for every key.
func LoadConfig(ctx context.Context, flagOverrides map[string]string) (*config.Resolved, error) {
	return config.Load(ctx, config.LoadOptions{Overrides: flagOverrides})
}
