package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mrz1836/git-llm-tool/internal/cli/workflow"
	"github.com/mrz1836/git-llm-tool/internal/constants"
	"github.com/mrz1836/git-llm-tool/internal/tui"
)

// changelogFlags holds the flags for the changelog command.
type changelogFlags struct {
	model    string
	language string
	fromRef  string
	toRef    string
	output   string
	force    bool
}

// AddChangelogCommand adds the changelog command to the root command.
func AddChangelogCommand(root *cobra.Command, global *GlobalFlags) {
	flags := &changelogFlags{}

	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Generate a changelog section from a commit range",
		Long: `Generate a Markdown changelog section from the commit subjects in a
range, organized under Features, Fixes, and Breaking Changes headers.

The range defaults to everything since the latest tag (or the repository's
first commit when no tag exists) up to HEAD. The dated section is inserted
at the top of the changelog file configured by changelog.file; --output
writes a standalone file instead, refusing to overwrite without --force.
Here --output names the target file; select the json format with the
GIT_LLM_OUTPUT environment variable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChangelog(cmd, global, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.model, "model", "m", "", "model to use (overrides llm.default_model)")
	cmd.Flags().StringVarP(&flags.language, "language", "l", "", "output language code (overrides llm.language)")
	cmd.Flags().StringVar(&flags.fromRef, "from", "", "start of the commit range (defaults to the latest tag)")
	cmd.Flags().StringVar(&flags.toRef, "to", "", "end of the commit range (defaults to HEAD)")
	cmd.Flags().StringVar(&flags.output, "output", "", "write a standalone file instead of updating the changelog")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing --output file")

	root.AddCommand(cmd)
}

// runChangelog drives the changelog generation flow.
func runChangelog(cmd *cobra.Command, global *GlobalFlags, flags *changelogFlags) error {
	ctx := cmd.Context()
	logger := GetLogger()
	tui.CheckNoColor()

	services, err := workflow.NewServices(ctx, "", cmd.OutOrStdout(), global.Output)
	if err != nil {
		return err
	}

	overrides := map[string]string{}
	if flags.model != "" {
		overrides["llm.default_model"] = flags.model
	}
	if flags.language != "" {
		overrides["llm.language"] = flags.language
	}
	cfg, err := workflow.LoadConfig(ctx, overrides)
	if err != nil {
		return err
	}

	fromRef, toRef, err := workflow.ChangelogRange(ctx, services.Git, flags.fromRef, flags.toRef)
	if err != nil {
		return err
	}

	messages, err := services.Git.CommitMessages(ctx, fromRef, toRef)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		services.Output.Info("No commits in range; changelog unchanged")
		return nil
	}

	model := cfg.GetString("llm.default_model")
	backend, err := services.Registry.Select(model, cfg)
	if err != nil {
		return err
	}

	language := cfg.GetString("llm.language")
	if language == "" {
		language = constants.DefaultLanguage
	}

	logger.Info().
		Str("model", model).
		Str("from", fromRef).
		Str("to", toRef).
		Int("commits", len(messages)).
		Msg("generating changelog")

	spinner := tui.NewSpinner(cmd.ErrOrStderr())
	if isTerminal() && !global.Quiet {
		spinner.Start(ctx, "Generating changelog...")
	}
	generated, err := backend.GenerateChangelog(ctx, messages, language)
	spinner.Stop()
	if err != nil {
		return err
	}

	if flags.output != "" {
		if err := services.Changelog.WriteStandalone(flags.output, generated, flags.force); err != nil {
			return err
		}
		services.Output.Success("Changelog written to " + flags.output)
		return nil
	}

	path, err := changelogPath(ctx, services, cfg.GetString("changelog.file"))
	if err != nil {
		return err
	}
	if err := services.Changelog.InsertSection(ctx, path, generated); err != nil {
		return err
	}

	services.Output.Success("Changelog updated: " + path)
	logger.Info().Str("path", path).Msg("changelog updated")
	return nil
}

// changelogPath resolves the changelog file location at the repository root.
func changelogPath(ctx context.Context, services *workflow.Services, configured string) (string, error) {
	name := configured
	if name == "" {
		name = constants.DefaultChangelogFileName
	}
	if filepath.IsAbs(name) {
		return name, nil
	}

	root, err := services.Git.RepoRoot(ctx)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name), nil
}
