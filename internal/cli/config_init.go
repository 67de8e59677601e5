package cli

import (
	"context"
	"errors"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mrz1836/git-llm-tool/internal/config"
	"github.com/mrz1836/git-llm-tool/internal/constants"
	llmerrors "github.com/mrz1836/git-llm-tool/internal/errors"
	"github.com/mrz1836/git-llm-tool/internal/tui"
)

// initAnswers holds the wizard results for "config init".
type initAnswers struct {
	model       string
	language    string
	jiraEnabled bool
	branchRegex string
}

// newConfigInitCmd creates the "config init" command.
func newConfigInitCmd(global *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the global configuration file",
		Long: `Create ~/.git-llm-tool/config.yaml with the built-in defaults.

On a terminal an interactive wizard asks for the default model, output
language, and Jira settings first. An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tui.CheckNoColor()

			path, err := config.GlobalConfigPath()
			if err != nil {
				return err
			}

			answers := initAnswers{
				model:    constants.DefaultModel,
				language: constants.DefaultLanguage,
			}
			if term.IsTerminal(int(os.Stdin.Fd())) && global.Output != OutputJSON {
				if err := runInitWizard(ctx, &answers); err != nil {
					return err
				}
			}

			if err := config.InitFile(path); err != nil {
				return err
			}
			if err := applyInitAnswers(cmd, path, answers); err != nil {
				return err
			}

			tui.NewOutput(cmd.OutOrStdout(), global.Output).Success("Configuration created: " + path)
			return nil
		},
	}
}

// runInitWizard collects the starter settings interactively.
func runInitWizard(ctx context.Context, answers *initAnswers) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Default model").
				Description("e.g. gpt-4o, claude-3-5-sonnet-20241022, gemini-1.5-pro, llama3.2").
				Value(&answers.model),
			huh.NewInput().
				Title("Output language code").
				Description("e.g. en, de, fr").
				Value(&answers.language),
			huh.NewConfirm().
				Title("Enable Jira ticket prompts?").
				Value(&answers.jiraEnabled),
		),
	).WithTheme(tui.Theme())

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) || ctx.Err() != nil {
			return llmerrors.Wrap(llmerrors.ErrUserCancelled, "init wizard aborted")
		}
		return llmerrors.Wrap(err, "init wizard failed")
	}

	if answers.jiraEnabled {
		regexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Branch regex for ticket extraction").
					Description("one capture group, e.g. ([A-Z]+-\\d+); leave empty to always prompt").
					Value(&answers.branchRegex),
			),
		).WithTheme(tui.Theme())
		if err := regexForm.RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) || ctx.Err() != nil {
				return llmerrors.Wrap(llmerrors.ErrUserCancelled, "init wizard aborted")
			}
			return llmerrors.Wrap(err, "init wizard failed")
		}
	}

	return nil
}

// applyInitAnswers writes the wizard answers into the fresh config file.
func applyInitAnswers(cmd *cobra.Command, path string, answers initAnswers) error {
	ctx := cmd.Context()

	settings := map[string]string{
		"llm.default_model": answers.model,
		"llm.language":      answers.language,
		"jira.enabled":      strconv.FormatBool(answers.jiraEnabled),
	}
	if answers.branchRegex != "" {
		settings["jira.branch_regex"] = answers.branchRegex
	}

	for key, value := range settings {
		if value == "" {
			continue
		}
		if err := config.SetValue(ctx, path, key, value); err != nil {
			return err
		}
	}
	return nil
}
