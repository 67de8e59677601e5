package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mrz1836/git-llm-tool/internal/cli/workflow"
	"github.com/mrz1836/git-llm-tool/internal/editor"
	"github.com/mrz1836/git-llm-tool/internal/errors"
	"github.com/mrz1836/git-llm-tool/internal/tui"
)

// commitFlags holds the flags for the commit command.
type commitFlags struct {
	model     string
	language  string
	ticket    string
	workHours string
	apply     bool
	yes       bool
	dryRun    bool
}

// AddCommitCommand adds the commit command to the root command.
func AddCommitCommand(root *cobra.Command, global *GlobalFlags) {
	flags := &commitFlags{}

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Generate a commit message from the staged diff",
		Long: `Generate a commit message from the staged diff using the configured
LLM provider.

The message opens in your editor for review before committing; saving an
empty file cancels. With --apply the edit step is skipped and the commit
is created after a confirmation prompt (--yes skips the prompt too).

When Jira support is enabled (jira.enabled), the ticket is extracted from
the branch name via jira.branch_regex or prompted for, and the time spent
is recorded in smart-commit format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCommit(cmd, global, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.model, "model", "m", "", "model to use (overrides llm.default_model)")
	cmd.Flags().StringVarP(&flags.language, "language", "l", "", "output language code (overrides llm.language)")
	cmd.Flags().StringVarP(&flags.ticket, "ticket", "t", "", "Jira ticket reference (skips extraction and prompt)")
	cmd.Flags().StringVar(&flags.workHours, "hours", "", "time spent, e.g. '2h 30m' (skips the prompt)")
	cmd.Flags().BoolVarP(&flags.apply, "apply", "a", false, "commit without opening the editor")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "skip the confirmation prompt (implies --apply)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the generated message without committing")

	root.AddCommand(cmd)
}

// runCommit drives the full commit generation flow.
func runCommit(cmd *cobra.Command, global *GlobalFlags, flags *commitFlags) error {
	ctx := cmd.Context()
	logger := GetLogger()
	tui.CheckNoColor()

	services, err := workflow.NewServices(ctx, "", cmd.OutOrStdout(), global.Output)
	if err != nil {
		return err
	}

	cfg, err := workflow.LoadConfig(ctx, commitOverrides(flags))
	if err != nil {
		return err
	}

	assembler := workflow.NewAssembler(services.Git, services.Prompter, services.Registry)
	gc, err := assembler.Assemble(ctx, cfg, workflow.Options{
		Model:     flags.model,
		Language:  flags.language,
		Ticket:    flags.ticket,
		WorkHours: flags.workHours,
	})
	if err != nil {
		logger.Debug().Str("state", string(assembler.State())).Msg("context assembly failed")
		return err
	}

	logger.Info().
		Str("model", gc.Model).
		Str("branch", gc.Branch).
		Int("diff_bytes", len(gc.Diff)).
		Msg("generating commit message")

	spinner := tui.NewSpinner(cmd.ErrOrStderr())
	if isTerminal() && !global.Quiet {
		spinner.Start(ctx, "Generating commit message...")
	}
	message, err := gc.Backend.GenerateCommitMessage(ctx, gc.Diff, gc.Language, gc.JiraTicket, gc.WorkHours)
	spinner.Stop()
	if err != nil {
		return err
	}

	if flags.dryRun {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), message)
		return nil
	}

	if !flags.apply && !flags.yes {
		message, err = reviewInEditor(ctx, cfg.GetString("editor.preferred_editor"), services, message)
		if err != nil {
			return err
		}
	}

	previewMessage(cmd, message)

	if !flags.yes {
		confirmed, confirmErr := services.Prompter.Confirm(ctx, "Create the commit?", true)
		if confirmErr != nil {
			return confirmErr
		}
		if !confirmed {
			return errors.Wrap(errors.ErrUserCancelled, "commit declined")
		}
	}

	if err := services.Git.Commit(ctx, message); err != nil {
		return err
	}

	services.Output.Success("Commit created")
	logger.Info().Str("branch", gc.Branch).Msg("commit created")
	return nil
}

// commitOverrides maps commit flags to config key overrides.
// Only explicitly set flags participate, preserving precedence for the rest.
func commitOverrides(flags *commitFlags) map[string]string {
	overrides := map[string]string{}
	if flags.model != "" {
		overrides["llm.default_model"] = flags.model
	}
	if flags.language != "" {
		overrides["llm.language"] = flags.language
	}
	return overrides
}

// reviewInEditor opens the generated message in the user's editor.
func reviewInEditor(ctx context.Context, preferred string, services *workflow.Services, message string) (string, error) {
	command, err := editor.Resolve(ctx, preferred, services.Git)
	if err != nil {
		return "", err
	}
	return editor.Open(ctx, command, message)
}

// previewMessage renders the message for the terminal.
func previewMessage(cmd *cobra.Command, message string) {
	out := cmd.OutOrStdout()
	if isTerminal() {
		_, _ = fmt.Fprintln(out, tui.RenderMarkdown(message))
		return
	}
	_, _ = fmt.Fprintln(out, message)
}

// isTerminal reports whether stdout is a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
