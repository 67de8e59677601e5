package workflow

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/git-llm-tool/internal/ai"
	"github.com/mrz1836/git-llm-tool/internal/config"
	"github.com/mrz1836/git-llm-tool/internal/constants"
	"github.com/mrz1836/git-llm-tool/internal/ctxutil"
	"github.com/mrz1836/git-llm-tool/internal/errors"
	"github.com/mrz1836/git-llm-tool/internal/git"
	"github.com/mrz1836/git-llm-tool/internal/jira"
)

// State tracks assembly progress. Transitions are strictly ordered; a
// failure at any step leaves the assembler in the last reached state,
// which verbose logging reports for diagnosis.
type State string

// Assembly states, in transition order.
const (
	StateInit             State = "init"
	StateConfigResolved   State = "config_resolved"
	StateJiraResolved     State = "jira_resolved"
	StateProviderSelected State = "provider_selected"
	StateContextReady     State = "context_ready"
)

// GenerationContext bundles everything commit message generation needs.
type GenerationContext struct {
	Config   *config.Resolved
	Model    string
	Language string
	Branch   string
	Diff     string

	// JiraTicket and WorkHours are empty when Jira support is disabled or
	// the user declined to provide them.
	JiraTicket string
	WorkHours  string

	Backend ai.Backend
}

// Options carries the CLI flag overrides for one assembly run.
// Zero values mean "not given on the command line".
type Options struct {
	Model     string
	Language  string
	Ticket    string
	WorkHours string
}

// Assembler builds a GenerationContext from git state, configuration, and
// interactive prompts.
type Assembler struct {
	git      git.Runner
	prompter Prompter
	registry *ai.Registry
	state    State
}

// NewAssembler creates an Assembler.
func NewAssembler(runner git.Runner, prompter Prompter, registry *ai.Registry) *Assembler {
	return &Assembler{
		git:      runner,
		prompter: prompter,
		registry: registry,
		state:    StateInit,
	}
}

// State returns the last state the assembler reached.
func (a *Assembler) State() State {
	return a.state
}

// Assemble gathers the full generation context for a commit.
//
// The staged diff and current branch are fetched concurrently; either
// failure aborts assembly. Jira details are resolved only when
// jira.enabled is set: a branch-regex match fills the ticket without a
// prompt, otherwise the user is asked, and the work-hours prompt always
// runs while Jira support is on. The provider backend is selected last so
// a missing credential is reported only after the cheaper steps passed.
func (a *Assembler) Assemble(ctx context.Context, cfg *config.Resolved, opts Options) (*GenerationContext, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "workflow").Logger()

	a.state = StateConfigResolved
	logger.Debug().Str("state", string(a.state)).Msg("configuration resolved")

	gc := &GenerationContext{Config: cfg}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		diff, err := a.git.StagedDiff(gctx)
		if err != nil {
			return err
		}
		gc.Diff = diff
		return nil
	})
	g.Go(func() error {
		branch, err := a.git.CurrentBranch(gctx)
		if err != nil {
			return err
		}
		gc.Branch = branch
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := a.resolveJira(ctx, cfg, opts, gc); err != nil {
		return nil, err
	}
	a.state = StateJiraResolved
	logger.Debug().
		Str("state", string(a.state)).
		Bool("ticket_set", gc.JiraTicket != "").
		Msg("jira details resolved")

	gc.Model = opts.Model
	if gc.Model == "" {
		gc.Model = cfg.GetString("llm.default_model")
	}
	gc.Language = resolveLanguage(cfg, opts.Language)

	backend, err := a.registry.Select(gc.Model, cfg)
	if err != nil {
		return nil, err
	}
	gc.Backend = backend
	a.state = StateProviderSelected
	logger.Debug().Str("state", string(a.state)).Str("model", gc.Model).Msg("provider selected")

	a.state = StateContextReady
	logger.Debug().Str("state", string(a.state)).Msg("generation context ready")
	return gc, nil
}

// resolveJira fills the ticket and work-hours fields.
// With jira.enabled unset this is a no-op: no extraction, no prompts.
func (a *Assembler) resolveJira(ctx context.Context, cfg *config.Resolved, opts Options, gc *GenerationContext) error {
	if !cfg.GetBool("jira.enabled") {
		return nil
	}

	ticket, err := a.resolveTicket(ctx, cfg, opts, gc.Branch)
	if err != nil {
		return err
	}
	gc.JiraTicket = ticket

	hours := opts.WorkHours
	if hours == "" {
		hours, err = a.prompter.Input(ctx,
			"Time spent (e.g. 2h 30m)", "leave empty to skip",
			true, jira.ValidateWorkHours)
		if err != nil {
			return err
		}
	} else if err := jira.ValidateWorkHours(hours); err != nil {
		return err
	}
	if hours != "" {
		gc.WorkHours = jira.NormalizeWorkHours(hours)
	}

	return nil
}

// resolveTicket picks the ticket from the flag, the branch name, or a prompt,
// in that order.
func (a *Assembler) resolveTicket(ctx context.Context, cfg *config.Resolved, opts Options, branch string) (string, error) {
	if opts.Ticket != "" {
		normalized := jira.NormalizeTicket(opts.Ticket)
		if err := jira.ValidateTicket(normalized); err != nil {
			return "", err
		}
		return normalized, nil
	}

	result, err := jira.Extract(cfg.GetString("jira.branch_regex"), branch)
	if err != nil {
		return "", err
	}
	if result.State == jira.StateMatched {
		return jira.NormalizeTicket(result.Ticket), nil
	}

	ticket, err := a.prompter.Input(ctx,
		"Jira ticket (e.g. PROJ-123)", "leave empty to skip",
		true, func(s string) error {
			return jira.ValidateTicket(jira.NormalizeTicket(s))
		})
	if err != nil {
		return "", err
	}
	return jira.NormalizeTicket(ticket), nil
}

// resolveLanguage applies the language precedence: CLI flag, configuration,
// built-in default.
func resolveLanguage(cfg *config.Resolved, flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := cfg.GetString("llm.language"); v != "" {
		return v
	}
	return constants.DefaultLanguage
}

// ChangelogRange resolves the commit range for changelog generation.
// An empty fromRef falls back to the latest tag, then to the root commit
// of a repository that has never been tagged. An empty toRef means HEAD.
func ChangelogRange(ctx context.Context, runner git.Runner, fromRef, toRef string) (string, string, error) {
	if toRef == "" {
		toRef = "HEAD"
	}
	if fromRef != "" {
		return fromRef, toRef, nil
	}

	tag, err := runner.LatestTag(ctx)
	if err != nil {
		return "", "", err
	}
	if tag != "" {
		return tag, toRef, nil
	}

	root, err := runner.RootCommit(ctx)
	if err != nil {
		return "", "", err
	}
	if root == "" {
		return "", "", errors.Wrap(errors.ErrNoCommitsInRange, "repository has no commits")
	}
	return root, toRef, nil
}
