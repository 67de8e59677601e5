// Package jira extracts and validates Jira ticket references for commit
// message generation. Extraction is driven by the jira.branch_regex
// configuration key; validation and work-hours normalization back the
// interactive prompts.
package jira

import (
	"regexp"

	"github.com/mrz1836/git-llm-tool/internal/errors"
)

// ResultState classifies the outcome of a branch-name extraction.
type ResultState string

const (
	// StateMatched means the pattern matched and captured a ticket.
	StateMatched ResultState = "matched"

	// StateNotConfigured means no branch regex is configured.
	StateNotConfigured ResultState = "not_configured"

	// StateNoMatch means a regex is configured but did not match the
	// branch name. Callers fall back to prompting, same as NotConfigured,
	// but the two are kept distinct for verbose tracing.
	StateNoMatch ResultState = "no_match"
)

// Result is the outcome of extracting a ticket from a branch name.
type Result struct {
	State  ResultState
	Ticket string // set only when State is StateMatched
}

// Extract applies the configured branch regex to a branch name.
//
// An empty pattern yields StateNotConfigured. A pattern that fails to
// compile, or that defines no capture group, is a configuration error:
// the first capture group is the ticket, and silently using the whole
// match would make ambiguous patterns extract garbage.
//
// Matching is case-sensitive and unanchored; the pattern anchors itself
// if the user wants anchoring. A pattern that matches with an empty first
// capture (an optional group that captured nothing) counts as no match:
// an empty string is never a usable ticket, so the caller falls back to
// prompting.
func Extract(pattern, branch string) (Result, error) {
	if pattern == "" {
		return Result{State: StateNotConfigured}, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return Result{}, errors.Wrapf(errors.ErrConfig, "invalid jira.branch_regex %q: %v", pattern, err)
	}

	if re.NumSubexp() == 0 {
		return Result{}, errors.Wrapf(errors.ErrConfig, "jira.branch_regex %q must contain a capture group for the ticket", pattern)
	}

	match := re.FindStringSubmatch(branch)
	if match == nil || match[1] == "" {
		return Result{State: StateNoMatch}, nil
	}

	return Result{State: StateMatched, Ticket: match[1]}, nil
}
