package jira

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mrz1836/git-llm-tool/internal/errors"
)

//nolint:gochecknoglobals // compiled once, read-only
var (
	// ticketFormat is the conventional Jira issue key shape: an uppercase
	// project key followed by a numeric issue number (e.g. PROJ-123).
	ticketFormat = regexp.MustCompile(`^[A-Z][A-Z0-9]*-\d+$`)

	// workHoursFormat accepts Jira-style durations with optional week,
	// day, hour, and minute components in that order. Input is lowercased
	// and stripped of spaces before matching.
	workHoursFormat = regexp.MustCompile(`^(\d+w)?(\d+d)?(\d+h)?(\d+m)?$`)

	weekComponent   = regexp.MustCompile(`(\d+)w`)
	dayComponent    = regexp.MustCompile(`(\d+)d`)
	hourComponent   = regexp.MustCompile(`(\d+)h`)
	minuteComponent = regexp.MustCompile(`(\d+)m`)
)

// NormalizeTicket uppercases a ticket reference (proj-123 -> PROJ-123).
func NormalizeTicket(ticket string) string {
	return strings.ToUpper(strings.TrimSpace(ticket))
}

// ValidateTicket checks that text looks like a Jira issue key.
// Validation is case-insensitive; use NormalizeTicket for the stored form.
func ValidateTicket(ticket string) error {
	if !ticketFormat.MatchString(NormalizeTicket(ticket)) {
		return errors.Wrapf(errors.ErrInvalidTicket, "%q does not look like a Jira ticket (e.g. PROJ-123)", ticket)
	}
	return nil
}

// ValidateWorkHours checks a duration like "1h 30m", "2h", "45m", "1d 2h",
// or "1w 2d 3h 30m". Components must appear in week, day, hour, minute
// order. Empty input is valid; callers treat it as skipped.
func ValidateWorkHours(input string) error {
	if !workHoursFormat.MatchString(cleanWorkHours(input)) {
		return errors.Wrapf(errors.ErrInvalidWorkHours, "%q should be like '1h 30m', '2h', '45m', '1d 2h', or '1w 2d 3h 30m'", input)
	}
	return nil
}

// NormalizeWorkHours rewrites a duration into the fixed "Ww Dd Hh Mm" form
// Jira work logs expect, filling absent components with zero
// ("1h 30m" -> "0w 0d 1h 30m").
func NormalizeWorkHours(input string) string {
	clean := cleanWorkHours(input)

	weeks := componentValue(weekComponent, clean)
	days := componentValue(dayComponent, clean)
	hours := componentValue(hourComponent, clean)
	minutes := componentValue(minuteComponent, clean)

	return fmt.Sprintf("%dw %dd %dh %dm", weeks, days, hours, minutes)
}

func cleanWorkHours(input string) string {
	return strings.ToLower(strings.ReplaceAll(input, " ", ""))
}

func componentValue(re *regexp.Regexp, clean string) int {
	match := re.FindStringSubmatch(clean)
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return n
}
