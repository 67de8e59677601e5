// Package changelog maintains the dated changelog document.
//
// The document has a single "# Changelog" title; each run of the changelog
// command inserts a new "## YYYY-MM-DD" section directly under the title,
// newest first. Nothing is written until generation has already succeeded,
// so a failed provider call never leaves a partially updated file.
package changelog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrz1836/git-llm-tool/internal/clock"
	"github.com/mrz1836/git-llm-tool/internal/constants"
	"github.com/mrz1836/git-llm-tool/internal/errors"
	"github.com/mrz1836/git-llm-tool/internal/flock"
)

const (
	// titleLine is the fixed document title.
	titleLine = "# Changelog"

	dirPerm  = 0o750
	filePerm = 0o644

	// lockTimeout bounds how long an update waits for a concurrent run.
	lockTimeout = 5 * time.Second

	lockRetryInterval = 50 * time.Millisecond
)

// Writer updates changelog files on disk.
type Writer struct {
	clock clock.Clock
}

// NewWriter creates a Writer that dates sections with the given clock.
func NewWriter(c clock.Clock) *Writer {
	if c == nil {
		c = clock.RealClock{}
	}
	return &Writer{clock: c}
}

// InsertSection inserts a dated section holding the generated content into
// the changelog at path. A missing file is created with the document title;
// in an existing file the new section lands directly after the title so the
// newest entries read first. Content the tool does not manage is preserved.
// A sidecar lock serializes the read-modify-write against concurrent runs.
func (w *Writer) InsertSection(ctx context.Context, path, generated string) error {
	release, err := acquireLock(ctx, path)
	if err != nil {
		return err
	}
	defer release()

	section := w.section(generated)

	data, err := os.ReadFile(path) // #nosec G304 -- changelog location chosen by the caller
	if err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(err, "failed to read changelog %s", path)
		}
		doc := titleLine + "\n\n" + section
		if writeErr := os.WriteFile(path, []byte(doc), filePerm); writeErr != nil {
			return errors.Wrapf(writeErr, "failed to write changelog %s", path)
		}
		return nil
	}

	updated := insertAfterTitle(string(data), section)
	if err := os.WriteFile(path, []byte(updated), filePerm); err != nil {
		return errors.Wrapf(err, "failed to write changelog %s", path)
	}
	return nil
}

// WriteStandalone writes a complete dated changelog document to path.
// An existing file is refused unless force is set.
func (w *Writer) WriteStandalone(path, generated string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.Wrapf(errors.ErrFileExists, "changelog file already exists at %s", path)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return errors.Wrapf(err, "failed to create directory for %s", path)
		}
	}

	doc := titleLine + "\n\n" + w.section(generated)
	if err := os.WriteFile(path, []byte(doc), filePerm); err != nil {
		return errors.Wrapf(err, "failed to write changelog %s", path)
	}
	return nil
}

// acquireLock takes an exclusive lock on a sidecar lock file next to path.
// It retries until lockTimeout, honoring context cancellation, and returns
// a release function.
func acquireLock(ctx context.Context, path string) (func(), error) {
	lockPath := path + ".lock"
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, filePerm) // #nosec G304 -- sidecar lock next to the changelog
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
			return nil, errors.Wrapf(errors.ErrLockTimeout, "changelog %s is locked by another process", path)
		}
		time.Sleep(lockRetryInterval)
	}
}

// section renders the generated content as one dated section.
func (w *Writer) section(generated string) string {
	date := w.clock.Now().Format(constants.DateFormatISO)
	body := strings.TrimSpace(stripTitle(generated))
	return "## " + date + "\n\n" + body + "\n"
}

// stripTitle drops a leading top-level heading from generated content.
// Models tend to repeat the document title even when told not to; keeping
// it would duplicate the one the document already has.
func stripTitle(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "# ") {
			return strings.Join(lines[i+1:], "\n")
		}
		break
	}
	return content
}

// insertAfterTitle places section after the document title in existing
// content. Content without a recognizable title gets one prepended.
func insertAfterTitle(existing, section string) string {
	lines := strings.Split(existing, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != titleLine {
			continue
		}
		head := strings.Join(lines[:i+1], "\n")
		rest := strings.TrimLeft(strings.Join(lines[i+1:], "\n"), "\n")
		if rest == "" {
			return head + "\n\n" + section
		}
		return head + "\n\n" + section + "\n" + rest
	}

	rest := strings.TrimLeft(existing, "\n")
	if rest == "" {
		return titleLine + "\n\n" + section
	}
	return titleLine + "\n\n" + section + "\n" + rest
}
