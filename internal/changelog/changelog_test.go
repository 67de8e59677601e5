package changelog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/git-llm-tool/internal/errors"
)

// fixedClock always returns the same instant.
type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time { return c.at }

func newTestWriter(year int, month time.Month, day int) *Writer {
	return NewWriter(fixedClock{at: time.Date(year, month, day, 12, 0, 0, 0, time.UTC)})
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestInsertSection_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changelog.md")
	w := newTestWriter(2025, time.March, 14)

	err := w.InsertSection(context.Background(), path, "## Features\n- added the thing\n")
	require.NoError(t, err)

	assert.Equal(t,
		"# Changelog\n\n## 2025-03-14\n\n## Features\n- added the thing\n",
		readFile(t, path))
}

func TestInsertSection_NewestSectionFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changelog.md")

	first := newTestWriter(2025, time.January, 10)
	require.NoError(t, first.InsertSection(context.Background(), path, "## Fixes\n- fixed a bug\n"))

	second := newTestWriter(2025, time.February, 20)
	require.NoError(t, second.InsertSection(context.Background(), path, "## Features\n- shipped a feature\n"))

	got := readFile(t, path)
	assert.Equal(t,
		"# Changelog\n\n"+
			"## 2025-02-20\n\n## Features\n- shipped a feature\n\n"+
			"## 2025-01-10\n\n## Fixes\n- fixed a bug\n",
		got)
}

func TestInsertSection_StripsDuplicateTitle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changelog.md")
	w := newTestWriter(2025, time.March, 14)

	err := w.InsertSection(context.Background(), path, "# Changelog\n\n## Features\n- added the thing\n")
	require.NoError(t, err)

	got := readFile(t, path)
	assert.Equal(t,
		"# Changelog\n\n## 2025-03-14\n\n## Features\n- added the thing\n",
		got)
}

func TestInsertSection_PreservesForeignContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changelog.md")
	existing := "# Changelog\n\nSome hand-written preamble.\n\n## 2024-12-01\n\n- old entry\n"
	require.NoError(t, os.WriteFile(path, []byte(existing), 0o644))

	w := newTestWriter(2025, time.March, 14)
	require.NoError(t, w.InsertSection(context.Background(), path, "## Fixes\n- fixed it\n"))

	got := readFile(t, path)
	assert.Contains(t, got, "Some hand-written preamble.")
	assert.Contains(t, got, "## 2024-12-01")
	assert.Less(t,
		strings.Index(got, "## 2025-03-14"), strings.Index(got, "Some hand-written preamble."),
		"new section must come before the pre-existing content")
}

func TestInsertSection_FileWithoutTitle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changelog.md")
	require.NoError(t, os.WriteFile(path, []byte("- loose note\n"), 0o644))

	w := newTestWriter(2025, time.March, 14)
	require.NoError(t, w.InsertSection(context.Background(), path, "## Features\n- x\n"))

	got := readFile(t, path)
	assert.Equal(t,
		"# Changelog\n\n## 2025-03-14\n\n## Features\n- x\n\n- loose note\n",
		got)
}

func TestWriteStandalone_RefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "release-notes.md")
	require.NoError(t, os.WriteFile(path, []byte("precious\n"), 0o644))

	w := newTestWriter(2025, time.March, 14)

	err := w.WriteStandalone(path, "## Features\n- x\n", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFileExists)
	assert.Equal(t, "precious\n", readFile(t, path), "refused write must not touch the file")
}

func TestWriteStandalone_ForceOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "release-notes.md")
	require.NoError(t, os.WriteFile(path, []byte("precious\n"), 0o644))

	w := newTestWriter(2025, time.March, 14)
	require.NoError(t, w.WriteStandalone(path, "## Features\n- x\n", true))

	assert.Equal(t,
		"# Changelog\n\n## 2025-03-14\n\n## Features\n- x\n",
		readFile(t, path))
}

func TestWriteStandalone_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs", "releases", "notes.md")

	w := newTestWriter(2025, time.March, 14)
	require.NoError(t, w.WriteStandalone(path, "## Fixes\n- y\n", false))

	assert.Contains(t, readFile(t, path), "## 2025-03-14")
}
