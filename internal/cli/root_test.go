package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with args in a fresh home directory.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GIT_LLM_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	return executeRoot(t, args...)
}

// executeRoot runs the root command with args and captures output.
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, BuildInfo{Version: "1.2.3", Commit: "abc1234", Date: "2025-03-14"})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRootCommand_ShowsHelp(t *testing.T) {
	out, err := executeCommand(t)
	require.NoError(t, err)
	assert.Contains(t, out, "git-llm")
	assert.Contains(t, out, "commit")
	assert.Contains(t, out, "changelog")
	assert.Contains(t, out, "config")
}

func TestRootCommand_UnknownCommand(t *testing.T) {
	_, err := executeCommand(t, "frobnicate")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestRootCommand_InvalidOutputFormat(t *testing.T) {
	_, err := executeCommand(t, "--output", "yaml", "config", "show")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestRootCommand_VerboseQuietExclusive(t *testing.T) {
	_, err := executeCommand(t, "--verbose", "--quiet", "config", "show")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestChangelogCommand_OutputFlag(t *testing.T) {
	out, err := executeCommand(t, "changelog", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--output string", "changelog must expose --output for the alternate target file")
	assert.Contains(t, out, "write a standalone file instead of updating the changelog")
	assert.NotContains(t, out, "--out ", "the alternate-file flag is spelled --output")
}

func TestCommitCommand_ApplyShorthand(t *testing.T) {
	out, err := executeCommand(t, "commit", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "-a, --apply")
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc1234")
}

func TestFormatVersion_Defaults(t *testing.T) {
	got := formatVersion(BuildInfo{})
	assert.Equal(t, "dev (commit: none, built: unknown)", got)
}
