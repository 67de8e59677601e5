package workflow

import (
	"context"
	"io"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmerrors "github.com/mrz1836/git-llm-tool/internal/errors"
)

// initRepo creates a temporary git repository and returns its path.
func initRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	cmd := exec.CommandContext(context.Background(), "git", "init")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git init failed: %s", out)
	return dir
}

func TestNewServices_ExplicitWorkDir(t *testing.T) {
	dir := initRepo(t)

	services, err := NewServices(context.Background(), dir, io.Discard, "text")
	require.NoError(t, err)

	require.NotNil(t, services.Git)
	assert.NotNil(t, services.Prompter)
	assert.NotNil(t, services.Registry)
	assert.NotNil(t, services.Changelog)
	assert.NotNil(t, services.Output)
}

func TestNewServices_EmptyWorkDirMeansCurrentDirectory(t *testing.T) {
	dir := initRepo(t)
	t.Chdir(dir)

	services, err := NewServices(context.Background(), "", io.Discard, "text")
	require.NoError(t, err, "empty workDir must resolve to the current directory")
	assert.NotNil(t, services.Git)
}

func TestNewServices_OutsideRepository(t *testing.T) {
	_, err := NewServices(context.Background(), t.TempDir(), io.Discard, "text")
	require.Error(t, err)
	assert.ErrorIs(t, err, llmerrors.ErrNotGitRepo)
}
