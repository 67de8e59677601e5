package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasColorSupport(t *testing.T) {
	t.Run("NO_COLOR disables color even when empty", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		assert.False(t, HasColorSupport())
	})

	t.Run("dumb terminal disables color", func(t *testing.T) {
		t.Setenv("TERM", "dumb")
		assert.False(t, HasColorSupport())
	})
}

func TestNewOutputStyles(t *testing.T) {
	styles := NewOutputStyles()

	assert.True(t, styles.Success.GetBold())
	assert.True(t, styles.Error.GetBold())
	assert.False(t, styles.Warning.GetBold())
}

func TestRenderMarkdown_NoColorPassthrough(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	content := "# Title\n\n- item\n"
	assert.Equal(t, content, RenderMarkdown(content))
}
