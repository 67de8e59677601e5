package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// markdownWordWrap is the line width for rendered markdown previews.
const markdownWordWrap = 80

//nolint:gochecknoglobals // cached renderer for performance
var (
	markdownRenderer     *glamour.TermRenderer
	markdownRendererOnce sync.Once
)

// getMarkdownRenderer returns a cached glamour renderer.
// Returns nil if the renderer cannot be initialized.
func getMarkdownRenderer() *glamour.TermRenderer {
	markdownRendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(markdownWordWrap),
		)
		if err == nil {
			markdownRenderer = r
		}
	})
	return markdownRenderer
}

// RenderMarkdown renders markdown content for terminal display.
// Falls back to the raw content when styling is unavailable, so a preview
// never fails the surrounding command.
func RenderMarkdown(content string) string {
	if !HasColorSupport() {
		return content
	}

	renderer := getMarkdownRenderer()
	if renderer == nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n") + "\n"
}
