// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar produces a single-column scrollbar of the given
// height for a list of total rows of which visible are shown starting
// at offset. When everything fits the thumb spans the full height.
func RenderScrollbar(renderer *lipgloss.Renderer, theme Theme, height, total, visible, offset int) string {
	if height <= 0 {
		return ""
	}

	track := renderer.NewStyle().Foreground(theme.BorderColor).Render("│")
	thumb := renderer.NewStyle().Foreground(theme.MatchForeground).Render("┃")

	lines := make([]string, height)
	if total <= visible || total <= 0 {
		for index := range lines {
			lines[index] = thumb
		}
		return strings.Join(lines, "\n")
	}

	thumbSize := max(height*visible/total, 1)
	scrollable := total - visible
	trackRange := height - thumbSize
	thumbOffset := 0
	if scrollable > 0 && trackRange > 0 {
		thumbOffset = offset * trackRange / scrollable
	}
	thumbOffset = min(thumbOffset, height-thumbSize)

	for index := range lines {
		if index >= thumbOffset && index < thumbOffset+thumbSize {
			lines[index] = thumb
		} else {
			lines[index] = track
		}
	}
	return strings.Join(lines, "\n")
}
