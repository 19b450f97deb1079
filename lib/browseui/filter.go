// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browseui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/hostel/lib/tui"
)

// FilterModel holds the filter bar state.
type FilterModel struct {
	// Input is the current filter text.
	Input string

	// Active is true while the filter bar has keyboard focus.
	Active bool
}

// HandleRune appends a typed character.
func (filter *FilterModel) HandleRune(character rune) {
	filter.Input += string(character)
}

// HandleBackspace removes the last character. Returns true if the
// input changed.
func (filter *FilterModel) HandleBackspace() bool {
	if filter.Input == "" {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the input and deactivates the bar.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// View renders the filter bar, or "" when it is hidden (inactive with
// no text).
func (filter *FilterModel) View(renderer *lipgloss.Renderer, theme tui.Theme, width int) string {
	if !filter.Active && filter.Input == "" {
		return ""
	}
	text := " / " + filter.Input
	if filter.Active {
		text += renderer.NewStyle().Foreground(theme.HeaderForeground).Bold(true).Render("▎")
	}
	return tui.Cell(renderer.NewStyle().Foreground(theme.NormalText).Render(text), width)
}
