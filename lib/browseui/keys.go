// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browseui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the browser.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Detail pane scrolling.
	DetailUp   key.Binding
	DetailDown key.Binding

	TabToggle   key.Binding
	TabStudents key.Binding
	TabTickets  key.Binding

	FilterActivate key.Binding
	FilterClear    key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set: vim-style j/k
// alongside the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	DetailUp: key.NewBinding(
		key.WithKeys("K"),
		key.WithHelp("K", "detail up"),
	),
	DetailDown: key.NewBinding(
		key.WithKeys("J"),
		key.WithHelp("J", "detail down"),
	),
	TabToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch tab"),
	),
	TabStudents: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "students"),
	),
	TabTickets: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "tickets"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear filter"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
