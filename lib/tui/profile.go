// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// DetectProfile returns the color profile for output written to w.
// Anything other than a terminal gets termenv.Ascii, so piped output
// and test buffers carry no escape sequences.
func DetectProfile(w io.Writer) termenv.Profile {
	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return termenv.Ascii
	}
	return termenv.NewOutput(file).EnvColorProfile()
}

// NewRenderer returns a lipgloss renderer for w pinned to profile.
// Pinning stops lipgloss from re-detecting the profile from the
// environment on first use.
func NewRenderer(w io.Writer, profile termenv.Profile) *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)
	return renderer
}

// Cell fits text to exactly width terminal cells: longer text is
// truncated, shorter text is padded with spaces on the right. Width is
// measured in cells, so ANSI sequences and wide runes are handled.
func Cell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	text = ansi.Truncate(text, width, "")
	if pad := width - ansi.StringWidth(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return text
}
