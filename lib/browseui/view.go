// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browseui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/hostel/lib/tui"
)

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	var sections []string

	// The filter bar replaces the tab bar so the layout does not shift.
	if filterView := model.filter.View(model.renderer, model.theme, model.width); filterView != "" {
		sections = append(sections, filterView)
	} else {
		sections = append(sections, model.renderHeader())
	}

	height := model.listHeight()
	content := lipgloss.JoinHorizontal(lipgloss.Top,
		model.renderList(),
		tui.RenderScrollbar(model.renderer, model.theme, height, len(model.rows), height, model.scrollOffset),
		model.renderDivider(),
		model.detail.View(),
	)
	sections = append(sections, content)

	separator := model.renderer.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width))
	sections = append(sections, separator, model.renderHelp())

	return strings.Join(sections, "\n")
}

func (model Model) renderHeader() string {
	selected := model.renderer.NewStyle().
		Bold(true).
		Foreground(model.theme.SelectedForeground).
		Background(model.theme.SelectedBackground)
	normal := model.renderer.NewStyle().Foreground(model.theme.FaintText)

	tab := func(target Tab, label string, count int) string {
		text := fmt.Sprintf(" %s (%d) ", label, count)
		if model.tab == target {
			return selected.Render(text)
		}
		return normal.Render(text)
	}
	header := tab(TabStudents, "1 Students", len(model.students)) + " " +
		tab(TabTickets, "2 Tickets", len(model.tickets))
	return tui.Cell(header, model.width)
}

func (model Model) renderList() string {
	width := model.listWidth()
	height := model.listHeight()
	selected := model.renderer.NewStyle().
		Foreground(model.theme.SelectedForeground).
		Background(model.theme.SelectedBackground)

	lines := make([]string, 0, height)
	for position := model.scrollOffset; position < len(model.rows) && len(lines) < height; position++ {
		marker := "  "
		if position == model.cursor {
			marker = "▸ "
		}
		line := tui.Cell(marker+model.renderRow(model.rows[position]), width)
		if position == model.cursor {
			line = selected.Render(line)
		}
		lines = append(lines, line)
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderRow(entry row) string {
	if model.tab == TabTickets {
		ticket := model.tickets[entry.index]
		status := model.renderer.NewStyle().
			Foreground(model.theme.StatusColor(ticket.Status)).
			Render(fmt.Sprintf("%-11s", ticket.Status))
		return fmt.Sprintf("#%-4d %s %s: %s", ticket.ID, status, ticket.StudentName, ticket.Issue)
	}

	student := model.students[entry.index]
	name := model.highlight(student.Name, entry.match.Positions)
	text := fmt.Sprintf("%6d  %s", student.ID, name)
	if !student.Active {
		text += model.renderer.NewStyle().Foreground(model.theme.ActiveColor(false)).Render("  (inactive)")
	}
	return text
}

// highlight styles the runes of text at the given rune positions.
func (model Model) highlight(text string, positions []int) string {
	if len(positions) == 0 {
		return text
	}
	style := model.renderer.NewStyle().Bold(true).Foreground(model.theme.MatchForeground)
	var builder strings.Builder
	for index, character := range []rune(text) {
		if _, found := slices.BinarySearch(positions, index); found {
			builder.WriteString(style.Render(string(character)))
		} else {
			builder.WriteRune(character)
		}
	}
	return builder.String()
}

func (model Model) renderDivider() string {
	style := model.renderer.NewStyle().Foreground(model.theme.BorderColor)
	lines := make([]string, model.listHeight())
	for index := range lines {
		lines[index] = style.Render("│")
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderHelp() string {
	position := "0/0"
	if len(model.rows) > 0 {
		position = fmt.Sprintf("%d/%d", model.cursor+1, len(model.rows))
	}
	mode := "LIST"
	if model.filter.Active {
		mode = "FILTER"
	}
	help := fmt.Sprintf(" [%s] q quit  ↑↓ navigate  Tab/1/2 tabs  / filter  J/K scroll detail  %s", mode, position)
	return model.renderer.NewStyle().Foreground(model.theme.HelpText).Render(tui.Cell(help, model.width))
}
