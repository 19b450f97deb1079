// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"fmt"
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/hostel/lib/query"
	"github.com/bureau-foundation/hostel/lib/schema"
	"github.com/bureau-foundation/hostel/lib/tui"
)

const (
	menuRule      = "==============================================="
	tableRule     = "---------------------------------------------------------------------------------------------"
	dashboardRule = "========================================================="
)

type styles struct {
	renderer *lipgloss.Renderer
	theme    tui.Theme

	header  lipgloss.Style
	rule    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
}

func newStyles(renderer *lipgloss.Renderer, theme tui.Theme) styles {
	return styles{
		renderer: renderer,
		theme:    theme,
		header:   renderer.NewStyle().Bold(true).Foreground(theme.HeaderForeground),
		rule:     renderer.NewStyle().Foreground(theme.BorderColor),
		success:  renderer.NewStyle().Foreground(theme.Success),
		warning:  renderer.NewStyle().Bold(true).Foreground(theme.Warning),
		failure:  renderer.NewStyle().Foreground(theme.Failure),
	}
}

func (st styles) status(status schema.TicketStatus) lipgloss.Style {
	return st.renderer.NewStyle().Foreground(st.theme.StatusColor(status))
}

func (st styles) active(active bool) lipgloss.Style {
	return st.renderer.NewStyle().Foreground(st.theme.ActiveColor(active))
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

func (s *Shell) rule(line string) {
	s.println(s.styles.rule.Render(line))
}

// menu prints a titled menu box.
func (s *Shell) menu(title string, items ...string) {
	s.println("")
	s.rule(menuRule)
	s.println(s.styles.header.Render(title))
	s.rule(menuRule)
	for _, item := range items {
		s.println(item)
	}
	s.rule(menuRule)
}

// heading prints a section title, underlined when underline is set.
func (s *Shell) heading(title string, underline bool) {
	s.printf("\n%s\n", s.styles.header.Render(title))
	if underline {
		s.println(strings.Repeat("-", len(title)))
	}
}

func (s *Shell) info(message string)    { s.printf("\n%s\n", message) }
func (s *Shell) success(message string) { s.printf("\n%s\n", s.styles.success.Render(message)) }
func (s *Shell) warn(message string)    { s.printf("\n%s\n", s.styles.warning.Render(message)) }
func (s *Shell) fail(message string)    { s.printf("\n%s\n", s.styles.failure.Render(message)) }

// failErr prints err as a one-line failure message.
func (s *Shell) failErr(err error) {
	s.fail(strings.ToUpper(err.Error()) + ".")
}

// studentTable prints a table of students and reports how many rows
// it printed.
func (s *Shell) studentTable(students iter.Seq[schema.Student]) int {
	s.rule(tableRule)
	s.printf("| %-3s | %s | %s | %s | %s | %s | %s |\n",
		"ID", tui.Cell("NAME", 20), tui.Cell("ROOM", 4), tui.Cell("CAMPUS", 6),
		tui.Cell("YEAR", 4), tui.Cell("DEPT", 14), tui.Cell("ACTIVE", 6))
	s.rule(tableRule)
	rows := 0
	for student := range students {
		s.printf("| %-3d | %s | %s | %s | %s | %s | %s |\n",
			student.ID,
			tui.Cell(student.Name, 20),
			tui.Cell(student.RoomNo, 4),
			tui.Cell(student.Campus, 6),
			tui.Cell(student.Year, 4),
			tui.Cell(student.Dept, 14),
			s.styles.active(student.Active).Render(tui.Cell(student.ActiveLabel(), 6)),
		)
		rows++
	}
	s.rule(tableRule)
	return rows
}

// ticketTable prints a table of tickets and reports how many rows it
// printed.
func (s *Shell) ticketTable(tickets iter.Seq[schema.Ticket]) int {
	s.rule(tableRule)
	s.printf("| TID | STU_ID | %s | %s |\n", tui.Cell("STUDENT NAME", 18), tui.Cell("STATUS", 11))
	s.rule(tableRule)
	rows := 0
	for ticket := range tickets {
		s.printf("| %-3d | %-6d | %s | %s |\n",
			ticket.ID,
			ticket.StudentID,
			tui.Cell(ticket.StudentName, 18),
			s.styles.status(ticket.Status).Render(tui.Cell(string(ticket.Status), 11)),
		)
		rows++
	}
	s.rule(tableRule)
	return rows
}

func (s *Shell) ticketDetails(ticket schema.Ticket) {
	s.printf("\n%s\n", s.styles.header.Render("TICKET DETAILS:"))
	s.printf("TICKET ID  : %d\n", ticket.ID)
	s.printf("STUDENT ID : %d\n", ticket.StudentID)
	s.printf("STUDENT    : %s\n", ticket.StudentName)
	s.printf("ISSUE      : %s\n", ticket.Issue)
	s.printf("STATUS     : %s\n", s.styles.status(ticket.Status).Render(string(ticket.Status)))
}

func (s *Shell) dashboardLines(summary query.Summary, campuses []string) {
	s.printf("\n%s\n", s.styles.header.Render("=================== DASHBOARD SUMMARY ==================="))
	line := func(label string, value int) {
		s.printf("%-24s: %d\n", label, value)
	}
	line("TOTAL STUDENTS", summary.TotalStudents)
	line("ACTIVE STUDENTS", summary.ActiveStudents)
	for _, row := range summary.CampusRows(campuses) {
		label := "NO CAMPUS STUDENTS"
		if row.Campus != "" {
			label = "CAMPUS " + row.Campus + " STUDENTS"
		}
		line(label, row.Count)
	}
	line("TOTAL ISSUES RAISED", summary.TotalTickets)
	line("OPEN ISSUES", summary.OpenTickets)
	line("IN PROGRESS ISSUES", summary.InProgressTickets)
	line("RESOLVED ISSUES", summary.ResolvedTickets)
	s.rule(dashboardRule)
}
