// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browseui

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/hostel/lib/query"
	"github.com/bureau-foundation/hostel/lib/schema"
	"github.com/bureau-foundation/hostel/lib/tui"
)

// Tab selects which collection the list shows.
type Tab int

const (
	TabStudents Tab = iota
	TabTickets
)

func (tab Tab) String() string {
	if tab == TabTickets {
		return "tickets"
	}
	return "students"
}

// Chrome lines around the content area: the tab or filter bar above,
// the separator and help bar below.
const chromeLines = 3

type row struct {
	index int
	match query.FuzzyResult
}

// Model is the bubbletea model of the browser.
type Model struct {
	students []schema.Student
	tickets  []schema.Ticket

	keys     KeyMap
	theme    tui.Theme
	renderer *lipgloss.Renderer
	slab     *util.Slab

	tab          Tab
	filter       FilterModel
	rows         []row
	cursor       int
	scrollOffset int

	width  int
	height int
	ready  bool
	detail viewport.Model
}

// NewModel builds a browser over a snapshot of dataset. Styles are
// produced by renderer.
func NewModel(dataset schema.Dataset, renderer *lipgloss.Renderer) Model {
	model := Model{
		students: slices.Clone(dataset.Students),
		tickets:  slices.Clone(dataset.Tickets),
		keys:     DefaultKeyMap,
		theme:    tui.DefaultTheme,
		renderer: renderer,
		slab:     query.NewSlab(),
	}
	model.rebuildRows()
	return model
}

// Run shows the browser on output until the user quits or ctx ends.
func Run(ctx context.Context, dataset schema.Dataset, input io.Reader, output io.Writer) error {
	renderer := tui.NewRenderer(output, tui.DetectProfile(output))
	program := tea.NewProgram(NewModel(dataset, renderer),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(input),
		tea.WithOutput(output),
	)
	_, err := program.Run()
	return err
}

// Tab returns the active tab.
func (model Model) Tab() Tab { return model.tab }

// SelectedStudent returns the student under the cursor on the
// students tab.
func (model Model) SelectedStudent() (schema.Student, bool) {
	if model.tab != TabStudents || len(model.rows) == 0 {
		return schema.Student{}, false
	}
	return model.students[model.rows[model.cursor].index], true
}

// SelectedTicket returns the ticket under the cursor on the tickets
// tab.
func (model Model) SelectedTicket() (schema.Ticket, bool) {
	if model.tab != TabTickets || len(model.rows) == 0 {
		return schema.Ticket{}, false
	}
	return model.tickets[model.rows[model.cursor].index], true
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.layout()
		return model, nil

	case tea.KeyMsg:
		if model.filter.Active {
			return model.handleFilterKeys(message)
		}
		return model.handleKeys(message)
	}
	return model, nil
}

func (model Model) handleKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(message, model.keys.Up):
		model.moveCursor(-1)
	case key.Matches(message, model.keys.Down):
		model.moveCursor(1)
	case key.Matches(message, model.keys.PageUp):
		model.moveCursor(-model.listHeight())
	case key.Matches(message, model.keys.PageDown):
		model.moveCursor(model.listHeight())
	case key.Matches(message, model.keys.Home):
		model.moveCursor(-len(model.rows))
	case key.Matches(message, model.keys.End):
		model.moveCursor(len(model.rows))
	case key.Matches(message, model.keys.DetailUp):
		model.detail.HalfViewUp()
	case key.Matches(message, model.keys.DetailDown):
		model.detail.HalfViewDown()
	case key.Matches(message, model.keys.TabToggle):
		model.switchTab(1 - model.tab)
	case key.Matches(message, model.keys.TabStudents):
		model.switchTab(TabStudents)
	case key.Matches(message, model.keys.TabTickets):
		model.switchTab(TabTickets)
	case key.Matches(message, model.keys.FilterActivate):
		model.filter.Active = true
	case key.Matches(message, model.keys.FilterClear):
		if model.filter.Input != "" {
			model.filter.Clear()
			model.rebuildRows()
		}
	}
	return model, nil
}

// handleFilterKeys routes keystrokes while the filter bar has focus.
// Printable characters (q included) go to the input.
func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case key.Matches(message, model.keys.FilterClear):
		if model.filter.Input != "" {
			model.filter.Clear()
			model.rebuildRows()
		} else {
			model.filter.Active = false
		}

	case message.Type == tea.KeyEnter:
		model.filter.Active = false

	case message.Type == tea.KeyBackspace:
		if model.filter.HandleBackspace() {
			model.rebuildRows()
		}

	case message.Type == tea.KeySpace:
		model.filter.HandleRune(' ')
		model.rebuildRows()

	case message.Type == tea.KeyRunes:
		for _, character := range message.Runes {
			model.filter.HandleRune(character)
		}
		model.rebuildRows()
	}
	return model, nil
}

func (model *Model) switchTab(tab Tab) {
	if tab == model.tab {
		return
	}
	model.tab = tab
	model.rebuildRows()
}

// rebuildRows recomputes the visible rows from the active tab and the
// filter. A non-empty filter orders rows by match score, best first;
// equal scores keep collection order.
func (model *Model) rebuildRows() {
	pattern := model.filter.Input
	var rows []row
	switch model.tab {
	case TabStudents:
		for index := range model.students {
			if match, ok := query.FuzzyMatch(model.students[index].Name, pattern, model.slab); ok {
				rows = append(rows, row{index: index, match: match})
			}
		}
	case TabTickets:
		for index := range model.tickets {
			if match, ok := query.FuzzyMatch(ticketText(model.tickets[index]), pattern, model.slab); ok {
				rows = append(rows, row{index: index, match: match})
			}
		}
	}
	if pattern != "" {
		slices.SortStableFunc(rows, func(a, b row) int {
			return cmp.Compare(b.match.Score, a.match.Score)
		})
	}
	model.rows = rows
	model.cursor = 0
	model.scrollOffset = 0
	model.syncDetail()
}

func ticketText(ticket schema.Ticket) string {
	return ticket.StudentName + " " + ticket.Issue
}

func (model *Model) moveCursor(delta int) {
	if len(model.rows) == 0 {
		return
	}
	model.cursor = min(max(model.cursor+delta, 0), len(model.rows)-1)
	model.ensureCursorVisible()
	model.syncDetail()
}

func (model *Model) ensureCursorVisible() {
	visible := model.listHeight()
	maxOffset := max(len(model.rows)-visible, 0)
	model.scrollOffset = min(model.scrollOffset, maxOffset)
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+visible {
		model.scrollOffset = model.cursor - visible + 1
	}
}

func (model Model) listHeight() int {
	return max(model.height-chromeLines, 1)
}

func (model Model) listWidth() int {
	return max(model.width*2/5, 24)
}

func (model Model) detailWidth() int {
	// One column each for the scrollbar and the divider.
	return max(model.width-model.listWidth()-2, 1)
}

func (model *Model) layout() {
	model.detail.Width = model.detailWidth()
	model.detail.Height = model.listHeight()
	model.ensureCursorVisible()
	model.syncDetail()
}

// syncDetail shows the selected record in the detail pane.
func (model *Model) syncDetail() {
	content := model.detailContent()
	if model.detail.Width > 0 {
		content = model.renderer.NewStyle().Width(model.detail.Width).Render(content)
	}
	model.detail.SetContent(content)
	model.detail.GotoTop()
}

func (model Model) detailContent() string {
	if student, ok := model.SelectedStudent(); ok {
		return model.studentDetail(student)
	}
	if ticket, ok := model.SelectedTicket(); ok {
		return ticketDetail(ticket)
	}
	if model.filter.Input != "" {
		return fmt.Sprintf("No %s match %q.", model.tab, model.filter.Input)
	}
	return fmt.Sprintf("No %s recorded.", model.tab)
}

func (model Model) studentDetail(student schema.Student) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "ID: %d\n", student.ID)
	for _, field := range schema.Fields {
		fmt.Fprintf(&builder, "%s: %s\n", field.Label, field.Get(&student))
	}
	fmt.Fprintf(&builder, "ACTIVE: %s\n", student.ActiveLabel())

	var tickets []schema.Ticket
	for _, ticket := range model.tickets {
		if ticket.StudentID == student.ID {
			tickets = append(tickets, ticket)
		}
	}
	fmt.Fprintf(&builder, "\nTICKETS: %d\n", len(tickets))
	for _, ticket := range tickets {
		fmt.Fprintf(&builder, "#%d %s %s\n", ticket.ID, ticket.Status, ticket.Issue)
	}
	return strings.TrimSuffix(builder.String(), "\n")
}

func ticketDetail(ticket schema.Ticket) string {
	return fmt.Sprintf("TICKET ID: %d\nSTUDENT ID: %d\nSTUDENT: %s\nSTATUS: %s\n\nISSUE:\n%s",
		ticket.ID, ticket.StudentID, ticket.StudentName, ticket.Status, ticket.Issue)
}
