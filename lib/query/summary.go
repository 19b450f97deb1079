// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"iter"
	"slices"

	"github.com/bureau-foundation/hostel/lib/schema"
)

// StudentSource yields every student record in collection order.
type StudentSource interface {
	All() iter.Seq[schema.Student]
}

// TicketSource yields every ticket in creation order.
type TicketSource interface {
	All() iter.Seq[schema.Ticket]
}

// Summary is the dashboard snapshot. Campus counts include inactive
// students, as does TotalStudents.
type Summary struct {
	TotalStudents  int            `json:"total_students"`
	ActiveStudents int            `json:"active_students"`
	ByCampus       map[string]int `json:"by_campus"`

	TotalTickets      int `json:"total_tickets"`
	OpenTickets       int `json:"open_tickets"`
	InProgressTickets int `json:"in_progress_tickets"`
	ResolvedTickets   int `json:"resolved_tickets"`
}

// CampusCount is one row of the campus histogram.
type CampusCount struct {
	Campus string `json:"campus"`
	Count  int    `json:"count"`
}

// Dashboard computes the summary in one pass over each collection.
func Dashboard(students StudentSource, tickets TicketSource) Summary {
	summary := Summary{ByCampus: make(map[string]int)}
	for student := range students.All() {
		summary.TotalStudents++
		if student.Active {
			summary.ActiveStudents++
		}
		summary.ByCampus[student.Campus]++
	}
	for ticket := range tickets.All() {
		summary.TotalTickets++
		switch ticket.Status {
		case schema.StatusOpen:
			summary.OpenTickets++
		case schema.StatusInProgress:
			summary.InProgressTickets++
		case schema.StatusResolved:
			summary.ResolvedTickets++
		}
	}
	return summary
}

// Campus returns the number of students with the given campus code.
func (s Summary) Campus(code string) int {
	return s.ByCampus[code]
}

// CampusRows orders the histogram for display: the pinned codes first,
// in the given order and even when zero, then every other observed
// code sorted bytewise. Students with an empty campus code are listed
// under the empty string last.
func (s Summary) CampusRows(pinned []string) []CampusCount {
	rows := make([]CampusCount, 0, len(pinned)+len(s.ByCampus))
	seen := make(map[string]bool, len(pinned))
	for _, code := range pinned {
		if seen[code] {
			continue
		}
		seen[code] = true
		rows = append(rows, CampusCount{Campus: code, Count: s.ByCampus[code]})
	}

	var others []string
	hasEmpty := false
	for code := range s.ByCampus {
		switch {
		case seen[code]:
		case code == "":
			hasEmpty = true
		default:
			others = append(others, code)
		}
	}
	slices.Sort(others)
	for _, code := range others {
		rows = append(rows, CampusCount{Campus: code, Count: s.ByCampus[code]})
	}
	if hasEmpty {
		rows = append(rows, CampusCount{Campus: "", Count: s.ByCampus[""]})
	}
	return rows
}
