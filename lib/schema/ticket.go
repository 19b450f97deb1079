// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"strings"
)

// Byte widths of the ticket text fields, terminating NUL included.
const (
	TicketStudentNameWidth = 50
	TicketIssueWidth       = 200
	TicketStatusWidth      = 20
)

// TicketStatus is the lifecycle state of a maintenance ticket. The
// string values are the literal text stored in the record file.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "OPEN"
	StatusInProgress TicketStatus = "IN_PROGRESS"
	StatusResolved   TicketStatus = "RESOLVED"
)

// TicketStatuses lists every status in lifecycle order. The shell's
// status menu numbers them from 1.
var TicketStatuses = []TicketStatus{StatusOpen, StatusInProgress, StatusResolved}

// Valid reports whether s is one of the three known statuses.
func (s TicketStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// ParseTicketStatus accepts a status in any case, with hyphens, spaces
// or underscores as separators ("in-progress", "In Progress").
func ParseTicketStatus(text string) (TicketStatus, error) {
	normalized := strings.ToUpper(strings.TrimSpace(text))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	status := TicketStatus(normalized)
	if !status.Valid() {
		return "", fmt.Errorf("unknown ticket status %q (want open, in_progress or resolved)", text)
	}
	return status, nil
}

// Ticket is a maintenance issue raised against a student. StudentName
// is copied from the student when the ticket is raised and is not
// kept in sync with later renames.
type Ticket struct {
	ID          int32        `json:"ticket_id"`
	StudentID   int32        `json:"student_id"`
	StudentName string       `json:"student_name"`
	Issue       string       `json:"issue"`
	Status      TicketStatus `json:"status"`
}

// Validate checks the text widths and the status value.
func (t *Ticket) Validate() error {
	if !FitsWidth(t.StudentName, TicketStudentNameWidth) {
		return fmt.Errorf("ticket %d: student_name holds at most %d bytes: %w",
			t.ID, TicketStudentNameWidth-1, ErrFieldTooLong)
	}
	if !FitsWidth(t.Issue, TicketIssueWidth) {
		return fmt.Errorf("ticket %d: issue holds at most %d bytes: %w",
			t.ID, TicketIssueWidth-1, ErrFieldTooLong)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("ticket %d: unknown status %q", t.ID, t.Status)
	}
	return nil
}

// Dataset is the complete persisted state: both collections in
// collection order. It is the unit the record files, snapshots and
// exports move around.
type Dataset struct {
	Students []Student `json:"students"`
	Tickets  []Ticket  `json:"tickets"`
}
