// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/hostel/lib/schema"
)

// Default capacities.
const (
	DefaultMaxStudents = 200
	DefaultMaxTickets  = 500
)

// Limits bounds the size of each collection.
type Limits struct {
	MaxStudents int
	MaxTickets  int
}

// DefaultLimits returns the stock capacities.
func DefaultLimits() Limits {
	return Limits{MaxStudents: DefaultMaxStudents, MaxTickets: DefaultMaxTickets}
}

// Validate rejects non-positive limits.
func (l Limits) Validate() error {
	var errs []error
	if l.MaxStudents <= 0 {
		errs = append(errs, fmt.Errorf("max students must be positive, got %d", l.MaxStudents))
	}
	if l.MaxTickets <= 0 {
		errs = append(errs, fmt.Errorf("max tickets must be positive, got %d", l.MaxTickets))
	}
	return errors.Join(errs...)
}

// Registry owns both collections for one process. The zero value is
// not usable; construct with [New].
type Registry struct {
	Students *Students
	Tickets  *Tickets

	limits Limits
}

// New returns an empty registry with the given limits.
func New(limits Limits) *Registry {
	return &Registry{
		Students: NewStudents(limits.MaxStudents),
		Tickets:  NewTickets(limits.MaxTickets),
		limits:   limits,
	}
}

// Limits returns the capacities the registry was built with.
func (r *Registry) Limits() Limits { return r.limits }

// RaiseTicket raises a ticket against a student of this registry.
func (r *Registry) RaiseTicket(studentID int32, issue string) (schema.Ticket, error) {
	return r.Tickets.Raise(r.Students, studentID, issue)
}

// Dataset returns a copy of both collections.
func (r *Registry) Dataset() schema.Dataset {
	return schema.Dataset{
		Students: r.Students.Records(),
		Tickets:  r.Tickets.Records(),
	}
}

// Replace swaps in a complete dataset after checking it against every
// collection invariant: capacities, unique IDs, field widths and
// ticket statuses. On error the registry is unchanged. The collections
// are updated in place, so references to r.Students and r.Tickets
// stay valid. Student active
// flags are kept as given. The ticket counter resumes at the highest
// ticket ID plus one.
func (r *Registry) Replace(dataset schema.Dataset) error {
	if len(dataset.Students) > r.limits.MaxStudents {
		return fmt.Errorf("replacing students: %d records, limit %d: %w",
			len(dataset.Students), r.limits.MaxStudents, ErrCapacityExceeded)
	}
	if len(dataset.Tickets) > r.limits.MaxTickets {
		return fmt.Errorf("replacing tickets: %d records, limit %d: %w",
			len(dataset.Tickets), r.limits.MaxTickets, ErrCapacityExceeded)
	}

	seenStudents := make(map[int32]struct{}, len(dataset.Students))
	for index := range dataset.Students {
		student := &dataset.Students[index]
		if _, duplicate := seenStudents[student.ID]; duplicate {
			return fmt.Errorf("replacing students: student %d: %w", student.ID, ErrDuplicateID)
		}
		seenStudents[student.ID] = struct{}{}
		if err := student.Validate(); err != nil {
			return fmt.Errorf("replacing students: %w", err)
		}
	}

	seenTickets := make(map[int32]struct{}, len(dataset.Tickets))
	var maxTicketID int32
	for index := range dataset.Tickets {
		ticket := &dataset.Tickets[index]
		if _, duplicate := seenTickets[ticket.ID]; duplicate {
			return fmt.Errorf("replacing tickets: ticket %d: %w", ticket.ID, ErrDuplicateID)
		}
		seenTickets[ticket.ID] = struct{}{}
		if err := ticket.Validate(); err != nil {
			return fmt.Errorf("replacing tickets: %w", err)
		}
		if ticket.ID > MaxTicketID {
			return fmt.Errorf("replacing tickets: ticket %d is past the last issuable id %d: %w",
				ticket.ID, MaxTicketID, ErrCapacityExceeded)
		}
		maxTicketID = max(maxTicketID, ticket.ID)
	}

	r.Students.records = append([]schema.Student(nil), dataset.Students...)
	r.Tickets.records = append([]schema.Ticket(nil), dataset.Tickets...)
	r.Tickets.nextID = maxTicketID + 1
	return nil
}
