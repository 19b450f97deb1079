// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/bureau-foundation/hostel/lib/schema"
)

// MaxTicketID is the highest ID Raise issues. math.MaxInt32 is kept
// free so the counter never wraps.
const MaxTicketID = math.MaxInt32 - 1

// StudentLookup is the view of the student collection that ticket
// creation needs. *Students satisfies it.
type StudentLookup interface {
	Get(id int32) (schema.Student, bool)
}

// Tickets is the ordered ticket collection. Tickets are never removed,
// so creation order is collection order.
type Tickets struct {
	records  []schema.Ticket
	capacity int

	// nextID is one past the highest ticket ID ever held.
	nextID int32
}

// NewTickets returns an empty collection that accepts at most
// capacity records.
func NewTickets(capacity int) *Tickets {
	return &Tickets{capacity: capacity, nextID: 1}
}

// Len returns the number of tickets.
func (r *Tickets) Len() int { return len(r.records) }

// Capacity returns the configured maximum.
func (r *Tickets) Capacity() int { return r.capacity }

// NextID returns the ID the next raised ticket will receive.
func (r *Tickets) NextID() int32 { return r.nextID }

// Raise creates an OPEN ticket for studentID. The student must exist
// and be active; its current name is copied into the ticket.
func (r *Tickets) Raise(students StudentLookup, studentID int32, issue string) (schema.Ticket, error) {
	if len(r.records) >= r.capacity {
		return schema.Ticket{}, fmt.Errorf("raising ticket: %d of %d slots used: %w",
			len(r.records), r.capacity, ErrCapacityExceeded)
	}
	if r.nextID > MaxTicketID {
		return schema.Ticket{}, fmt.Errorf("raising ticket: ticket ids exhausted at %d: %w",
			MaxTicketID, ErrCapacityExceeded)
	}
	student, ok := students.Get(studentID)
	if !ok {
		return schema.Ticket{}, fmt.Errorf("raising ticket for student %d: %w", studentID, ErrStudentNotFound)
	}
	if !student.Active {
		return schema.Ticket{}, fmt.Errorf("raising ticket for student %d: %w", studentID, ErrStudentInactive)
	}

	ticket := schema.Ticket{
		ID:          r.nextID,
		StudentID:   studentID,
		StudentName: student.Name,
		Issue:       issue,
		Status:      schema.StatusOpen,
	}
	if err := ticket.Validate(); err != nil {
		return schema.Ticket{}, err
	}

	r.records = append(r.records, ticket)
	r.nextID++
	return ticket, nil
}

// Get returns the ticket with id.
func (r *Tickets) Get(id int32) (schema.Ticket, bool) {
	index := r.index(id)
	if index < 0 {
		return schema.Ticket{}, false
	}
	return r.records[index], true
}

// SetStatus moves the ticket to status. Any transition is allowed,
// including back to OPEN from RESOLVED.
func (r *Tickets) SetStatus(id int32, status schema.TicketStatus) error {
	if !status.Valid() {
		return fmt.Errorf("setting status of ticket %d: unknown status %q", id, status)
	}
	index := r.index(id)
	if index < 0 {
		return fmt.Errorf("setting status of ticket %d: %w", id, ErrTicketNotFound)
	}
	r.records[index].Status = status
	return nil
}

// All yields every ticket in creation order.
func (r *Tickets) All() iter.Seq[schema.Ticket] {
	return r.filter(func(*schema.Ticket) bool { return true })
}

// Open yields the tickets whose status is OPEN. IN_PROGRESS tickets
// are not included.
func (r *Tickets) Open() iter.Seq[schema.Ticket] {
	return r.filter(func(ticket *schema.Ticket) bool { return ticket.Status == schema.StatusOpen })
}

// ForStudent yields the tickets raised against studentID.
func (r *Tickets) ForStudent(studentID int32) iter.Seq[schema.Ticket] {
	return r.filter(func(ticket *schema.Ticket) bool { return ticket.StudentID == studentID })
}

// Records returns a copy of the collection in order.
func (r *Tickets) Records() []schema.Ticket {
	return slices.Clone(r.records)
}

func (r *Tickets) filter(match func(*schema.Ticket) bool) iter.Seq[schema.Ticket] {
	return func(yield func(schema.Ticket) bool) {
		for index := range r.records {
			if !match(&r.records[index]) {
				continue
			}
			if !yield(r.records[index]) {
				return
			}
		}
	}
}

func (r *Tickets) index(id int32) int {
	for index := range r.records {
		if r.records[index].ID == id {
			return index
		}
	}
	return -1
}
