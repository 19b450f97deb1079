// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/hostel/lib/schema"
)

var (
	// ErrDuplicateID is returned when a record ID is already present,
	// including IDs of soft-deleted students.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrCapacityExceeded is returned when a collection is full.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrNotFound is returned when a lookup by ID has no match.
	ErrNotFound = errors.New("not found")

	// ErrStudentNotFound and ErrTicketNotFound both satisfy
	// errors.Is(err, ErrNotFound).
	ErrStudentNotFound = fmt.Errorf("student %w", ErrNotFound)
	ErrTicketNotFound  = fmt.Errorf("ticket %w", ErrNotFound)

	// ErrStudentInactive is returned when a ticket is raised against
	// a soft-deleted student.
	ErrStudentInactive = errors.New("student is inactive")

	// ErrFieldNotUpdatable is returned when an update targets a field
	// outside every update category.
	ErrFieldNotUpdatable = errors.New("field is not updatable")

	// ErrFieldTooLong is returned when a value does not fit its field.
	ErrFieldTooLong = schema.ErrFieldTooLong
)
