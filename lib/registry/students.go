// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/bureau-foundation/hostel/lib/schema"
)

// Students is the ordered student collection. Order is registration
// order until one of the in-place sorts reorders it.
type Students struct {
	records  []schema.Student
	capacity int
}

// NewStudents returns an empty collection that accepts at most
// capacity records.
func NewStudents(capacity int) *Students {
	return &Students{capacity: capacity}
}

// Len returns the number of records, active or not.
func (r *Students) Len() int { return len(r.records) }

// Capacity returns the configured maximum.
func (r *Students) Capacity() int { return r.capacity }

// Register appends student as a new active record. The ID must be
// unused by every existing record, active or inactive.
func (r *Students) Register(student schema.Student) (schema.Student, error) {
	if r.index(student.ID) >= 0 {
		return schema.Student{}, fmt.Errorf("registering student %d: %w", student.ID, ErrDuplicateID)
	}
	if len(r.records) >= r.capacity {
		return schema.Student{}, fmt.Errorf("registering student %d: %d of %d slots used: %w",
			student.ID, len(r.records), r.capacity, ErrCapacityExceeded)
	}
	if err := student.Validate(); err != nil {
		return schema.Student{}, err
	}

	student.Active = true
	r.records = append(r.records, student)
	return student, nil
}

// Get returns the student with id.
func (r *Students) Get(id int32) (schema.Student, bool) {
	index := r.index(id)
	if index < 0 {
		return schema.Student{}, false
	}
	return r.records[index], true
}

// SearchName yields students whose name contains text (case-sensitive)
// in collection order. The sequence can be ranged over repeatedly.
func (r *Students) SearchName(text string) iter.Seq[schema.Student] {
	return r.filter(func(student *schema.Student) bool {
		return strings.Contains(student.Name, text)
	})
}

// FilterCampus yields students whose campus code equals code, active
// or not.
func (r *Students) FilterCampus(code string) iter.Seq[schema.Student] {
	return r.filter(func(student *schema.Student) bool {
		return student.Campus == code
	})
}

// All yields every student in collection order.
func (r *Students) All() iter.Seq[schema.Student] {
	return r.filter(func(*schema.Student) bool { return true })
}

// Active yields the active students in collection order.
func (r *Students) Active() iter.Seq[schema.Student] {
	return r.filter(func(student *schema.Student) bool { return student.Active })
}

// UpdateField overwrites one field of the student with id. No other
// field changes.
func (r *Students) UpdateField(id int32, field schema.Field, value string) error {
	index := r.index(id)
	if index < 0 {
		return fmt.Errorf("updating student %d: %w", id, ErrStudentNotFound)
	}
	if !field.Updatable() {
		return fmt.Errorf("updating student %d: %s: %w", id, field.Name, ErrFieldNotUpdatable)
	}
	if err := field.Check(value); err != nil {
		return fmt.Errorf("updating student %d: %w", id, err)
	}
	field.Set(&r.records[index], value)
	return nil
}

// UpdateSelected applies a (category, option) selection from the
// shell menu. An out-of-range selection leaves the record untouched
// and returns applied=false with a nil error. The student is looked up
// before the selection is resolved, so an unknown ID always reports
// ErrStudentNotFound.
func (r *Students) UpdateSelected(id int32, category schema.Category, option int, value string) (field schema.Field, applied bool, err error) {
	if r.index(id) < 0 {
		return schema.Field{}, false, fmt.Errorf("updating student %d: %w", id, ErrStudentNotFound)
	}
	field, ok := schema.Select(category, option)
	if !ok {
		return schema.Field{}, false, nil
	}
	if err := r.UpdateField(id, field, value); err != nil {
		return field, false, err
	}
	return field, true, nil
}

// SoftDelete marks the student inactive. Deleting an inactive student
// succeeds and changes nothing.
func (r *Students) SoftDelete(id int32) error {
	index := r.index(id)
	if index < 0 {
		return fmt.Errorf("deleting student %d: %w", id, ErrStudentNotFound)
	}
	r.records[index].Active = false
	return nil
}

// SortByName reorders the collection by name, comparing bytes. Equal
// names are ordered by ID, so the result depends only on the records
// and not on their order before the sort. Returns false, leaving the
// collection untouched, when there are fewer than two records.
func (r *Students) SortByName() bool {
	return r.sortBy(func(student *schema.Student) string { return student.Name })
}

// SortByRoom reorders the collection by room number with the same
// rules as SortByName.
func (r *Students) SortByRoom() bool {
	return r.sortBy(func(student *schema.Student) string { return student.RoomNo })
}

// Records returns a copy of the collection in order.
func (r *Students) Records() []schema.Student {
	return slices.Clone(r.records)
}

func (r *Students) sortBy(key func(*schema.Student) string) bool {
	if len(r.records) < 2 {
		return false
	}
	slices.SortFunc(r.records, func(a, b schema.Student) int {
		return cmp.Or(strings.Compare(key(&a), key(&b)), cmp.Compare(a.ID, b.ID))
	})
	return true
}

func (r *Students) filter(match func(*schema.Student) bool) iter.Seq[schema.Student] {
	return func(yield func(schema.Student) bool) {
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

func (r *Students) index(id int32) int {
	for index := range r.records {
		if r.records[index].ID == id {
			return index
		}
	}
	return -1
}
