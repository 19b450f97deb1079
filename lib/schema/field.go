// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"strings"
)

// Category groups student fields for the two-level update selection.
// Values are 1-based to match the shell's menu numbering; the zero
// value marks a field that cannot be updated after registration.
type Category int

const (
	CategoryNone Category = iota
	CategoryBasic
	CategoryContact
	CategoryAcademic
	CategoryHostel
	CategoryPersonal
	CategoryFee
)

// Categories lists the updatable categories in menu order.
var Categories = []Category{
	CategoryBasic,
	CategoryContact,
	CategoryAcademic,
	CategoryHostel,
	CategoryPersonal,
	CategoryFee,
}

// String returns the lowercase category name.
func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryBasic:
		return "basic"
	case CategoryContact:
		return "contact"
	case CategoryAcademic:
		return "academic"
	case CategoryHostel:
		return "hostel"
	case CategoryPersonal:
		return "personal"
	case CategoryFee:
		return "fee"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// ParseCategory accepts a category name (case-insensitive).
func ParseCategory(name string) (Category, error) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for _, category := range Categories {
		if category.String() == lowered {
			return category, nil
		}
	}
	return CategoryNone, fmt.Errorf("unknown field category %q", name)
}

// Field describes one fixed-width student text attribute.
type Field struct {
	// Name is the snake_case identifier used in flags, import files
	// and JSON output.
	Name string

	// Label is the uppercase caption used in reports and the shell.
	Label string

	// Width is the on-disk size in bytes, terminating NUL included.
	Width int

	// Category is the update group, or CategoryNone when the field
	// is fixed at registration.
	Category Category

	get func(*Student) string
	set func(*Student, string)
}

// Get returns the field's value on student.
func (f Field) Get(student *Student) string { return f.get(student) }

// Set overwrites the field's value on student without any check.
// Callers validate with [Field.Check] first.
func (f Field) Set(student *Student, value string) { f.set(student, value) }

// Updatable reports whether the field belongs to an update category.
func (f Field) Updatable() bool { return f.Category != CategoryNone }

// Check verifies that value fits the field.
func (f Field) Check(value string) error {
	if !FitsWidth(value, f.Width) {
		return fmt.Errorf("%s holds at most %d bytes: %w", f.Name, f.Width-1, ErrFieldTooLong)
	}
	return nil
}

// Fields lists every student text field in on-disk record order.
var Fields = []Field{
	{"name", "NAME", 50, CategoryBasic,
		func(s *Student) string { return s.Name }, func(s *Student, v string) { s.Name = v }},
	{"parent_name", "FATHER", 50, CategoryBasic,
		func(s *Student) string { return s.ParentName }, func(s *Student, v string) { s.ParentName = v }},
	{"mother_name", "MOTHER", 50, CategoryBasic,
		func(s *Student) string { return s.MotherName }, func(s *Student, v string) { s.MotherName = v }},
	{"phone", "PHONE", 20, CategoryContact,
		func(s *Student) string { return s.Phone }, func(s *Student, v string) { s.Phone = v }},
	{"email", "EMAIL", 50, CategoryContact,
		func(s *Student) string { return s.Email }, func(s *Student, v string) { s.Email = v }},
	{"room_no", "ROOM", 10, CategoryHostel,
		func(s *Student) string { return s.RoomNo }, func(s *Student, v string) { s.RoomNo = v }},
	{"blood_group", "BLOOD", 5, CategoryPersonal,
		func(s *Student) string { return s.BloodGroup }, func(s *Student, v string) { s.BloodGroup = v }},
	{"year", "YEAR", 10, CategoryAcademic,
		func(s *Student) string { return s.Year }, func(s *Student, v string) { s.Year = v }},
	{"dept", "DEPT", 30, CategoryAcademic,
		func(s *Student) string { return s.Dept }, func(s *Student, v string) { s.Dept = v }},
	{"campus", "CAMPUS", 5, CategoryAcademic,
		func(s *Student) string { return s.Campus }, func(s *Student, v string) { s.Campus = v }},
	{"district", "DISTRICT", 30, CategoryNone,
		func(s *Student) string { return s.District }, func(s *Student, v string) { s.District = v }},
	{"state", "STATE", 30, CategoryNone,
		func(s *Student) string { return s.State }, func(s *Student, v string) { s.State = v }},
	{"pincode", "PINCODE", 10, CategoryNone,
		func(s *Student) string { return s.Pincode }, func(s *Student, v string) { s.Pincode = v }},
	{"address", "ADDRESS", 100, CategoryContact,
		func(s *Student) string { return s.Address }, func(s *Student, v string) { s.Address = v }},
	{"guardian_name", "GUARDIAN", 50, CategoryContact,
		func(s *Student) string { return s.GuardianName }, func(s *Student, v string) { s.GuardianName = v }},
	{"guardian_phone", "GUARDIAN PHONE", 20, CategoryContact,
		func(s *Student) string { return s.GuardianPhone }, func(s *Student, v string) { s.GuardianPhone = v }},
	{"dob", "DOB", 15, CategoryPersonal,
		func(s *Student) string { return s.DOB }, func(s *Student, v string) { s.DOB = v }},
	{"gender", "GENDER", 10, CategoryPersonal,
		func(s *Student) string { return s.Gender }, func(s *Student, v string) { s.Gender = v }},
	{"block", "BLOCK", 10, CategoryHostel,
		func(s *Student) string { return s.Block }, func(s *Student, v string) { s.Block = v }},
	{"admission_year", "ADMISSION YEAR", 10, CategoryAcademic,
		func(s *Student) string { return s.AdmissionYear }, func(s *Student, v string) { s.AdmissionYear = v }},
	{"fee_status", "FEE", 20, CategoryFee,
		func(s *Student) string { return s.FeeStatus }, func(s *Student, v string) { s.FeeStatus = v }},
}

// FieldByName resolves a field by its snake_case name. Hyphens are
// accepted in place of underscores.
func FieldByName(name string) (Field, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for _, field := range Fields {
		if field.Name == normalized {
			return field, true
		}
	}
	return Field{}, false
}

// CategoryFields returns the fields of category in menu order.
func CategoryFields(category Category) []Field {
	if category == CategoryNone {
		return nil
	}
	var fields []Field
	for _, field := range Fields {
		if field.Category == category {
			fields = append(fields, field)
		}
	}
	return fields
}

// Select resolves a 1-based (category, option) pair. The second
// result is false when either number is out of range; callers treat
// that as a no-op rather than an error.
func Select(category Category, option int) (Field, bool) {
	fields := CategoryFields(category)
	if option < 1 || option > len(fields) {
		return Field{}, false
	}
	return fields[option-1], true
}
