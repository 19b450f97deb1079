// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrFieldTooLong is returned when a value does not fit its fixed-width
// field. Widths count bytes and include the terminating NUL of the
// record file format, so a width-50 field holds at most 49 bytes.
var ErrFieldTooLong = errors.New("value exceeds field width")

// Student is one enrolled resident. ID is assigned by the operator and
// never changes. Active is true from registration until a soft delete
// and never returns to true.
type Student struct {
	ID int32 `json:"id"`

	Name       string `json:"name"        validate:"width=50"`
	ParentName string `json:"parent_name" validate:"width=50"`
	MotherName string `json:"mother_name" validate:"width=50"`
	Phone      string `json:"phone"       validate:"width=20"`
	Email      string `json:"email"       validate:"width=50"`
	RoomNo     string `json:"room_no"     validate:"width=10"`
	BloodGroup string `json:"blood_group" validate:"width=5"`
	Year       string `json:"year"        validate:"width=10"`
	Dept       string `json:"dept"        validate:"width=30"`
	Campus     string `json:"campus"      validate:"width=5"`
	District   string `json:"district"    validate:"width=30"`
	State      string `json:"state"       validate:"width=30"`
	Pincode    string `json:"pincode"     validate:"width=10"`
	Address    string `json:"address"     validate:"width=100"`

	GuardianName  string `json:"guardian_name"  validate:"width=50"`
	GuardianPhone string `json:"guardian_phone" validate:"width=20"`
	DOB           string `json:"dob"            validate:"width=15"`
	Gender        string `json:"gender"         validate:"width=10"`
	Block         string `json:"block"          validate:"width=10"`
	AdmissionYear string `json:"admission_year" validate:"width=10"`
	FeeStatus     string `json:"fee_status"     validate:"width=20"`

	Active bool `json:"is_active"`
}

// validate is shared by every Validate call. validator.Validate caches
// struct metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	instance := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so errors read the same as the
	// command-line flags and import keys.
	instance.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := instance.RegisterValidation("width", validateWidth); err != nil {
		panic("schema: registering width validation: " + err.Error())
	}
	return instance
}

// validateWidth accepts strings that fit a NUL-terminated field of
// the tagged width.
func validateWidth(level validator.FieldLevel) bool {
	width, err := strconv.Atoi(level.Param())
	if err != nil {
		return false
	}
	return FitsWidth(level.Field().String(), width)
}

// FitsWidth reports whether value can be stored in a NUL-terminated
// field of width bytes. Embedded NUL bytes never fit: the file format
// would truncate the value at the first one.
func FitsWidth(value string, width int) bool {
	return len(value) < width && !strings.ContainsRune(value, 0)
}

// Validate checks every text field against its width. The returned
// error wraps [ErrFieldTooLong] and names the first offending field.
func (s *Student) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return fmt.Errorf("student %d: %w", s.ID, err)
	}

	first := validationErrors[0]
	width, _ := strconv.Atoi(first.Param())
	return fmt.Errorf("student %d: %s holds at most %d bytes: %w",
		s.ID, first.Field(), width-1, ErrFieldTooLong)
}

// ActiveLabel renders the active flag the way reports print it.
func (s *Student) ActiveLabel() string {
	if s.Active {
		return "YES"
	}
	return "NO"
}
