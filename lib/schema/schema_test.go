// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

func TestFieldTableMatchesStructTags(t *testing.T) {
	studentType := reflect.TypeOf(Student{})
	tagged := make(map[string]int)
	for i := range studentType.NumField() {
		field := studentType.Field(i)
		validateTag := field.Tag.Get("validate")
		if !strings.HasPrefix(validateTag, "width=") {
			continue
		}
		width, err := strconv.Atoi(strings.TrimPrefix(validateTag, "width="))
		if err != nil {
			t.Fatalf("field %s: bad width tag %q", field.Name, validateTag)
		}
		tagged[field.Tag.Get("json")] = width
	}

	if len(tagged) != len(Fields) {
		t.Fatalf("struct has %d width-tagged fields, table has %d", len(tagged), len(Fields))
	}
	for _, field := range Fields {
		width, ok := tagged[field.Name]
		if !ok {
			t.Errorf("table field %q has no struct counterpart", field.Name)
			continue
		}
		if width != field.Width {
			t.Errorf("field %q: table width %d, struct tag width %d", field.Name, field.Width, width)
		}
	}
}

func TestFieldAccessorsTouchOnlyTheirField(t *testing.T) {
	for _, field := range Fields {
		var student Student
		field.Set(&student, "x")
		if got := field.Get(&student); got != "x" {
			t.Errorf("field %q: Get after Set = %q, want %q", field.Name, got, "x")
		}
		for _, other := range Fields {
			if other.Name == field.Name {
				continue
			}
			if got := other.Get(&student); got != "" {
				t.Errorf("setting %q changed %q to %q", field.Name, other.Name, got)
			}
		}
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		category Category
		option   int
		want     string
		ok       bool
	}{
		{CategoryBasic, 1, "name", true},
		{CategoryBasic, 3, "mother_name", true},
		{CategoryContact, 3, "address", true},
		{CategoryContact, 5, "guardian_phone", true},
		{CategoryAcademic, 3, "campus", true},
		{CategoryAcademic, 4, "admission_year", true},
		{CategoryHostel, 2, "block", true},
		{CategoryPersonal, 1, "blood_group", true},
		{CategoryPersonal, 3, "gender", true},
		{CategoryFee, 1, "fee_status", true},
		{CategoryBasic, 0, "", false},
		{CategoryBasic, 4, "", false},
		{CategoryFee, 2, "", false},
		{CategoryNone, 1, "", false},
		{Category(7), 1, "", false},
		{Category(-1), 1, "", false},
	}
	for _, test := range tests {
		field, ok := Select(test.category, test.option)
		if ok != test.ok {
			t.Errorf("Select(%v, %d) ok = %v, want %v", test.category, test.option, ok, test.ok)
			continue
		}
		if ok && field.Name != test.want {
			t.Errorf("Select(%v, %d) = %q, want %q", test.category, test.option, field.Name, test.want)
		}
	}
}

func TestAddressFieldsAreNotUpdatable(t *testing.T) {
	for _, name := range []string{"district", "state", "pincode"} {
		field, ok := FieldByName(name)
		if !ok {
			t.Fatalf("FieldByName(%q) not found", name)
		}
		if field.Updatable() {
			t.Errorf("field %q is updatable, want fixed at registration", name)
		}
	}
}

func TestFieldByName(t *testing.T) {
	field, ok := FieldByName("Guardian-Phone")
	if !ok || field.Name != "guardian_phone" {
		t.Fatalf("FieldByName(Guardian-Phone) = %q, %v; want guardian_phone", field.Name, ok)
	}
	if _, ok := FieldByName("nickname"); ok {
		t.Error("FieldByName(nickname) succeeded, want not found")
	}
}

func TestParseCategory(t *testing.T) {
	category, err := ParseCategory(" Hostel ")
	if err != nil {
		t.Fatalf("ParseCategory: %v", err)
	}
	if category != CategoryHostel {
		t.Errorf("ParseCategory(Hostel) = %v, want hostel", category)
	}
	if _, err := ParseCategory("finance"); err == nil {
		t.Error("ParseCategory(finance) succeeded, want error")
	}
}

func TestStudentValidate(t *testing.T) {
	student := Student{ID: 7, Name: strings.Repeat("a", 49), BloodGroup: "AB+"}
	if err := student.Validate(); err != nil {
		t.Fatalf("Validate at width limit: %v", err)
	}

	student.Name = strings.Repeat("a", 50)
	err := student.Validate()
	if !errors.Is(err, ErrFieldTooLong) {
		t.Fatalf("Validate with 50-byte name: got %v, want ErrFieldTooLong", err)
	}
	if !strings.Contains(err.Error(), "name holds at most 49 bytes") {
		t.Errorf("error %q does not name the field and limit", err)
	}

	student.Name = "ok"
	student.Campus = "A\x00B"
	if err := student.Validate(); !errors.Is(err, ErrFieldTooLong) {
		t.Errorf("Validate with embedded NUL: got %v, want ErrFieldTooLong", err)
	}
}

func TestFieldCheck(t *testing.T) {
	field, _ := FieldByName("blood_group")
	if err := field.Check("O-"); err != nil {
		t.Errorf("Check(O-): %v", err)
	}
	if err := field.Check("ABCDE"); !errors.Is(err, ErrFieldTooLong) {
		t.Errorf("Check(ABCDE): got %v, want ErrFieldTooLong", err)
	}
}

func TestParseTicketStatus(t *testing.T) {
	tests := []struct {
		input string
		want  TicketStatus
	}{
		{"open", StatusOpen},
		{"OPEN", StatusOpen},
		{"in-progress", StatusInProgress},
		{"In Progress", StatusInProgress},
		{"IN_PROGRESS", StatusInProgress},
		{" resolved ", StatusResolved},
	}
	for _, test := range tests {
		got, err := ParseTicketStatus(test.input)
		if err != nil {
			t.Errorf("ParseTicketStatus(%q): %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseTicketStatus(%q) = %q, want %q", test.input, got, test.want)
		}
	}
	if _, err := ParseTicketStatus("closed"); err == nil {
		t.Error("ParseTicketStatus(closed) succeeded, want error")
	}
}

func TestTicketValidate(t *testing.T) {
	ticket := Ticket{ID: 1, StudentID: 101, StudentName: "ALI", Issue: "LEAK", Status: StatusOpen}
	if err := ticket.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	ticket.Issue = strings.Repeat("x", TicketIssueWidth)
	if err := ticket.Validate(); !errors.Is(err, ErrFieldTooLong) {
		t.Errorf("Validate with long issue: got %v, want ErrFieldTooLong", err)
	}

	ticket.Issue = "LEAK"
	ticket.Status = "CLOSED"
	if err := ticket.Validate(); err == nil {
		t.Error("Validate with unknown status succeeded, want error")
	}
}
