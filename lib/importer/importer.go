// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package importer registers students in bulk from JSONC files.
//
// An import file is a JSON array of student objects using the
// snake_case keys of schema.Student, extended with // line comments,
// /* block comments */, and trailing commas:
//
//	[
//	  // first-year intake, campus A
//	  {"id": 101, "name": "ALI", "campus": "A", "room_no": "A-101"},
//	  {"id": 102, "name": "ZARA", "campus": "A", "room_no": "A-102"},
//	]
//
// Each record goes through the same registration path as the shell,
// in file order. A rejected record does not stop the import.
package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/hostel/lib/schema"
)

// Registrar is the registration operation an import drives.
// *registry.Students satisfies it.
type Registrar interface {
	Register(student schema.Student) (schema.Student, error)
}

// Outcome is the result for one record, in file order.
type Outcome struct {
	Index int    `json:"index"`
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Error string `json:"error,omitempty"`

	err error
}

// Err returns the registration error, or nil.
func (o Outcome) Err() error { return o.err }

// Report summarizes an import.
type Report struct {
	Outcomes   []Outcome `json:"outcomes"`
	Registered int       `json:"registered"`
	Rejected   int       `json:"rejected"`
}

// Parse strips JSONC comments and trailing commas from data, then
// decodes the student array. Unknown keys are rejected so a misspelled
// field name does not silently import as blank. The is_active key is
// accepted but ignored: registration always creates active records.
func Parse(data []byte) ([]schema.Student, error) {
	stripped := jsonc.ToJSON(data)

	decoder := json.NewDecoder(bytes.NewReader(stripped))
	decoder.DisallowUnknownFields()
	var students []schema.Student
	if err := decoder.Decode(&students); err != nil {
		return nil, fmt.Errorf("parsing student import: %w", err)
	}
	return students, nil
}

// ReadFile reads and parses a JSONC import file.
func ReadFile(path string) ([]schema.Student, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	students, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return students, nil
}

// Import registers each student in order and reports every outcome.
func Import(registrar Registrar, students []schema.Student) Report {
	report := Report{Outcomes: make([]Outcome, 0, len(students))}
	for index, student := range students {
		outcome := Outcome{Index: index, ID: student.ID, Name: student.Name}
		if _, err := registrar.Register(student); err != nil {
			outcome.err = err
			outcome.Error = err.Error()
			report.Rejected++
		} else {
			report.Registered++
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}
	return report
}
