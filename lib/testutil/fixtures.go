// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"strings"

	"github.com/bureau-foundation/hostel/lib/schema"
)

// Student returns an active student with every field populated. Values
// derive from name so different students are distinguishable.
func Student(id int32, name string) schema.Student {
	return schema.Student{
		ID:            id,
		Name:          name,
		ParentName:    "FATHER OF " + name,
		MotherName:    "MOTHER OF " + name,
		Phone:         "9876543210",
		Email:         strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.edu",
		RoomNo:        "A-101",
		BloodGroup:    "O+",
		Year:          "II",
		Dept:          "CSE",
		Campus:        "A",
		District:      "PUNE",
		State:         "MH",
		Pincode:       "411001",
		Address:       "12 HILL ROAD",
		GuardianName:  "GUARDIAN OF " + name,
		GuardianPhone: "9123456780",
		DOB:           "06/05/2004",
		Gender:        "F",
		Block:         "B1",
		AdmissionYear: "2023",
		FeeStatus:     "PAID",
		Active:        true,
	}
}

// Ticket returns an OPEN ticket for student.
func Ticket(id int32, student schema.Student, issue string) schema.Ticket {
	return schema.Ticket{
		ID:          id,
		StudentID:   student.ID,
		StudentName: student.Name,
		Issue:       issue,
		Status:      schema.StatusOpen,
	}
}
