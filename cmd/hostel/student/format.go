// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package student

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hostel/lib/schema"
)

// fieldFlags binds one string flag per student field, named after the
// field with hyphens (--room-no, --guardian-phone).
type fieldFlags struct {
	values map[string]*string
}

func (f *fieldFlags) AddFlags(flagSet *pflag.FlagSet) {
	f.values = make(map[string]*string, len(schema.Fields))
	for _, field := range schema.Fields {
		if field.Name == "name" {
			continue
		}
		f.values[field.Name] = flagSet.String(flagName(field.Name), "",
			fmt.Sprintf("%s (at most %d bytes)", strings.ToLower(field.Label), field.Width-1))
	}
}

// apply copies the flag values onto student.
func (f *fieldFlags) apply(student *schema.Student) {
	for _, field := range schema.Fields {
		if value, ok := f.values[field.Name]; ok {
			field.Set(student, *value)
		}
	}
}

func flagName(fieldName string) string {
	return strings.ReplaceAll(fieldName, "_", "-")
}

// writeStudentTable writes one row per student with the roster columns.
func writeStudentTable(w io.Writer, students []schema.Student) error {
	writer := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintf(writer, "ID\tNAME\tROOM\tCAMPUS\tYEAR\tDEPT\tACTIVE\n")
	for _, student := range students {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			student.ID,
			student.Name,
			student.RoomNo,
			student.Campus,
			student.Year,
			student.Dept,
			student.ActiveLabel(),
		)
	}
	return writer.Flush()
}

// writeStudentDetail writes every field of one student.
func writeStudentDetail(w io.Writer, student schema.Student) error {
	writer := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "ID:\t%d\n", student.ID)
	for _, field := range schema.Fields {
		fmt.Fprintf(writer, "%s:\t%s\n", field.Label, field.Get(&student))
	}
	fmt.Fprintf(writer, "ACTIVE:\t%s\n", student.ActiveLabel())
	return writer.Flush()
}
