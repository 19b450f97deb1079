// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/bureau-foundation/hostel/lib/schema"
)

// Format selects a report rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists the accepted report formats.
var Formats = []Format{FormatText, FormatMarkdown, FormatHTML}

// ParseFormat accepts a format name, plus "md" and "txt" as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown report format %q (want one of %v)", name, Formats)
}

const (
	reportTitle   = "   HOSTEL MANAGEMENT SYSTEM - STUDENT REPORT"
	reportDivider = "============================================="
	recordDivider = "---------------------------------------------"
)

// WriteReport renders students in the requested format.
func WriteReport(w io.Writer, format Format, students []schema.Student) error {
	switch format {
	case FormatText:
		return WriteText(w, students)
	case FormatMarkdown:
		return WriteMarkdown(w, students)
	case FormatHTML:
		return WriteHTML(w, students)
	}
	return fmt.Errorf("unknown report format %q", format)
}

// WriteText writes the flat "LABEL: value" report, one block per
// student in the given order, active or not.
func WriteText(w io.Writer, students []schema.Student) error {
	out := bufio.NewWriter(w)
	fmt.Fprintln(out, reportTitle)
	fmt.Fprintln(out, reportDivider)
	for index := range students {
		student := &students[index]
		fmt.Fprintf(out, "ID: %d\n", student.ID)
		fmt.Fprintf(out, "NAME: %s\n", student.Name)
		fmt.Fprintf(out, "PARENT: %s\n", student.ParentName)
		fmt.Fprintf(out, "MOTHER: %s\n", student.MotherName)
		fmt.Fprintf(out, "PHONE: %s\n", student.Phone)
		fmt.Fprintf(out, "EMAIL: %s\n", student.Email)
		fmt.Fprintf(out, "ROOM: %s\n", student.RoomNo)
		fmt.Fprintf(out, "BLOOD GROUP: %s\n", student.BloodGroup)
		fmt.Fprintf(out, "YEAR: %s\n", student.Year)
		fmt.Fprintf(out, "DEPARTMENT: %s\n", student.Dept)
		fmt.Fprintf(out, "CAMPUS: %s\n", student.Campus)
		fmt.Fprintf(out, "DISTRICT: %s\n", student.District)
		fmt.Fprintf(out, "STATE: %s\n", student.State)
		fmt.Fprintf(out, "PINCODE: %s\n", student.Pincode)
		fmt.Fprintf(out, "ADDRESS: %s\n", student.Address)
		fmt.Fprintf(out, "GUARDIAN: %s (%s)\n", student.GuardianName, student.GuardianPhone)
		fmt.Fprintf(out, "DOB: %s  GENDER: %s\n", student.DOB, student.Gender)
		fmt.Fprintf(out, "HOSTEL BLOCK: %s\n", student.Block)
		fmt.Fprintf(out, "ADMISSION YEAR: %s\n", student.AdmissionYear)
		fmt.Fprintf(out, "FEE STATUS: %s\n", student.FeeStatus)
		fmt.Fprintf(out, "ACTIVE: %s\n", student.ActiveLabel())
		fmt.Fprintln(out, recordDivider)
	}
	return out.Flush()
}

// WriteMarkdown writes one section per student with a two-column
// field table in on-disk field order.
func WriteMarkdown(w io.Writer, students []schema.Student) error {
	out := bufio.NewWriter(w)
	fmt.Fprintln(out, "# Hostel student report")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d students.\n", len(students))
	for index := range students {
		student := &students[index]
		fmt.Fprintln(out)
		fmt.Fprintf(out, "## %d %s\n\n", student.ID, markdownCell(student.Name))
		fmt.Fprintln(out, "| Field | Value |")
		fmt.Fprintln(out, "| --- | --- |")
		fmt.Fprintf(out, "| ID | %d |\n", student.ID)
		for _, field := range schema.Fields {
			fmt.Fprintf(out, "| %s | %s |\n", field.Label, markdownCell(field.Get(student)))
		}
		fmt.Fprintf(out, "| ACTIVE | %s |\n", student.ActiveLabel())
	}
	return out.Flush()
}

var (
	htmlRendererInstance goldmark.Markdown
	htmlRendererOnce     sync.Once
)

func htmlRenderer() goldmark.Markdown {
	htmlRendererOnce.Do(func() {
		htmlRendererInstance = goldmark.New(goldmark.WithExtensions(extension.Table))
	})
	return htmlRendererInstance
}

// WriteHTML renders the Markdown report to an HTML fragment. Field
// values are escaped by the renderer; raw HTML in a value is not
// passed through.
func WriteHTML(w io.Writer, students []schema.Student) error {
	var source bytes.Buffer
	if err := WriteMarkdown(&source, students); err != nil {
		return err
	}
	return htmlRenderer().Convert(source.Bytes(), w)
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"<", "&lt;",
	">", "&gt;",
	"\n", " ",
	"\r", " ",
)

func markdownCell(value string) string {
	return markdownEscaper.Replace(value)
}
