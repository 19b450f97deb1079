// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/bureau-foundation/hostel/cmd/hostel/cli"
	"github.com/bureau-foundation/hostel/lib/query"
	"github.com/bureau-foundation/hostel/lib/schema"
	"github.com/bureau-foundation/hostel/lib/sqlexport"
	"github.com/bureau-foundation/hostel/lib/testutil"
)

func execute(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	ctx := cli.WithStreams(context.Background(), cli.Streams{
		Out:    &stdout,
		Err:    &stderr,
		Logger: slog.New(slog.DiscardHandler),
	})
	err := Command().Execute(ctx, append(args, "--config", configPath))
	return stdout.String(), err
}

func seed() schema.Dataset {
	ali := testutil.Student(1, "ALI RAZA")
	ali.Campus = "B"
	zara := testutil.Student(2, "ZARA KHAN")
	meera := testutil.Student(3, "MEERA IYER")
	meera.Campus = "C"
	meera.Active = false

	fan := testutil.Ticket(1, ali, "FAN")
	tap := testutil.Ticket(2, zara, "TAP")
	tap.Status = schema.StatusInProgress
	light := testutil.Ticket(3, zara, "LIGHT")
	light.Status = schema.StatusResolved

	return schema.Dataset{
		Students: []schema.Student{ali, zara, meera},
		Tickets:  []schema.Ticket{fan, tap, light},
	}
}

func TestDashboard_JSON(t *testing.T) {
	configPath, _ := testutil.ConfigFile(t, seed())

	output, err := execute(t, configPath, "dashboard", "--json")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	var result dashboardResult
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("decoding: %v\n%s", err, output)
	}

	if result.TotalStudents != 3 || result.ActiveStudents != 2 {
		t.Errorf("students total/active = %d/%d, want 3/2", result.TotalStudents, result.ActiveStudents)
	}
	if result.TotalTickets != 3 || result.OpenTickets != 1 || result.InProgressTickets != 1 || result.ResolvedTickets != 1 {
		t.Errorf("ticket counts = %+v", result.Summary)
	}
	// Configured campuses A and B come first; inactive students count.
	want := []query.CampusCount{{Campus: "A", Count: 1}, {Campus: "B", Count: 1}, {Campus: "C", Count: 1}}
	if !reflect.DeepEqual(result.Campuses, want) {
		t.Errorf("campuses = %+v, want %+v", result.Campuses, want)
	}
}

func TestDashboard_Text(t *testing.T) {
	configPath, _ := testutil.ConfigFile(t, seed())

	output, err := execute(t, configPath, "dashboard")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	wantPrefixes := []string{
		"TOTAL STUDENTS:",
		"ACTIVE STUDENTS:",
		"CAMPUS A STUDENTS:",
		"CAMPUS B STUDENTS:",
		"CAMPUS C STUDENTS:",
		"TOTAL ISSUES:",
		"OPEN ISSUES:",
		"IN PROGRESS ISSUES:",
		"RESOLVED ISSUES:",
	}
	if len(lines) != len(wantPrefixes) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(wantPrefixes), output)
	}
	for index, prefix := range wantPrefixes {
		if !strings.HasPrefix(lines[index], prefix) {
			t.Errorf("line %d = %q, want prefix %q", index, lines[index], prefix)
		}
	}
	if fields := strings.Fields(lines[0]); fields[len(fields)-1] != "3" {
		t.Errorf("total students line = %q, want count 3", lines[0])
	}
}

func TestDashboard_EmptyStorePinsCampuses(t *testing.T) {
	configPath, _ := testutil.ConfigFile(t, schema.Dataset{})

	output, err := execute(t, configPath, "dashboard", "--json")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	var result dashboardResult
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	want := []query.CampusCount{{Campus: "A", Count: 0}, {Campus: "B", Count: 0}}
	if !reflect.DeepEqual(result.Campuses, want) {
		t.Errorf("campuses = %+v, want %+v", result.Campuses, want)
	}
}

func TestExport_DefaultPath(t *testing.T) {
	configPath, files := testutil.ConfigFile(t, seed())
	reportPath := filepath.Join(filepath.Dir(files.Students), "students_report.txt")

	output, err := execute(t, configPath, "export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if want := "STUDENT REPORT EXPORTED TO FILE: " + reportPath + "\n"; output != want {
		t.Errorf("output = %q, want %q", output, want)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	report := string(data)
	// Every student is exported, inactive ones included, in roster order.
	ali := strings.Index(report, "NAME: ALI RAZA")
	zara := strings.Index(report, "NAME: ZARA KHAN")
	meera := strings.Index(report, "NAME: MEERA IYER")
	if ali < 0 || zara < 0 || meera < 0 || !(ali < zara && zara < meera) {
		t.Errorf("report order: ali=%d zara=%d meera=%d", ali, zara, meera)
	}
}

func TestExport_Formats(t *testing.T) {
	configPath, _ := testutil.ConfigFile(t, seed())
	directory := t.TempDir()

	tests := []struct {
		format string
		want   string
	}{
		{"markdown", "ALI RAZA"},
		{"html", "<table>"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			path := filepath.Join(directory, "report."+tt.format)
			if _, err := execute(t, configPath, "export", "--format", tt.format, "--output", path); err != nil {
				t.Fatalf("export: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading report: %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("%s report missing %q", tt.format, tt.want)
			}
		})
	}

	_, err := execute(t, configPath, "export", "--format", "pdf")
	if got := cli.CategoryOf(err); got != cli.CategoryValidation {
		t.Errorf("unknown format category = %q, want validation", got)
	}
}

func TestSQLite(t *testing.T) {
	configPath, _ := testutil.ConfigFile(t, seed())
	databasePath := filepath.Join(t.TempDir(), "hostel.db")

	output, err := execute(t, configPath, "sqlite", "--output", databasePath, "--json")
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	var result sqlexport.Result
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("decoding: %v\n%s", err, output)
	}
	if result.Students != 3 || result.Tickets != 3 || result.Path != databasePath {
		t.Errorf("result = %+v", result)
	}
	if _, err := os.Stat(databasePath); err != nil {
		t.Errorf("database not written: %v", err)
	}

	_, err = execute(t, configPath, "sqlite")
	if err == nil || !strings.Contains(err.Error(), "--output is required") {
		t.Errorf("err = %v, want --output is required", err)
	}
}
