// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package student

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/hostel/cmd/hostel/cli"
	"github.com/bureau-foundation/hostel/lib/schema"
	"github.com/bureau-foundation/hostel/lib/testutil"
)

// execute runs "student args..." against configPath and returns stdout.
func execute(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	ctx := cli.WithStreams(context.Background(), cli.Streams{
		In:     strings.NewReader(""),
		Out:    &stdout,
		Err:    &stderr,
		Logger: slog.New(slog.DiscardHandler),
	})
	err := Command().Execute(ctx, append(args, "--config", configPath))
	return stdout.String(), err
}

func seed() schema.Dataset {
	zara := testutil.Student(2, "ZARA KHAN")
	zara.RoomNo = "A-105"
	ali := testutil.Student(1, "ALI RAZA")
	ali.RoomNo = "B-201"
	ali.Campus = "B"
	inactive := testutil.Student(3, "MEERA IYER")
	inactive.RoomNo = "A-110"
	inactive.Active = false
	return schema.Dataset{Students: []schema.Student{zara, ali, inactive}}
}

func TestRegister(t *testing.T) {
	configPath, files := testutil.ConfigFile(t, schema.Dataset{})

	output, err := execute(t, configPath, "register",
		"--id", "7", "--name", "ASHA RAO", "--room-no", "B-201", "--campus", "B", "--fee-status", "PAID")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if output != "STUDENT 7 REGISTERED.\n" {
		t.Errorf("output = %q, want %q", output, "STUDENT 7 REGISTERED.\n")
	}

	stored := testutil.LoadRecords(t, files)
	if len(stored.Students) != 1 {
		t.Fatalf("stored %d students, want 1", len(stored.Students))
	}
	student := stored.Students[0]
	if student.Name != "ASHA RAO" || student.RoomNo != "B-201" || student.Campus != "B" || student.FeeStatus != "PAID" {
		t.Errorf("stored student = %+v", student)
	}
	if !student.Active {
		t.Error("new student should be active")
	}
}

func TestRegister_DuplicateID(t *testing.T) {
	configPath, _ := testutil.ConfigFile(t, seed())

	_, err := execute(t, configPath, "register", "--id", "3", "--name", "SOMEONE ELSE")
	if err == nil {
		t.Fatal("expected an error for a reused ID, got nil")
	}
	if got := cli.CategoryOf(err); got != cli.CategoryConflict {
		t.Errorf("category = %q, want %q", got, cli.CategoryConflict)
	}
}

func TestRegister_FieldTooLong(t *testing.T) {
	configPath, files := testutil.ConfigFile(t, schema.Dataset{})

	_, err := execute(t, configPath, "register", "--id", "8", "--name", "X", "--campus", "CAMPUS")
	if got := cli.CategoryOf(err); got != cli.CategoryValidation {
		t.Errorf("category = %q (err %v), want %q", got, err, cli.CategoryValidation)
	}
	if stored := testutil.LoadRecords(t, files); len(stored.Students) != 0 {
		t.Errorf("stored %d students after a rejected registration, want 0", len(stored.Students))
	}
}

func TestRegister_RequiresName(t *testing.T) {
	configPath, _ := testutil.ConfigFile(t, schema.Dataset{})

	_, err := execute(t, configPath, "register", "--id", "8")
	if err == nil || !strings.Contains(err.Error(), "--name is required") {
		t.Errorf("err = %v, want --name is required", err)
	}
}

func TestShow(t *testing.T) {
	configPath, _ := testutil.ConfigFile(t, seed())

	output, err := execute(t, configPath, "show", "1")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"NAME:", "ALI RAZA", "ROOM:", "B-201", "ACTIVE:"} {
		if !strings.Contains(output, want) {
			t.Errorf("show output missing %q:\n%s", want, output)
		}
	}

	_, err = execute(t, configPath, "show", "99")
	if got := cli.CategoryOf(err); got != cli.CategoryNotFound {
		t.Errorf("unknown student category = %q, want %q", got, cli.CategoryNotFound)
	}

	_, err = execute(t, configPath, "show", "abc")
	if got := cli.CategoryOf(err); got != cli.CategoryValidation {
		t.Errorf("malformed ID category = %q, want %q", got, cli.CategoryValidation)
	}
}

func decodeStudents(t *testing.T, output string) []schema.Student {
	t.Helper()
	var students []schema.Student
	if err := json.Unmarshal([]byte(output), &students); err != nil {
		t.Fatalf("decoding JSON output: %v\n%s", err, output)
	}
	return students
}

func studentIDs(students []schema.Student) []int32 {
	ids := make([]int32, len(students))
	for index, student := range students {
		ids[index] = student.ID
	}
	return ids
}

func TestList(t *testing.T) {
	configPath, _ := testutil.ConfigFile(t, seed())

	output, err := execute(t, configPath, "list", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := studentIDs(decodeStudents(t, output)); len(got) != 3 || got[0] != 2 || got[1] != 1 || got[2] != 3 {
		t.Errorf("list IDs = %v, want roster order [2 1 3]", got)
	}

	output, err = execute(t, configPath, "list", "--active", "--json")
	if err != nil {
		t.Fatalf("list --active: %v", err)
	}
	if got := studentIDs(decodeStudents(t, output)); len(got) != 2 || got[0] != 2 || got[1] != 1 {
		t.Errorf("active IDs = %v, want [2 1]", got)
	}

	output, err = execute(t, configPath, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.HasPrefix(output, "ID") || !strings.Contains(output, "MEERA IYER") {
		t.Errorf("table output:\n%s", output)
	}
}

func TestList_EmptyJSONIsArray(t *testing.T) {
	configPath, _ := testutil.ConfigFile(t, schema.Dataset{})

	output, err := execute(t, configPath, "list", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.TrimSpace(output) != "[]" {
		t.Errorf("output = %q, want []", output)
	}
}

func TestSearch(t *testing.T) {
	configPath, _ := testutil.ConfigFile(t, seed())

	output, err := execute(t, configPath, "search", "RA", "--json")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	// ZARA KHAN and ALI RAZA both contain "RA"; MEERA IYER does too.
	if got := studentIDs(decodeStudents(t, output)); len(got) != 3 {
		t.Errorf("search RA IDs = %v, want 3 matches", got)
	}

	output, err = execute(t, configPath, "search", "raza", "--json")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if got := decodeStudents(t, output); len(got) != 0 {
		t.Errorf("substring search should be case-sensitive, got %v", studentIDs(got))
	}
}

func TestSearch_Fuzzy(t *testing.T) {
	configPath, _ := testutil.ConfigFile(t, seed())

	output, err := execute(t, configPath, "search", "--fuzzy", "alrz", "--json")
	if err != nil {
		t.Fatalf("search --fuzzy: %v", err)
	}
	var entries []rankedEntry
	if err := json.Unmarshal([]byte(output), &entries); err != nil {
		t.Fatalf("decoding: %v\n%s", err, output)
	}
	if len(entries) != 1 || entries[0].Student.ID != 1 {
		t.Fatalf("fuzzy entries = %+v, want only ALI RAZA", entries)
	}
	if entries[0].Score <= 0 {
		t.Errorf("score = %d, want positive", entries[0].Score)
	}
}

func TestCampus(t *testing.T) {
	configPath, _ := testutil.ConfigFile(t, seed())

	output, err := execute(t, configPath, "campus", "A", "--json")
	if err != nil {
		t.Fatalf("campus: %v", err)
	}
	if got := studentIDs(decodeStudents(t, output)); len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("campus A IDs = %v, want [2 3]", got)
	}
}

func TestUpdate_ByField(t *testing.T) {
	configPath, files := testutil.ConfigFile(t, seed())

	output, err := execute(t, configPath, "update", "1", "--field", "room-no", "--value", "C-301")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if output != "STUDENT 1: ROOM UPDATED.\n" {
		t.Errorf("output = %q", output)
	}
	stored := testutil.LoadRecords(t, files)
	if stored.Students[1].RoomNo != "C-301" {
		t.Errorf("stored room = %q, want C-301", stored.Students[1].RoomNo)
	}
}

func TestUpdate_ByCategory(t *testing.T) {
	configPath, files := testutil.ConfigFile(t, seed())

	if _, err := execute(t, configPath, "update", "2", "--category", "hostel", "--option", "1", "--value", "D-1"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := testutil.LoadRecords(t, files).Students[0].RoomNo; got != "D-1" {
		t.Errorf("stored room = %q, want D-1", got)
	}

	_, err := execute(t, configPath, "update", "2", "--category", "hostel", "--option", "9", "--value", "D-2")
	if got := cli.CategoryOf(err); got != cli.CategoryValidation {
		t.Errorf("out-of-range option category = %q (err %v), want validation", got, err)
	}
}

func TestUpdate_ParentAndAddressFields(t *testing.T) {
	configPath, files := testutil.ConfigFile(t, seed())

	updates := []struct{ field, value string }{
		{"parent_name", "RAZA KHAN"},
		{"mother_name", "SANA RAZA"},
		{"address", "12 LAKE ROAD"},
	}
	for _, update := range updates {
		if _, err := execute(t, configPath, "update", "1", "--field", update.field, "--value", update.value); err != nil {
			t.Fatalf("update %s: %v", update.field, err)
		}
	}
	stored := testutil.LoadRecords(t, files).Students[1]
	if stored.ParentName != "RAZA KHAN" || stored.MotherName != "SANA RAZA" || stored.Address != "12 LAKE ROAD" {
		t.Errorf("stored student = %+v", stored)
	}

	description := updateCommand().Description
	for _, field := range schema.Fields {
		mentioned := strings.Contains(strings.ToLower(description), strings.ToLower(field.Label))
		if !field.Updatable() && !mentioned {
			t.Errorf("update description does not list fixed field %q", field.Name)
		}
	}
	for _, name := range []string{"address", "parent", "mother"} {
		if strings.Contains(strings.ToLower(description), name) {
			t.Errorf("update description names %q as fixed, but it is updatable", name)
		}
	}
}

func TestUpdate_Rejections(t *testing.T) {
	configPath, _ := testutil.ConfigFile(t, seed())

	tests := []struct {
		name string
		args []string
		want cli.ErrorCategory
	}{
		{"both selectors", []string{"update", "1", "--field", "phone", "--category", "contact", "--option", "1", "--value", "1"}, cli.CategoryValidation},
		{"no selector", []string{"update", "1", "--value", "1"}, cli.CategoryValidation},
		{"unknown field", []string{"update", "1", "--field", "shoe_size", "--value", "9"}, cli.CategoryValidation},
		{"fixed field", []string{"update", "1", "--field", "district", "--value", "ELSEWHERE"}, cli.CategoryValidation},
		{"unknown student", []string{"update", "99", "--field", "phone", "--value", "1"}, cli.CategoryNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, configPath, tt.args...)
			if got := cli.CategoryOf(err); got != tt.want {
				t.Errorf("category = %q (err %v), want %q", got, err, tt.want)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	configPath, files := testutil.ConfigFile(t, seed())

	output, err := execute(t, configPath, "delete", "2")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if output != "STUDENT 2 MARKED INACTIVE.\n" {
		t.Errorf("output = %q", output)
	}
	stored := testutil.LoadRecords(t, files)
	if len(stored.Students) != 3 {
		t.Fatalf("stored %d students, want 3 (soft delete keeps the record)", len(stored.Students))
	}
	if stored.Students[0].Active {
		t.Error("student 2 still active after delete")
	}
}

func TestSort(t *testing.T) {
	configPath, files := testutil.ConfigFile(t, seed())

	if _, err := execute(t, configPath, "sort", "--by", "room"); err != nil {
		t.Fatalf("sort: %v", err)
	}
	if got := studentIDs(testutil.LoadRecords(t, files).Students); got[0] != 2 || got[1] != 3 || got[2] != 1 {
		t.Errorf("room order = %v, want [2 3 1]", got)
	}

	if _, err := execute(t, configPath, "sort"); err != nil {
		t.Fatalf("sort: %v", err)
	}
	if got := studentIDs(testutil.LoadRecords(t, files).Students); got[0] != 1 || got[1] != 3 || got[2] != 2 {
		t.Errorf("name order = %v, want [1 3 2]", got)
	}

	_, err := execute(t, configPath, "sort", "--by", "age")
	if got := cli.CategoryOf(err); got != cli.CategoryValidation {
		t.Errorf("unknown key category = %q, want validation", got)
	}
}

func TestSort_TooFew(t *testing.T) {
	configPath, _ := testutil.ConfigFile(t, schema.Dataset{Students: []schema.Student{testutil.Student(1, "SOLO")}})

	output, err := execute(t, configPath, "sort")
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if output != "NOT ENOUGH STUDENTS TO SORT.\n" {
		t.Errorf("output = %q", output)
	}
}

func TestImport(t *testing.T) {
	configPath, files := testutil.ConfigFile(t, seed())
	importPath := filepath.Join(t.TempDir(), "intake.jsonc")
	content := `[
  // new intake
  {"id": 10, "name": "NEW ONE", "campus": "A", "room_no": "A-201"},
  {"id": 1, "name": "CLASHES WITH ALI"},
  {"id": 11, "name": "NEW TWO", "campus": "B",},
]`
	if err := os.WriteFile(importPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	output, err := execute(t, configPath, "import", importPath)
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("err = %v, want ExitError code 1 for a partial import", err)
	}
	if !strings.Contains(output, "2 registered, 1 rejected.") {
		t.Errorf("output missing summary:\n%s", output)
	}
	if !strings.Contains(output, "REJECTED    #2  1 CLASHES WITH ALI") {
		t.Errorf("output missing rejection line:\n%s", output)
	}

	stored := testutil.LoadRecords(t, files)
	if got := studentIDs(stored.Students); len(got) != 5 || got[3] != 10 || got[4] != 11 {
		t.Errorf("stored IDs = %v, want [2 1 3 10 11]", got)
	}
}

func TestImport_MalformedFile(t *testing.T) {
	configPath, _ := testutil.ConfigFile(t, schema.Dataset{})
	importPath := filepath.Join(t.TempDir(), "bad.jsonc")
	if err := os.WriteFile(importPath, []byte(`[{"id": 1, "nmae": "TYPO"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, configPath, "import", importPath)
	if got := cli.CategoryOf(err); got != cli.CategoryValidation {
		t.Errorf("category = %q (err %v), want validation", got, err)
	}
}
