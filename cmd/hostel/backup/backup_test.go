// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/hostel/cmd/hostel/cli"
	"github.com/bureau-foundation/hostel/lib/schema"
	"github.com/bureau-foundation/hostel/lib/snapshot"
	"github.com/bureau-foundation/hostel/lib/testutil"
	"github.com/bureau-foundation/hostel/lib/version"
)

// execute runs "backup args..." and returns stdout. configPath is
// appended as --config when non-empty.
func execute(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	ctx := cli.WithStreams(context.Background(), cli.Streams{
		Out:    &stdout,
		Err:    &stderr,
		Logger: slog.New(slog.DiscardHandler),
	})
	if configPath != "" {
		args = append(args, "--config", configPath)
	}
	err := Command().Execute(ctx, args)
	return stdout.String(), err
}

func seed() schema.Dataset {
	ali := testutil.Student(1, "ALI RAZA")
	zara := testutil.Student(2, "ZARA KHAN")
	zara.Active = false
	return schema.Dataset{
		Students: []schema.Student{ali, zara},
		Tickets:  []schema.Ticket{testutil.Ticket(4, ali, "FAN")},
	}
}

func TestCreateAndRestore(t *testing.T) {
	sourceConfig, _ := testutil.ConfigFile(t, seed())
	snapshotPath := filepath.Join(t.TempDir(), "hostel.snap")

	output, err := execute(t, sourceConfig, "create", "--output", snapshotPath, "--json")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	var info snapshot.Info
	if err := json.Unmarshal([]byte(output), &info); err != nil {
		t.Fatalf("decoding: %v\n%s", err, output)
	}
	if info.Encrypted || info.Students != 2 || info.Tickets != 1 || info.ID == "" {
		t.Errorf("info = %+v", info)
	}

	targetConfig, targetFiles := testutil.ConfigFile(t, schema.Dataset{
		Students: []schema.Student{testutil.Student(9, "TO BE REPLACED")},
	})
	output, err = execute(t, targetConfig, "restore", snapshotPath)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !strings.HasPrefix(output, "RESTORED 2 STUDENTS AND 1 TICKETS") {
		t.Errorf("output = %q", output)
	}

	restored := testutil.LoadRecords(t, targetFiles)
	if len(restored.Students) != 2 || restored.Students[0].ID != 1 || restored.Students[1].Active {
		t.Errorf("restored students = %+v", restored.Students)
	}
	if len(restored.Tickets) != 1 || restored.Tickets[0].ID != 4 {
		t.Errorf("restored tickets = %+v", restored.Tickets)
	}
}

func TestCreate_Compressions(t *testing.T) {
	configPath, _ := testutil.ConfigFile(t, seed())
	directory := t.TempDir()

	for _, compression := range []string{"zstd", "lz4", "none"} {
		t.Run(compression, func(t *testing.T) {
			path := filepath.Join(directory, compression+".snap")
			if _, err := execute(t, configPath, "create", "-o", path, "--compression", compression); err != nil {
				t.Fatalf("create: %v", err)
			}
			output, err := execute(t, "", "inspect", path, "--json")
			if err != nil {
				t.Fatalf("inspect: %v", err)
			}
			var info snapshot.Info
			if err := json.Unmarshal([]byte(output), &info); err != nil {
				t.Fatalf("decoding: %v", err)
			}
			if info.Students != 2 {
				t.Errorf("students = %d, want 2", info.Students)
			}
		})
	}

	_, err := execute(t, configPath, "create", "-o", filepath.Join(directory, "x.snap"), "--compression", "gzip")
	if got := cli.CategoryOf(err); got != cli.CategoryValidation {
		t.Errorf("unknown compression category = %q, want validation", got)
	}
	_, err = execute(t, configPath, "create", "-o", filepath.Join(directory, "y.snap"), "--recipient", "not-a-key")
	if got := cli.CategoryOf(err); got != cli.CategoryValidation {
		t.Errorf("bad recipient category = %q, want validation", got)
	}
}

func TestInspect_Text(t *testing.T) {
	configPath, _ := testutil.ConfigFile(t, seed())
	path := filepath.Join(t.TempDir(), "hostel.snap")
	if _, err := execute(t, configPath, "create", "-o", path); err != nil {
		t.Fatalf("create: %v", err)
	}

	output, err := execute(t, "", "inspect", path)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"ID:", "PRODUCER:", "hostel " + version.Short(), "CREATED:", "ENCRYPTED:", "false", "DIGEST:", "STUDENTS:", "TICKETS:"} {
		if !strings.Contains(output, want) {
			t.Errorf("inspect output missing %q:\n%s", want, output)
		}
	}

	output, err = execute(t, "", "inspect", path, "--diagnostic")
	if err != nil {
		t.Fatalf("inspect --diagnostic: %v", err)
	}
	for _, want := range []string{`"producer": "hostel `, `"payload": h'`} {
		if !strings.Contains(output, want) {
			t.Errorf("diagnostic output missing %q:\n%s", want, output)
		}
	}

	_, err = execute(t, "", "inspect", filepath.Join(t.TempDir(), "absent.snap"))
	if got := cli.CategoryOf(err); got != cli.CategoryNotFound {
		t.Errorf("missing file category = %q, want not_found", got)
	}
}

func TestWriteInfo_Sealed(t *testing.T) {
	created := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	info := snapshot.Info{
		ID:          "0f7c",
		CreatedAt:   created,
		Compression: "zstd",
		Encrypted:   true,
		Digest:      "abcd",
		Size:        2048,
		PayloadSize: 512,
	}

	var buffer bytes.Buffer
	if err := writeInfo(&buffer, info, created.Add(3*time.Hour)); err != nil {
		t.Fatalf("writeInfo: %v", err)
	}
	output := buffer.String()
	for _, want := range []string{"2026-03-01T09:00:00Z", "3 hours ago", "sealed", "512 B stored, 2.0 kB raw"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "STUDENTS:") {
		t.Errorf("sealed snapshot should not show record counts:\n%s", output)
	}
}

func TestSealedRoundTrip(t *testing.T) {
	directory := t.TempDir()
	identityPath := filepath.Join(directory, "backup.key")

	output, err := execute(t, "", "keygen", "--output", identityPath, "--json")
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	var key keygenResult
	if err := json.Unmarshal([]byte(output), &key); err != nil {
		t.Fatalf("decoding: %v\n%s", err, output)
	}
	if !strings.HasPrefix(key.PublicKey, "age1") {
		t.Fatalf("public key = %q, want age1...", key.PublicKey)
	}
	stat, err := os.Stat(identityPath)
	if err != nil {
		t.Fatalf("identity file: %v", err)
	}
	if mode := stat.Mode().Perm(); mode != 0o600 {
		t.Errorf("identity mode = %o, want 600", mode)
	}

	sourceConfig, _ := testutil.ConfigFile(t, seed())
	snapshotPath := filepath.Join(directory, "sealed.snap")
	if _, err := execute(t, sourceConfig, "create", "-o", snapshotPath, "--recipient", key.PublicKey); err != nil {
		t.Fatalf("create: %v", err)
	}

	targetConfig, targetFiles := testutil.ConfigFile(t, schema.Dataset{})
	_, err = execute(t, targetConfig, "restore", snapshotPath)
	if got := cli.CategoryOf(err); got != cli.CategoryForbidden {
		t.Errorf("restore without identity category = %q (err %v), want forbidden", got, err)
	}
	if stored := testutil.LoadRecords(t, targetFiles); len(stored.Students) != 0 {
		t.Errorf("failed restore changed the records: %d students", len(stored.Students))
	}

	if _, err := execute(t, targetConfig, "restore", snapshotPath, "--identity", identityPath); err != nil {
		t.Fatalf("restore with identity: %v", err)
	}
	if stored := testutil.LoadRecords(t, targetFiles); len(stored.Students) != 2 {
		t.Errorf("restored %d students, want 2", len(stored.Students))
	}
}

func TestKeygen(t *testing.T) {
	output, err := execute(t, "", "keygen")
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	if !strings.Contains(output, "# public key: age1") || !strings.Contains(output, "AGE-SECRET-KEY-1") {
		t.Errorf("identity output:\n%s", output)
	}

	identityPath := filepath.Join(t.TempDir(), "existing.key")
	if err := os.WriteFile(identityPath, []byte("keep me\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err = execute(t, "", "keygen", "-o", identityPath)
	if got := cli.CategoryOf(err); got != cli.CategoryConflict {
		t.Errorf("overwrite category = %q, want conflict", got)
	}
	if data, _ := os.ReadFile(identityPath); string(data) != "keep me\n" {
		t.Errorf("existing identity overwritten: %q", data)
	}

	_, err = execute(t, "", "keygen", "--json")
	if got := cli.CategoryOf(err); got != cli.CategoryValidation {
		t.Errorf("--json without --output category = %q, want validation", got)
	}
}
