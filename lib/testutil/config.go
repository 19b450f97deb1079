// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/hostel/lib/clock"
	"github.com/bureau-foundation/hostel/lib/datfile"
	"github.com/bureau-foundation/hostel/lib/hostel"
	"github.com/bureau-foundation/hostel/lib/registry"
	"github.com/bureau-foundation/hostel/lib/schema"
)

// ConfigFile writes a configuration file whose data_dir is a fresh
// temporary directory and returns its path together with the record
// file paths it implies. Seed records are written to those files.
// HOSTEL_CONFIG is cleared for the test so only the returned path
// applies.
func ConfigFile(t *testing.T, seed schema.Dataset) (string, datfile.Paths) {
	t.Helper()
	t.Setenv("HOSTEL_CONFIG", "")

	directory := t.TempDir()
	configPath := filepath.Join(directory, "hostel.yaml")
	content := fmt.Sprintf("paths:\n  data_dir: %s\ncampuses: [A, B]\n", directory)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	files := datfile.Paths{
		Students: filepath.Join(directory, "students.dat"),
		Tickets:  filepath.Join(directory, "tickets.dat"),
	}
	if len(seed.Students) > 0 || len(seed.Tickets) > 0 {
		session, err := hostel.Open(hostel.Options{
			Files:      files,
			ReportPath: filepath.Join(directory, "students_report.txt"),
			Limits:     registry.DefaultLimits(),
			Clock:      clock.Fake(Epoch),
		})
		if err != nil {
			t.Fatalf("opening seed session: %v", err)
		}
		if err := session.Replace(seed); err != nil {
			t.Fatalf("seeding records: %v", err)
		}
	}
	return configPath, files
}

// LoadRecords reads the record files back.
func LoadRecords(t *testing.T, files datfile.Paths) schema.Dataset {
	t.Helper()
	session, err := hostel.Open(hostel.Options{
		Files:  files,
		Limits: registry.DefaultLimits(),
		Clock:  clock.Fake(Epoch),
	})
	if err != nil {
		t.Fatalf("reopening records: %v", err)
	}
	return session.Registry.Dataset()
}
