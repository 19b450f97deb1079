// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/bureau-foundation/hostel/lib/clock"
	"github.com/bureau-foundation/hostel/lib/datfile"
	"github.com/bureau-foundation/hostel/lib/hostel"
	"github.com/bureau-foundation/hostel/lib/registry"
	"github.com/bureau-foundation/hostel/lib/schema"
)

// Epoch is the fake clock's starting time in OpenSession.
var Epoch = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

// DataFiles returns record file paths in a fresh temporary directory.
// The files do not exist yet.
func DataFiles(t *testing.T) datfile.Paths {
	t.Helper()
	directory := t.TempDir()
	return datfile.Paths{
		Students: filepath.Join(directory, "students.dat"),
		Tickets:  filepath.Join(directory, "tickets.dat"),
	}
}

// OpenSession opens a session over fresh record files with campuses A
// and B pinned and a fake clock at Epoch. Seed records are stored and
// flushed before returning.
func OpenSession(t *testing.T, seed schema.Dataset) *hostel.Session {
	t.Helper()
	files := DataFiles(t)
	session, err := hostel.Open(hostel.Options{
		Files:      files,
		ReportPath: filepath.Join(filepath.Dir(files.Students), "students_report.txt"),
		Limits:     registry.DefaultLimits(),
		Campuses:   []string{"A", "B"},
		Clock:      clock.Fake(Epoch),
	})
	if err != nil {
		t.Fatalf("opening session: %v", err)
	}
	if len(seed.Students) > 0 || len(seed.Tickets) > 0 {
		if err := session.Replace(seed); err != nil {
			t.Fatalf("seeding session: %v", err)
		}
	}
	return session
}
