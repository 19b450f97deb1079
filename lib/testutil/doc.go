// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for hostel packages.
//
// [Student] and [Ticket] build fully populated records. [StudentID]
// hands out process-unique IDs for tests that do not care which ID a
// record gets.
//
// [DataFiles] returns record file paths inside t.TempDir(), and
// [OpenSession] opens a hostel.Session over them with a fake clock and
// optional seed records, flushed so the files exist on disk.
//
// [ConfigFile] writes a configuration file pointing at a seeded data
// directory, for command tests that pass --config. [LoadRecords] reads
// the record files back as a schema.Dataset.
//
// All helpers call t.Fatalf on failure.
package testutil
