// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package datfile reads and writes the hostel record files: one file
// of students and one of tickets, each laid out as a little-endian
// int32 count followed by that many fixed-size records.
//
// Records have no length prefixes or delimiters. Every text field
// occupies its full width from the schema field table and is padded
// with NUL bytes; integers are little-endian int32; alignment padding
// between fields is written as zero. The layout is the x86 memory image
// of the C structs the format was defined with, so students.dat and
// tickets.dat files from the C tool load unchanged:
//
//	student (596 bytes): id, 21 text fields (585), pad (3), is_active
//	ticket  (280 bytes): ticket_id, student_id, student_name[50],
//	                     issue[200], status[20], pad (2)
//
// [Load] never fails outright. A missing file is an empty collection.
// A corrupt file (bad count, short body, unknown status) resets that
// collection to empty and is reported as a warning wrapping
// [ErrCorrupt]. [Save] replaces both files atomically.
package datfile
