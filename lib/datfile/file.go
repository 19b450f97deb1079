// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/natefinch/atomic"

	"github.com/bureau-foundation/hostel/lib/registry"
	"github.com/bureau-foundation/hostel/lib/schema"
)

var (
	// ErrCorrupt marks a record file whose contents cannot be trusted.
	ErrCorrupt = errors.New("corrupt record file")

	// ErrPersistenceUnavailable marks a record file that could not be
	// opened, read or written.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)

// Paths names the two record files.
type Paths struct {
	Students string
	Tickets  string
}

// ReadStudents decodes a student file from r. An empty stream is an
// empty collection. A count outside [0, capacity] or a body shorter
// than the count promises returns an error wrapping ErrCorrupt.
func ReadStudents(r io.Reader, capacity int) ([]schema.Student, error) {
	count, err := readCount(r, capacity)
	if err != nil || count == 0 {
		return nil, err
	}
	students := make([]schema.Student, 0, count)
	record := make([]byte, StudentRecordSize)
	for index := range count {
		if _, err := io.ReadFull(r, record); err != nil {
			return nil, truncated("student", index, count, err)
		}
		students = append(students, DecodeStudent(record))
	}
	return students, nil
}

// ReadTickets decodes a ticket file from r with the same rules as
// ReadStudents. An unknown status text also counts as corruption.
func ReadTickets(r io.Reader, capacity int) ([]schema.Ticket, error) {
	count, err := readCount(r, capacity)
	if err != nil || count == 0 {
		return nil, err
	}
	tickets := make([]schema.Ticket, 0, count)
	record := make([]byte, TicketRecordSize)
	for index := range count {
		if _, err := io.ReadFull(r, record); err != nil {
			return nil, truncated("ticket", index, count, err)
		}
		ticket, err := DecodeTicket(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", index, err)
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

// WriteStudents encodes students to w as a count and fixed records.
func WriteStudents(w io.Writer, students []schema.Student) error {
	buffer := make([]byte, 4+len(students)*StudentRecordSize)
	byteOrder.PutUint32(buffer, uint32(len(students)))
	for index := range students {
		offset := 4 + index*StudentRecordSize
		EncodeStudent(buffer[offset:offset+StudentRecordSize], &students[index])
	}
	_, err := w.Write(buffer)
	return err
}

// WriteTickets encodes tickets to w as a count and fixed records.
func WriteTickets(w io.Writer, tickets []schema.Ticket) error {
	buffer := make([]byte, 4+len(tickets)*TicketRecordSize)
	byteOrder.PutUint32(buffer, uint32(len(tickets)))
	for index := range tickets {
		offset := 4 + index*TicketRecordSize
		EncodeTicket(buffer[offset:offset+TicketRecordSize], &tickets[index])
	}
	_, err := w.Write(buffer)
	return err
}

// Load reads both record files. It always returns a usable dataset:
// a missing file contributes an empty collection silently, while an
// unreadable or corrupt file contributes an empty collection and a
// warning in the returned slice. Warnings wrap ErrPersistenceUnavailable
// or ErrCorrupt.
func Load(paths Paths, limits registry.Limits) (schema.Dataset, []error) {
	var dataset schema.Dataset
	var warnings []error

	if err := loadFile(paths.Students, func(r io.Reader) error {
		students, err := ReadStudents(r, limits.MaxStudents)
		dataset.Students = students
		return err
	}); err != nil {
		warnings = append(warnings, err)
	}

	if err := loadFile(paths.Tickets, func(r io.Reader) error {
		tickets, err := ReadTickets(r, limits.MaxTickets)
		dataset.Tickets = tickets
		return err
	}); err != nil {
		warnings = append(warnings, err)
	}

	return dataset, warnings
}

// Save writes both record files, each replaced atomically so a crash
// mid-write leaves the previous file intact. Both files are attempted
// even if the first fails; the joined error wraps
// ErrPersistenceUnavailable.
func Save(paths Paths, dataset schema.Dataset) error {
	var students, tickets bytes.Buffer
	if err := WriteStudents(&students, dataset.Students); err != nil {
		return fmt.Errorf("%w: encoding students: %w", ErrPersistenceUnavailable, err)
	}
	if err := WriteTickets(&tickets, dataset.Tickets); err != nil {
		return fmt.Errorf("%w: encoding tickets: %w", ErrPersistenceUnavailable, err)
	}

	var errs []error
	if err := atomic.WriteFile(paths.Students, &students); err != nil {
		errs = append(errs, fmt.Errorf("%w: writing %s: %w", ErrPersistenceUnavailable, paths.Students, err))
	}
	if err := atomic.WriteFile(paths.Tickets, &tickets); err != nil {
		errs = append(errs, fmt.Errorf("%w: writing %s: %w", ErrPersistenceUnavailable, paths.Tickets, err))
	}
	return errors.Join(errs...)
}

func loadFile(path string, decode func(io.Reader) error) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: reading %s: %w", ErrPersistenceUnavailable, path, err)
	}
	if err := decode(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func readCount(r io.Reader, capacity int) (int, error) {
	var header [4]byte
	_, err := io.ReadFull(r, header[:])
	if errors.Is(err, io.EOF) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading record count: %v: %w", err, ErrCorrupt)
	}
	count := int(int32(byteOrder.Uint32(header[:])))
	if count < 0 || count > capacity {
		return 0, fmt.Errorf("record count %d outside [0, %d]: %w", count, capacity, ErrCorrupt)
	}
	return count, nil
}

func truncated(kind string, index, count int, err error) error {
	return fmt.Errorf("%s record %d of %d: %v: %w", kind, index, count, err, ErrCorrupt)
}
