// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datfile

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/bureau-foundation/hostel/lib/schema"
)

// Record sizes in bytes. These are file format constants.
const (
	StudentRecordSize = 596
	TicketRecordSize  = 280
)

// Ticket record offsets.
const (
	ticketIDOffset          = 0
	ticketStudentIDOffset   = 4
	ticketStudentNameOffset = 8
	ticketIssueOffset       = ticketStudentNameOffset + schema.TicketStudentNameWidth
	ticketStatusOffset      = ticketIssueOffset + schema.TicketIssueWidth
)

// studentLayout holds the byte offset of each schema.Fields entry, in
// table order, and of the trailing active flag.
type studentLayout struct {
	fieldOffsets []int
	activeOffset int
	size         int
}

var studentRecord = computeStudentLayout()

// computeStudentLayout lays the text fields out after the 4-byte ID in
// schema order, then aligns the int32 active flag to 4 bytes the way a
// C compiler pads the struct.
func computeStudentLayout() studentLayout {
	layout := studentLayout{fieldOffsets: make([]int, len(schema.Fields))}
	offset := 4
	for index, field := range schema.Fields {
		layout.fieldOffsets[index] = offset
		offset += field.Width
	}
	layout.activeOffset = (offset + 3) &^ 3
	layout.size = layout.activeOffset + 4
	return layout
}

var byteOrder = binary.LittleEndian

// EncodeStudent writes student into record, which must be
// StudentRecordSize bytes. Padding bytes are zeroed.
func EncodeStudent(record []byte, student *schema.Student) {
	clear(record[:StudentRecordSize])
	byteOrder.PutUint32(record[0:], uint32(student.ID))
	for index, field := range schema.Fields {
		offset := studentRecord.fieldOffsets[index]
		putString(record[offset:offset+field.Width], field.Get(student))
	}
	var active uint32
	if student.Active {
		active = 1
	}
	byteOrder.PutUint32(record[studentRecord.activeOffset:], active)
}

// DecodeStudent reads a student from a StudentRecordSize record. Any
// non-zero active flag counts as active.
func DecodeStudent(record []byte) schema.Student {
	student := schema.Student{
		ID:     int32(byteOrder.Uint32(record[0:])),
		Active: byteOrder.Uint32(record[studentRecord.activeOffset:]) != 0,
	}
	for index, field := range schema.Fields {
		offset := studentRecord.fieldOffsets[index]
		field.Set(&student, getString(record[offset:offset+field.Width]))
	}
	return student
}

// EncodeTicket writes ticket into record, which must be
// TicketRecordSize bytes.
func EncodeTicket(record []byte, ticket *schema.Ticket) {
	clear(record[:TicketRecordSize])
	byteOrder.PutUint32(record[ticketIDOffset:], uint32(ticket.ID))
	byteOrder.PutUint32(record[ticketStudentIDOffset:], uint32(ticket.StudentID))
	putString(record[ticketStudentNameOffset:ticketIssueOffset], ticket.StudentName)
	putString(record[ticketIssueOffset:ticketStatusOffset], ticket.Issue)
	putString(record[ticketStatusOffset:ticketStatusOffset+schema.TicketStatusWidth], string(ticket.Status))
}

// DecodeTicket reads a ticket from a TicketRecordSize record. The
// status text must be one of the known statuses.
func DecodeTicket(record []byte) (schema.Ticket, error) {
	ticket := schema.Ticket{
		ID:          int32(byteOrder.Uint32(record[ticketIDOffset:])),
		StudentID:   int32(byteOrder.Uint32(record[ticketStudentIDOffset:])),
		StudentName: getString(record[ticketStudentNameOffset:ticketIssueOffset]),
		Issue:       getString(record[ticketIssueOffset:ticketStatusOffset]),
		Status:      schema.TicketStatus(getString(record[ticketStatusOffset : ticketStatusOffset+schema.TicketStatusWidth])),
	}
	if !ticket.Status.Valid() {
		return schema.Ticket{}, fmt.Errorf("ticket %d: unknown status %q: %w", ticket.ID, ticket.Status, ErrCorrupt)
	}
	return ticket, nil
}

// putString copies value into a NUL-padded field, truncating so the
// last byte is always NUL.
func putString(field []byte, value string) {
	copy(field[:len(field)-1], value)
}

// getString returns the field contents up to the first NUL. Bytes after
// it are ignored, since files written by other tools may not zero them.
func getString(field []byte) string {
	if end := bytes.IndexByte(field, 0); end >= 0 {
		return string(field[:end])
	}
	return string(field)
}
