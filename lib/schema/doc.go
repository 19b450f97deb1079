// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the hostel record types: [Student], [Ticket]
// and the [TicketStatus] enumeration, plus the field table that drives
// registration checks, targeted updates, reports and the on-disk
// record layout.
//
// Every student text attribute is a fixed-width field. [Fields] lists
// them in on-disk order with their byte width (including the
// terminating NUL of the file format), the label used in reports and
// the update [Category] they belong to. [Select] resolves the
// two-level (category, option) selection used by the interactive
// shell; [FieldByName] resolves the snake_case names used on the
// command line and in import files.
//
// Width checks run through go-playground/validator with a custom
// "width" tag so the struct declarations carry their own limits.
//
// This package depends on no other hostel packages.
package schema
