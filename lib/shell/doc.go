// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package shell is the interactive menu front end of the hostel
// records manager.
//
// A [Shell] reads lines from an input stream and writes menus and
// results to an output stream. It owns the interaction concerns the
// record store leaves out: the admin secret gate with its attempt
// limit, integer parsing with reprompting, and the table and dashboard
// layouts. Every operation calls straight into the session's registry;
// after each admin or student portal iteration the session is flushed
// and a failed flush is reported without ending the session.
//
// End of input at any prompt ends the session cleanly: the store is
// flushed once more and [Shell.Run] returns nil.
package shell
