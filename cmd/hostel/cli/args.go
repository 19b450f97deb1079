// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strconv"
	"strings"
)

// ExpectArgs returns a validation error unless exactly count positional
// arguments were given. usage is shown as the hint.
func ExpectArgs(args []string, count int, usage string) error {
	if len(args) == count {
		return nil
	}
	noun := "arguments"
	if count == 1 {
		noun = "argument"
	}
	return Validation("expected %d %s, got %d", count, noun, len(args)).
		WithHint("Usage: " + usage)
}

// ParseID parses a student or ticket ID given on the command line.
// kind names the record in the error ("student", "ticket").
func ParseID(kind, text string) (int32, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(text), 10, 32)
	if err != nil {
		return 0, Validation("invalid %s ID %q: want a 32-bit integer", kind, text)
	}
	return int32(value), nil
}
