// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readLine returns the next input line without its line ending. A
// final line without a newline is returned normally; end of input
// after it returns errEndOfInput.
func (s *Shell) readLine() (string, error) {
	line, err := s.input.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if line == "" {
			return "", errEndOfInput
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readString prompts for a free-text value.
func (s *Shell) readString(prompt string) (string, error) {
	s.printf("%s", prompt)
	return s.readLine()
}

// readInt prompts for an integer, reprompting until one parses.
func (s *Shell) readInt(prompt string) (int, error) {
	value, err := s.readNumber(prompt, strconv.IntSize)
	return int(value), err
}

// readID prompts for a student or ticket ID, which must fit in 32 bits.
func (s *Shell) readID(prompt string) (int32, error) {
	value, err := s.readNumber(prompt, 32)
	return int32(value), err
}

func (s *Shell) readNumber(prompt string, bits int) (int64, error) {
	s.printf("%s", prompt)
	for {
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		value, parseErr := strconv.ParseInt(strings.TrimSpace(line), 10, bits)
		if parseErr == nil {
			return value, nil
		}
		s.printf("%s", s.styles.failure.Render("INVALID INPUT. ENTER INTEGER VALUE: "))
	}
}

func (s *Shell) readAdminSecret() ([]byte, error) {
	s.printf("\nENTER ADMIN PASSWORD: ")
	if s.readSecret != nil {
		candidate, err := s.readSecret()
		s.println("")
		if errors.Is(err, io.EOF) {
			return nil, errEndOfInput
		}
		return bytes.TrimSpace(candidate), err
	}
	line, err := s.readLine()
	if err != nil {
		return nil, err
	}
	return []byte(strings.TrimSpace(line)), nil
}

// TerminalSecretReader returns a ReadSecret function that reads from
// file with echo disabled, or nil when file is not a terminal (the
// shell then reads a visible line from its input).
func TerminalSecretReader(file *os.File) func() ([]byte, error) {
	fd := int(file.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	return func() ([]byte, error) {
		return term.ReadPassword(fd)
	}
}
