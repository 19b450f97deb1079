// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/bureau-foundation/hostel/lib/hostel"
	"github.com/bureau-foundation/hostel/lib/registry"
	"github.com/bureau-foundation/hostel/lib/secret"
	"github.com/bureau-foundation/hostel/lib/tui"
)

// errEndOfInput unwinds every menu when the input stream is exhausted.
var errEndOfInput = errors.New("end of input")

// Options configures a Shell.
type Options struct {
	Session *hostel.Session

	// Verifier checks the admin secret. Nil disables admin login.
	Verifier *secret.Verifier

	// MaxAttempts bounds admin login tries. Zero means 3.
	MaxAttempts int

	In  io.Reader
	Out io.Writer

	// ReadSecret reads the admin secret without echo. Nil reads a
	// visible line from In; see TerminalSecretReader.
	ReadSecret func() ([]byte, error)

	// Logger receives login and flush events. Nil discards.
	Logger *slog.Logger
}

// Shell is one interactive session over a hostel.Session.
type Shell struct {
	session     *hostel.Session
	registry    *registry.Registry
	verifier    *secret.Verifier
	maxAttempts int
	input       *bufio.Reader
	out         io.Writer
	readSecret  func() ([]byte, error)
	styles      styles
	logger      *slog.Logger
}

// New builds a Shell. Output is styled only when Out is a terminal.
func New(options Options) *Shell {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	maxAttempts := options.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	renderer := tui.NewRenderer(options.Out, tui.DetectProfile(options.Out))
	return &Shell{
		session:     options.Session,
		registry:    options.Session.Registry,
		verifier:    options.Verifier,
		maxAttempts: maxAttempts,
		input:       bufio.NewReader(options.In),
		out:         options.Out,
		readSecret:  options.ReadSecret,
		styles:      newStyles(renderer, tui.DefaultTheme),
		logger:      logger,
	}
}

// Run shows the main menu until the user exits, the input ends, or ctx
// is cancelled. The store is flushed before returning.
func (s *Shell) Run(ctx context.Context) error {
	err := s.mainMenu(ctx)
	if errors.Is(err, errEndOfInput) {
		s.println("")
		err = nil
	}
	s.flush()
	s.printf("\n%s\n", s.styles.header.Render("THANK YOU FOR USING HOSTEL MANAGEMENT SYSTEM."))
	return err
}

func (s *Shell) mainMenu(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.menu("          HOSTEL MANAGEMENT SYSTEM",
			"1. ADMIN LOGIN",
			"2. STUDENT ISSUE PORTAL",
			"0. EXIT",
		)
		choice, err := s.readInt("ENTER YOUR CHOICE: ")
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			err = s.adminLogin(ctx)
		case 2:
			err = s.studentPortal(ctx)
		case 0:
			s.info("EXITING SYSTEM AND SAVING DATA...")
			return nil
		default:
			s.fail("INVALID CHOICE. PLEASE TRY AGAIN.")
		}
		if err != nil {
			return err
		}
	}
}

func (s *Shell) adminLogin(ctx context.Context) error {
	if s.verifier == nil {
		s.fail("ADMIN LOGIN IS NOT CONFIGURED.")
		return nil
	}

	var inputErr error
	err := s.verifier.Gate(s.maxAttempts, func(attempt int) ([]byte, error) {
		if attempt > 1 {
			s.fail("WRONG PASSWORD. TRY AGAIN.")
		}
		candidate, err := s.readAdminSecret()
		inputErr = err
		return candidate, err
	})
	switch {
	case inputErr != nil:
		return inputErr
	case errors.Is(err, secret.ErrAccessDenied):
		s.logger.Warn("admin login denied", "attempts", s.maxAttempts)
		s.fail("WRONG PASSWORD. TRY AGAIN.")
		s.fail("MAXIMUM ATTEMPTS REACHED. RETURNING TO MAIN MENU.")
		return nil
	case err != nil:
		return err
	}

	s.logger.Info("admin login")
	s.success("LOGIN SUCCESSFUL. WELCOME ADMIN.")
	return s.adminMenu(ctx)
}

// flush persists the store, printing a warning on failure.
func (s *Shell) flush() {
	if err := s.session.Flush(); err != nil {
		s.warn("WARNING: DATA COULD NOT BE SAVED: " + err.Error())
	}
}
