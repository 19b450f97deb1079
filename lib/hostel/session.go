// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hostel

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/natefinch/atomic"

	"github.com/bureau-foundation/hostel/lib/clock"
	"github.com/bureau-foundation/hostel/lib/config"
	"github.com/bureau-foundation/hostel/lib/datfile"
	"github.com/bureau-foundation/hostel/lib/query"
	"github.com/bureau-foundation/hostel/lib/registry"
	"github.com/bureau-foundation/hostel/lib/schema"
)

// Options configures Open.
type Options struct {
	// Files are the two record files.
	Files datfile.Paths

	// ReportPath is where WriteReport writes.
	ReportPath string

	// Limits bounds both collections. Zero values take the defaults.
	Limits registry.Limits

	// Campuses are the codes pinned first on the dashboard.
	Campuses []string

	// Clock stamps flushes. Nil means clock.Real().
	Clock clock.Clock

	// Logger receives load warnings and flush failures. Nil discards.
	Logger *slog.Logger
}

// FromConfig derives Options from a loaded configuration.
func FromConfig(cfg *config.Config, logger *slog.Logger) Options {
	return Options{
		Files: datfile.Paths{
			Students: cfg.StudentsPath(),
			Tickets:  cfg.TicketsPath(),
		},
		ReportPath: cfg.ReportPath(),
		Limits: registry.Limits{
			MaxStudents: cfg.Limits.MaxStudents,
			MaxTickets:  cfg.Limits.MaxTickets,
		},
		Campuses: cfg.Campuses,
		Logger:   logger,
	}
}

// Session is the loaded record store plus where it persists.
type Session struct {
	Registry *registry.Registry

	files        datfile.Paths
	reportPath   string
	campuses     []string
	clock        clock.Clock
	logger       *slog.Logger
	loadWarnings []error
	lastFlush    time.Time
}

// Open builds the registry and loads both record files into it. A
// missing file is an empty collection. A corrupt or unreadable file is
// reset to empty and reported through LoadWarnings. Records that load
// but break a registry invariant (duplicate IDs, oversized fields)
// fail Open rather than being silently dropped, so a later flush
// cannot overwrite them.
func Open(options Options) (*Session, error) {
	limits := options.Limits
	if limits.MaxStudents == 0 {
		limits.MaxStudents = registry.DefaultMaxStudents
	}
	if limits.MaxTickets == 0 {
		limits.MaxTickets = registry.DefaultMaxTickets
	}
	if err := limits.Validate(); err != nil {
		return nil, err
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sessionClock := options.Clock
	if sessionClock == nil {
		sessionClock = clock.Real()
	}

	session := &Session{
		Registry:   registry.New(limits),
		files:      options.Files,
		reportPath: options.ReportPath,
		campuses:   options.Campuses,
		clock:      sessionClock,
		logger:     logger,
	}

	dataset, warnings := datfile.Load(options.Files, limits)
	for _, warning := range warnings {
		logger.Warn("record file reset to empty", "error", warning)
	}
	session.loadWarnings = warnings

	if err := session.Registry.Replace(dataset); err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}
	logger.Debug("records loaded",
		"students", session.Registry.Students.Len(),
		"tickets", session.Registry.Tickets.Len(),
		"next_ticket_id", session.Registry.Tickets.NextID(),
	)
	return session, nil
}

// LoadWarnings returns the problems Open recovered from.
func (s *Session) LoadWarnings() []error { return s.loadWarnings }

// Campuses returns the dashboard's pinned campus codes.
func (s *Session) Campuses() []string { return s.campuses }

// Clock returns the session's time source.
func (s *Session) Clock() clock.Clock { return s.clock }

// Files returns the record file paths.
func (s *Session) Files() datfile.Paths { return s.files }

// ReportPath returns the configured report file path.
func (s *Session) ReportPath() string { return s.reportPath }

// LastFlush returns when Flush last succeeded, or the zero time.
func (s *Session) LastFlush() time.Time { return s.lastFlush }

// Flush writes both record files. On failure the error is logged and
// returned; the in-memory store is unchanged.
func (s *Session) Flush() error {
	if err := datfile.Save(s.files, s.Registry.Dataset()); err != nil {
		s.logger.Warn("flush failed", "error", err)
		return err
	}
	s.lastFlush = s.clock.Now()
	return nil
}

// Dashboard summarizes the current store.
func (s *Session) Dashboard() query.Summary {
	return query.Dashboard(s.Registry.Students, s.Registry.Tickets)
}

// WriteReport renders every student, in collection order, to path in
// the given format, replacing the file atomically. An empty path
// means the configured report path. Returns the path written.
func (s *Session) WriteReport(path string, format query.Format) (string, error) {
	if path == "" {
		path = s.reportPath
	}
	if path == "" {
		return "", errors.New("no report path configured")
	}

	var buffer bytes.Buffer
	students := s.Registry.Students.Records()
	if err := query.WriteReport(&buffer, format, students); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	if err := atomic.WriteFile(path, &buffer); err != nil {
		s.logger.Warn("report export failed", "path", path, "error", err)
		return "", fmt.Errorf("writing report %s: %w", path, err)
	}
	s.logger.Info("report exported", "path", path, "format", string(format), "students", len(students))
	return path, nil
}

// Replace swaps in a complete dataset after validating it, then
// flushes. Used by restore and import paths that build a dataset
// outside the registry. On a validation error nothing changes; a flush
// error is returned with the new data already in memory.
func (s *Session) Replace(dataset schema.Dataset) error {
	if err := s.Registry.Replace(dataset); err != nil {
		return err
	}
	s.logger.Info("records replaced",
		"students", len(dataset.Students),
		"tickets", len(dataset.Tickets),
	)
	return s.Flush()
}
