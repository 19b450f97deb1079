// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
)

// NewCommandLogger creates a structured logger for CLI command operations
// writing to w. Format "text" and "json" force a handler; "auto" (or
// empty) uses slog.TextHandler when w is a terminal for human-readable
// output, and slog.JSONHandler when it is piped or redirected (scripts,
// cron, tests) for machine-parseable output.
//
// Callers scope the logger with command-specific context via With():
//
//	logger := logger.With(
//	    "student", params.ID,
//	)
func NewCommandLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var slogLevel slog.Level
	if level != "" {
		if err := slogLevel.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
	}
	options := &slog.HandlerOptions{Level: slogLevel}

	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, options)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, options)), nil
	case "", "auto":
		if IsTerminal(w) {
			return slog.New(slog.NewTextHandler(w, options)), nil
		}
		return slog.New(slog.NewJSONHandler(w, options)), nil
	default:
		return nil, fmt.Errorf("log format %q: want auto, text or json", format)
	}
}
