// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// Streams are the standard streams and logger a command runs with.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Logger is handed to Run, scoped with the command path. Nil
	// means a logger on Err, rebuilt from the configuration once a
	// command opens the store.
	Logger *slog.Logger
}

type streamsKey struct{}

// WithStreams returns a context carrying streams for [Command.Execute].
func WithStreams(ctx context.Context, streams Streams) context.Context {
	return context.WithValue(ctx, streamsKey{}, streams)
}

// StreamsFrom returns the streams on ctx. Unset streams default to the
// process's stdin, stdout and stderr.
func StreamsFrom(ctx context.Context) Streams {
	streams, _ := ctx.Value(streamsKey{}).(Streams)
	if streams.In == nil {
		streams.In = os.Stdin
	}
	if streams.Out == nil {
		streams.Out = os.Stdout
	}
	if streams.Err == nil {
		streams.Err = os.Stderr
	}
	return streams
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w any) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
