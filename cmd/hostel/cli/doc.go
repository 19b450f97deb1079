// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the hostel CLI.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a params struct whose tagged
// fields become pflag flags (see [BindFlags]), and a Run function.
// Commands are assembled into a tree in cmd/hostel/commands and
// dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// Commands reach the record store through [StoreFlags], which adds the
// --config flag and opens a [hostel.Session] from the loaded
// configuration. Errors from the store are mapped to categorized
// [ToolError] values by [StoreError].
//
// Output goes to the [Streams] carried on the context, so tests can
// capture it. [JSONOutput] adds --json to a command; on a terminal the
// JSON is colorized with chroma.
package cli
