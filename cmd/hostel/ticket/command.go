// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import "github.com/bureau-foundation/hostel/cmd/hostel/cli"

// Command returns the "ticket" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "ticket",
		Summary: "Raise and track maintenance issues",
		Description: `Raise and track maintenance issues.

A ticket is raised against an active student, starts OPEN, and moves
freely between OPEN, IN_PROGRESS and RESOLVED. Ticket IDs are assigned
in sequence and never reused.`,
		Subcommands: []*cli.Command{
			raiseCommand(),
			showCommand(),
			listCommand(),
			statusCommand(),
		},
	}
}
