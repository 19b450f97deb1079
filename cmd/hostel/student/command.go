// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package student

import "github.com/bureau-foundation/hostel/cmd/hostel/cli"

// Command returns the "student" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "student",
		Summary: "Register, find and update student records",
		Description: `Manage the student roster.

Students are identified by a numeric ID chosen at registration. Deleting
a student only marks the record inactive; it stays in the roster, in
reports and in campus listings. Every command that changes the roster
saves both record files before returning.`,
		Subcommands: []*cli.Command{
			registerCommand(),
			showCommand(),
			listCommand(),
			searchCommand(),
			campusCommand(),
			updateCommand(),
			deleteCommand(),
			sortCommand(),
			importCommand(),
		},
	}
}
