// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import "github.com/bureau-foundation/hostel/cmd/hostel/cli"

// Command returns the "report" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "report",
		Summary: "Dashboard counts and roster exports",
		Subcommands: []*cli.Command{
			dashboardCommand(),
			exportCommand(),
			sqliteCommand(),
		},
	}
}
