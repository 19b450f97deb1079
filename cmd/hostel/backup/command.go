// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package backup

import "github.com/bureau-foundation/hostel/cmd/hostel/cli"

// Command returns the "backup" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "backup",
		Summary: "Create, inspect and restore snapshots",
		Description: `A snapshot is a single file holding every student and ticket. It is
CBOR-encoded, compressed, and optionally sealed with age so that only
holders of a matching identity can restore it. A BLAKE3 digest of the
payload is checked on restore.`,
		Subcommands: []*cli.Command{
			createCommand(),
			inspectCommand(),
			restoreCommand(),
			keygenCommand(),
		},
	}
}
