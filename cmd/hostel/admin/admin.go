// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package admin holds operator commands that do not touch the records.
package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/hostel/cmd/hostel/cli"
	"github.com/bureau-foundation/hostel/lib/secret"
)

// Command returns the "admin" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "admin",
		Summary: "Operator utilities",
		Subcommands: []*cli.Command{
			hashPasswordCommand(),
		},
	}
}

type hashPasswordParams struct {
	PasswordFile string `json:"-" flag:"password-file" desc:"read the password from this file, or '-' for the first line of stdin" default:"-"`
	Cost         int    `json:"-" flag:"cost" desc:"bcrypt cost" default:"12"`
}

func hashPasswordCommand() *cli.Command {
	var params hashPasswordParams

	return &cli.Command{
		Name:    "hash-password",
		Summary: "Print a bcrypt hash for admin.password_hash",
		Description: `Read an admin password and print its bcrypt hash, suitable for the
admin.password_hash configuration key. Production configurations must
use a hash; a plain admin.password is rejected there.

The password is never accepted as a command-line argument.`,
		Usage: "hostel admin hash-password [--password-file FILE|-]",
		Examples: []cli.Example{
			{
				Description: "Hash a password typed on stdin",
				Command:     "hostel admin hash-password < /dev/tty",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 0, "hostel admin hash-password [--password-file FILE|-]"); err != nil {
				return err
			}
			streams := cli.StreamsFrom(ctx)
			password, err := secret.ReadFromPath(params.PasswordFile, streams.In)
			if err != nil {
				return cli.Validation("reading password: %w", err)
			}
			defer secret.Zero(password)

			hash, err := secret.HashWithCost(password, params.Cost)
			if err != nil {
				return cli.Validation("%w", err)
			}
			fmt.Fprintln(streams.Out, hash)
			return nil
		},
	}
}
