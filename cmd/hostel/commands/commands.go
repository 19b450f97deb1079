// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete hostel CLI command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	admincmd "github.com/bureau-foundation/hostel/cmd/hostel/admin"
	backupcmd "github.com/bureau-foundation/hostel/cmd/hostel/backup"
	"github.com/bureau-foundation/hostel/cmd/hostel/cli"
	reportcmd "github.com/bureau-foundation/hostel/cmd/hostel/report"
	studentcmd "github.com/bureau-foundation/hostel/cmd/hostel/student"
	ticketcmd "github.com/bureau-foundation/hostel/cmd/hostel/ticket"
	"github.com/bureau-foundation/hostel/lib/browseui"
	"github.com/bureau-foundation/hostel/lib/secret"
	"github.com/bureau-foundation/hostel/lib/shell"
	"github.com/bureau-foundation/hostel/lib/version"
)

// Root builds and returns the complete hostel CLI command tree. Run
// with no subcommand, the root starts the interactive shell.
func Root() *cli.Command {
	var params shellParams

	return &cli.Command{
		Name: "hostel",
		Description: `hostel: student and maintenance-ticket records for a hostel office.

Run without a command to start the interactive menu shell. The
commands below do the same work non-interactively, for scripts and
cron jobs.`,
		Usage:  "hostel [--config FILE] [<command> [flags]]",
		Params: func() any { return &params },
		Run:    shellRun(&params),
		Subcommands: []*cli.Command{
			shellCommand(),
			studentcmd.Command(),
			ticketcmd.Command(),
			reportcmd.Command(),
			backupcmd.Command(),
			browseCommand(),
			admincmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
					fmt.Fprintf(cli.StreamsFrom(ctx).Out, "hostel %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Start the menu shell with a specific configuration",
				Command:     "hostel --config /etc/hostel/hostel.yaml",
			},
			{
				Description: "Register a student",
				Command:     "hostel student register --id 1 --name 'ASHA RAO' --room-no B-201 --campus A",
			},
			{
				Description: "Open tickets, as JSON",
				Command:     "hostel ticket list --open --json",
			},
			{
				Description: "Browse the records with a fuzzy filter",
				Command:     "hostel browse",
			},
		},
	}
}

type shellParams struct {
	cli.StoreFlags
}

func shellCommand() *cli.Command {
	var params shellParams

	return &cli.Command{
		Name:    "shell",
		Summary: "Interactive menu shell (the default)",
		Description: `Start the numbered-menu shell: register and search students, raise
tickets, view the dashboard and export the report. The admin portal
is gated by the configured admin password.

Records are saved after every change and again on exit.`,
		Usage:  "hostel shell [--config FILE]",
		Params: func() any { return &params },
		Run:    shellRun(&params),
	}
}

func shellRun(params *shellParams) func(context.Context, []string, *slog.Logger) error {
	return func(ctx context.Context, args []string, logger *slog.Logger) error {
		if err := cli.ExpectArgs(args, 0, "hostel shell [--config FILE]"); err != nil {
			return err
		}
		streams := cli.StreamsFrom(ctx)
		if streams.Logger == nil && cli.IsTerminal(streams.Err) {
			// Routine info events would interleave with the menus.
			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.Logging.Level == "debug" || cfg.Logging.Level == "info" {
				quiet, err := cli.NewCommandLogger(streams.Err, "warn", cfg.Logging.Format)
				if err != nil {
					return cli.Validation("%w", err)
				}
				streams.Logger = quiet.With("command", "shell")
				ctx = cli.WithStreams(ctx, streams)
				logger = streams.Logger
			}
		}

		store, err := params.Open(ctx, logger)
		if err != nil {
			return err
		}
		verifier, err := secret.NewVerifier(store.Config.Admin.Password, store.Config.Admin.PasswordHash)
		if err != nil {
			return cli.Validation("admin secret: %w", err)
		}
		if !verifier.Hashed() {
			store.Logger.Info("admin login checks a plain password; set admin.password_hash to store a bcrypt hash")
		}

		var readSecret func() ([]byte, error)
		if file, ok := streams.In.(*os.File); ok {
			readSecret = shell.TerminalSecretReader(file)
		}

		return shell.New(shell.Options{
			Session:     store.Session,
			Verifier:    verifier,
			MaxAttempts: store.Config.Admin.MaxAttempts,
			In:          streams.In,
			Out:         streams.Out,
			ReadSecret:  readSecret,
			Logger:      store.Logger,
		}).Run(ctx)
	}
}

type browseParams struct {
	cli.StoreFlags
}

func browseCommand() *cli.Command {
	var params browseParams

	return &cli.Command{
		Name:    "browse",
		Summary: "Full-screen read-only record browser",
		Description: `Browse students and tickets in a full-screen list with a detail pane.
Press / to fuzzy-filter, Tab to switch between students and tickets,
and q to quit. Nothing is modified.`,
		Usage:  "hostel browse [--config FILE]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 0, "hostel browse"); err != nil {
				return err
			}
			streams := cli.StreamsFrom(ctx)
			if !cli.IsTerminal(streams.Out) {
				return cli.Validation("browse needs a terminal").
					WithHint("Use 'hostel student list' or 'hostel ticket list' for scripted output.")
			}
			store, err := params.Open(ctx, logger)
			if err != nil {
				return err
			}
			return browseui.Run(ctx, store.Session.Registry.Dataset(), streams.In, streams.Out)
		},
	}
}
