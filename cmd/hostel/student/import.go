// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package student

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/hostel/cmd/hostel/cli"
	"github.com/bureau-foundation/hostel/lib/importer"
)

type importParams struct {
	cli.StoreFlags
	cli.JSONOutput
}

func importCommand() *cli.Command {
	var params importParams

	return &cli.Command{
		Name:    "import",
		Summary: "Register students from a JSONC file",
		Description: `Register every student in FILE, a JSON array of student objects with
the snake_case field names (id, name, room_no, ...). Comments and
trailing commas are allowed.

Records are registered in file order with the same checks as
"student register". A rejected record does not stop the import; the
outcome of every record is printed and the command exits 1 if any was
rejected.`,
		Usage: "hostel student import FILE [flags]",
		Examples: []cli.Example{
			{
				Description: "Import the new intake",
				Command:     "hostel student import intake-2026.jsonc",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 1, "hostel student import FILE"); err != nil {
				return err
			}
			students, err := importer.ReadFile(args[0])
			if err != nil {
				return cli.Validation("%w", err)
			}
			store, err := params.Open(ctx, logger)
			if err != nil {
				return err
			}

			report := importer.Import(store.Session.Registry.Students, students)
			if report.Registered > 0 {
				if err := store.Flush(); err != nil {
					return err
				}
			}
			store.Logger.Info("import finished",
				"file", args[0],
				"registered", report.Registered,
				"rejected", report.Rejected,
			)

			out := cli.StreamsFrom(ctx).Out
			if done, err := params.EmitJSON(out, report); done {
				if err != nil {
					return err
				}
			} else {
				for _, outcome := range report.Outcomes {
					if outcome.Error == "" {
						fmt.Fprintf(out, "REGISTERED  #%d  %d %s\n", outcome.Index+1, outcome.ID, outcome.Name)
					} else {
						fmt.Fprintf(out, "REJECTED    #%d  %d %s: %s\n", outcome.Index+1, outcome.ID, outcome.Name, outcome.Error)
					}
				}
				fmt.Fprintf(out, "%d registered, %d rejected.\n", report.Registered, report.Rejected)
			}

			if report.Rejected > 0 {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}
