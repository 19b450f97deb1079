// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"context"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/bureau-foundation/hostel/cmd/hostel/cli"
	"github.com/bureau-foundation/hostel/lib/query"
	"github.com/bureau-foundation/hostel/lib/sqlexport"
)

// --- dashboard ---

type dashboardParams struct {
	cli.StoreFlags
	cli.JSONOutput
}

// dashboardResult is the --json form: the summary plus the campus rows
// in display order.
type dashboardResult struct {
	query.Summary
	Campuses []query.CampusCount `json:"campuses"`
}

func dashboardCommand() *cli.Command {
	var params dashboardParams

	return &cli.Command{
		Name:    "dashboard",
		Summary: "Print roster and ticket counts",
		Description: `Print the dashboard: total and active students, students per campus
(the configured campuses first, even at zero), and tickets by status.
Inactive students count toward their campus.`,
		Usage:  "hostel report dashboard [flags]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 0, "hostel report dashboard"); err != nil {
				return err
			}
			store, err := params.Open(ctx, logger)
			if err != nil {
				return err
			}

			summary := store.Session.Dashboard()
			rows := summary.CampusRows(store.Session.Campuses())

			out := cli.StreamsFrom(ctx).Out
			if done, err := params.EmitJSON(out, dashboardResult{Summary: summary, Campuses: rows}); done {
				return err
			}

			writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(writer, "TOTAL STUDENTS:\t%d\n", summary.TotalStudents)
			fmt.Fprintf(writer, "ACTIVE STUDENTS:\t%d\n", summary.ActiveStudents)
			for _, row := range rows {
				label := "NO CAMPUS"
				if row.Campus != "" {
					label = "CAMPUS " + row.Campus
				}
				fmt.Fprintf(writer, "%s STUDENTS:\t%d\n", label, row.Count)
			}
			fmt.Fprintf(writer, "TOTAL ISSUES:\t%d\n", summary.TotalTickets)
			fmt.Fprintf(writer, "OPEN ISSUES:\t%d\n", summary.OpenTickets)
			fmt.Fprintf(writer, "IN PROGRESS ISSUES:\t%d\n", summary.InProgressTickets)
			fmt.Fprintf(writer, "RESOLVED ISSUES:\t%d\n", summary.ResolvedTickets)
			return writer.Flush()
		},
	}
}

// --- export ---

type exportParams struct {
	cli.StoreFlags
	cli.JSONOutput
	Format string `json:"format" flag:"format,f" desc:"report format: text, markdown or html" default:"text"`
	Output string `json:"output" flag:"output,o" desc:"output file (default paths.report_file from the config)"`
}

type exportResult struct {
	Path     string `json:"path"`
	Format   string `json:"format"`
	Students int    `json:"students"`
}

func exportCommand() *cli.Command {
	var params exportParams

	return &cli.Command{
		Name:    "export",
		Summary: "Write the student report file",
		Description: `Write every student, in roster order, active or not, to the report
file. The text format is the classic report; markdown gives one section
per student with a field table, and html renders that markdown.

The file is replaced atomically.`,
		Usage: "hostel report export [--format text|markdown|html] [--output PATH]",
		Examples: []cli.Example{
			{
				Description: "Classic text report at the configured path",
				Command:     "hostel report export",
			},
			{
				Description: "HTML report for the warden's office",
				Command:     "hostel report export --format html --output roster.html",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 0, "hostel report export [--format F] [--output PATH]"); err != nil {
				return err
			}
			format, err := query.ParseFormat(params.Format)
			if err != nil {
				return cli.Validation("%w", err)
			}
			store, err := params.Open(ctx, logger)
			if err != nil {
				return err
			}

			path, err := store.Session.WriteReport(params.Output, format)
			if err != nil {
				return cli.Internal("%w", err)
			}

			out := cli.StreamsFrom(ctx).Out
			result := exportResult{Path: path, Format: string(format), Students: store.Session.Registry.Students.Len()}
			if done, err := params.EmitJSON(out, result); done {
				return err
			}
			fmt.Fprintf(out, "STUDENT REPORT EXPORTED TO FILE: %s\n", path)
			return nil
		},
	}
}

// --- sqlite ---

type sqliteParams struct {
	cli.StoreFlags
	cli.JSONOutput
	Output string `json:"output" flag:"output,o" desc:"database file to write" required:"true"`
}

func sqliteCommand() *cli.Command {
	var params sqliteParams

	return &cli.Command{
		Name:    "sqlite",
		Summary: "Export students and tickets to a SQLite database",
		Description: `Write the roster and the tickets into the "students" and "tickets"
tables of a SQLite database, for ad-hoc queries. An existing database
is reused and its rows are replaced in one transaction.`,
		Usage: "hostel report sqlite --output PATH [flags]",
		Examples: []cli.Example{
			{
				Description: "Export, then count students per department",
				Command:     "hostel report sqlite -o hostel.db && sqlite3 hostel.db 'SELECT dept, COUNT(*) FROM students GROUP BY dept'",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 0, "hostel report sqlite --output PATH"); err != nil {
				return err
			}
			store, err := params.Open(ctx, logger)
			if err != nil {
				return err
			}

			result, err := sqlexport.Export(ctx, params.Output, store.Session.Registry.Dataset(), store.Logger)
			if err != nil {
				return cli.Internal("%w", err)
			}

			out := cli.StreamsFrom(ctx).Out
			if done, err := params.EmitJSON(out, result); done {
				return err
			}
			fmt.Fprintf(out, "EXPORTED %d STUDENTS AND %d TICKETS TO %s\n", result.Students, result.Tickets, result.Path)
			return nil
		},
	}
}
