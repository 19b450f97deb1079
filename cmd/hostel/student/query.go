// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package student

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"text/tabwriter"

	"github.com/bureau-foundation/hostel/cmd/hostel/cli"
	"github.com/bureau-foundation/hostel/lib/query"
	"github.com/bureau-foundation/hostel/lib/schema"
)

// --- show ---

type showParams struct {
	cli.StoreFlags
	cli.JSONOutput
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Show every field of one student",
		Usage:   "hostel student show ID [flags]",
		Examples: []cli.Example{
			{
				Description: "Show student 101",
				Command:     "hostel student show 101",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 1, "hostel student show ID"); err != nil {
				return err
			}
			id, err := cli.ParseID("student", args[0])
			if err != nil {
				return err
			}
			store, err := params.Open(ctx, logger)
			if err != nil {
				return err
			}

			student, ok := store.Session.Registry.Students.Get(id)
			if !ok {
				return cli.NotFound("student %d not found", id).
					WithHint("Run 'hostel student list' to see registered students.")
			}

			out := cli.StreamsFrom(ctx).Out
			if done, err := params.EmitJSON(out, student); done {
				return err
			}
			return writeStudentDetail(out, student)
		},
	}
}

// --- list ---

type listParams struct {
	cli.StoreFlags
	cli.JSONOutput
	Active bool `json:"active" flag:"active,a" desc:"only active students"`
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List students in roster order",
		Description: `List the roster in its current order (registration order, or the
order left by the last sort). Inactive students are included unless
--active is given.`,
		Usage: "hostel student list [flags]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 0, "hostel student list [--active]"); err != nil {
				return err
			}
			store, err := params.Open(ctx, logger)
			if err != nil {
				return err
			}

			students := store.Session.Registry.Students
			sequence := students.All()
			if params.Active {
				sequence = students.Active()
			}
			return emitStudents(ctx, &params.JSONOutput, slices.Collect(sequence), store.Logger)
		},
	}
}

// --- search ---

type searchParams struct {
	cli.StoreFlags
	cli.JSONOutput
	Fuzzy bool `json:"fuzzy" flag:"fuzzy,f" desc:"rank by fuzzy match instead of substring"`
}

type rankedEntry struct {
	Score   int            `json:"score"`
	Student schema.Student `json:"student"`
}

func searchCommand() *cli.Command {
	var params searchParams

	return &cli.Command{
		Name:    "search",
		Summary: "Find students by name",
		Description: `Find students whose name contains TEXT. The match is case-sensitive
and byte-wise, as in the interactive shell.

With --fuzzy the whole roster is ranked by an fzf-style fuzzy match on
the name, case-insensitively, best match first.`,
		Usage: "hostel student search TEXT [flags]",
		Examples: []cli.Example{
			{
				Description: "Students whose name contains RAZA",
				Command:     "hostel student search RAZA",
			},
			{
				Description: "Fuzzy search tolerant of gaps",
				Command:     "hostel student search --fuzzy alrz",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 1, "hostel student search TEXT [--fuzzy]"); err != nil {
				return err
			}
			store, err := params.Open(ctx, logger)
			if err != nil {
				return err
			}
			students := store.Session.Registry.Students

			if !params.Fuzzy {
				return emitStudents(ctx, &params.JSONOutput, slices.Collect(students.SearchName(args[0])), store.Logger)
			}

			ranked := query.FuzzyNames(students.Records(), args[0])
			entries := make([]rankedEntry, len(ranked))
			for index, match := range ranked {
				entries[index] = rankedEntry{Score: match.Match.Score, Student: match.Student}
			}
			out := cli.StreamsFrom(ctx).Out
			if done, err := params.EmitJSON(out, entries); done {
				return err
			}
			if len(entries) == 0 {
				store.Logger.Info("no students matched", "pattern", args[0])
				return nil
			}
			writer := tabwriter.NewWriter(out, 2, 0, 3, ' ', 0)
			fmt.Fprintf(writer, "SCORE\tID\tNAME\tROOM\tCAMPUS\n")
			for _, entry := range entries {
				fmt.Fprintf(writer, "%d\t%d\t%s\t%s\t%s\n",
					entry.Score, entry.Student.ID, entry.Student.Name, entry.Student.RoomNo, entry.Student.Campus)
			}
			return writer.Flush()
		},
	}
}

// --- campus ---

type campusParams struct {
	cli.StoreFlags
	cli.JSONOutput
}

func campusCommand() *cli.Command {
	var params campusParams

	return &cli.Command{
		Name:    "campus",
		Summary: "List the students of one campus",
		Description: `List every student whose campus code equals CODE exactly, active or
inactive.`,
		Usage: "hostel student campus CODE [flags]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 1, "hostel student campus CODE"); err != nil {
				return err
			}
			store, err := params.Open(ctx, logger)
			if err != nil {
				return err
			}
			students := slices.Collect(store.Session.Registry.Students.FilterCampus(args[0]))
			return emitStudents(ctx, &params.JSONOutput, students, store.Logger)
		},
	}
}

// emitStudents writes students as JSON or as a table.
func emitStudents(ctx context.Context, output *cli.JSONOutput, students []schema.Student, logger *slog.Logger) error {
	out := cli.StreamsFrom(ctx).Out
	if done, err := output.EmitJSON(out, students); done {
		return err
	}
	if len(students) == 0 {
		logger.Info("no students found")
		return nil
	}
	return writeStudentTable(out, students)
}
