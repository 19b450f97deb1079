// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package student

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bureau-foundation/hostel/cmd/hostel/cli"
	"github.com/bureau-foundation/hostel/lib/schema"
)

// --- update ---

type updateParams struct {
	cli.StoreFlags
	cli.JSONOutput
	Field    string `json:"field"    flag:"field"    desc:"field name (e.g. room_no, phone, fee_status)"`
	Category string `json:"category" flag:"category" desc:"field category (basic, contact, academic, hostel, personal, fee)"`
	Option   int    `json:"option"   flag:"option"   desc:"1-based field number within --category"`
	Value    string `json:"value"    flag:"value"    desc:"new value" required:"true"`
}

func updateCommand() *cli.Command {
	var params updateParams

	return &cli.Command{
		Name:    "update",
		Summary: "Change one field of a student",
		Description: `Overwrite one field of a student, active or inactive. Name the field
directly with --field, or pick it the way the shell's update menu does
with --category and --option.

District, state and pincode are fixed at registration and cannot be
updated.`,
		Usage: "hostel student update ID (--field NAME | --category C --option N) --value V",
		Examples: []cli.Example{
			{
				Description: "Move a student to another room",
				Command:     "hostel student update 101 --field room_no --value B-204",
			},
			{
				Description: "Same change through the hostel category (option 1 is the room)",
				Command:     "hostel student update 101 --category hostel --option 1 --value B-204",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 1, "hostel student update ID --field NAME --value V"); err != nil {
				return err
			}
			id, err := cli.ParseID("student", args[0])
			if err != nil {
				return err
			}
			if (params.Field == "") == (params.Category == "") {
				return cli.Validation("give exactly one of --field or --category")
			}

			store, err := params.Open(ctx, logger)
			if err != nil {
				return err
			}
			students := store.Session.Registry.Students

			var field schema.Field
			if params.Field != "" {
				var ok bool
				field, ok = schema.FieldByName(params.Field)
				if !ok {
					return cli.Validation("unknown field %q", params.Field).
						WithHint("Updatable fields: " + strings.Join(updatableFieldNames(), ", "))
				}
				if err := students.UpdateField(id, field, params.Value); err != nil {
					return cli.StoreError(err)
				}
			} else {
				category, err := schema.ParseCategory(params.Category)
				if err != nil {
					return cli.Validation("%w", err)
				}
				var applied bool
				field, applied, err = students.UpdateSelected(id, category, params.Option, params.Value)
				if err != nil {
					return cli.StoreError(err)
				}
				if !applied {
					return cli.Validation("option %d is not a %s field (1-%d)",
						params.Option, category, len(schema.CategoryFields(category)))
				}
			}

			if err := store.Flush(); err != nil {
				return err
			}
			store.Logger.Info("student updated", "student", id, "field", field.Name)

			out := cli.StreamsFrom(ctx).Out
			student, _ := students.Get(id)
			if done, err := params.EmitJSON(out, student); done {
				return err
			}
			fmt.Fprintf(out, "STUDENT %d: %s UPDATED.\n", id, field.Label)
			return nil
		},
	}
}

func updatableFieldNames() []string {
	var names []string
	for _, field := range schema.Fields {
		if field.Updatable() {
			names = append(names, field.Name)
		}
	}
	return names
}

// --- delete ---

type deleteParams struct {
	cli.StoreFlags
	cli.JSONOutput
}

func deleteCommand() *cli.Command {
	var params deleteParams

	return &cli.Command{
		Name:    "delete",
		Summary: "Mark a student inactive",
		Description: `Soft-delete a student: the record stays in the roster with ACTIVE: NO.
Inactive students cannot raise tickets. Deleting an inactive student
succeeds and changes nothing.`,
		Usage:  "hostel student delete ID [flags]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 1, "hostel student delete ID"); err != nil {
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

			students := store.Session.Registry.Students
			if err := students.SoftDelete(id); err != nil {
				return cli.StoreError(err)
			}
			if err := store.Flush(); err != nil {
				return err
			}
			store.Logger.Info("student deactivated", "student", id)

			out := cli.StreamsFrom(ctx).Out
			student, _ := students.Get(id)
			if done, err := params.EmitJSON(out, student); done {
				return err
			}
			fmt.Fprintf(out, "STUDENT %d MARKED INACTIVE.\n", id)
			return nil
		},
	}
}

// --- sort ---

type sortParams struct {
	cli.StoreFlags
	cli.JSONOutput
	By string `json:"by" flag:"by" desc:"sort key: name or room" default:"name"`
}

func sortCommand() *cli.Command {
	var params sortParams

	return &cli.Command{
		Name:    "sort",
		Summary: "Reorder the roster by name or room",
		Description: `Reorder the stored roster by name or by room number. Keys compare
byte-wise; ties are broken by student ID. The new order is saved and
used by every later listing and report. A roster of fewer than two
students is left as it is.`,
		Usage:  "hostel student sort [--by name|room]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 0, "hostel student sort [--by name|room]"); err != nil {
				return err
			}
			store, err := params.Open(ctx, logger)
			if err != nil {
				return err
			}
			students := store.Session.Registry.Students

			var sorted bool
			switch params.By {
			case "name":
				sorted = students.SortByName()
			case "room":
				sorted = students.SortByRoom()
			default:
				return cli.Validation("unknown sort key %q (want name or room)", params.By)
			}

			out := cli.StreamsFrom(ctx).Out
			if !sorted {
				if params.OutputJSON {
					return cli.WriteJSON(out, students.Records())
				}
				fmt.Fprintln(out, "NOT ENOUGH STUDENTS TO SORT.")
				return nil
			}
			if err := store.Flush(); err != nil {
				return err
			}
			store.Logger.Info("roster sorted", "by", params.By, "students", students.Len())
			return emitStudents(ctx, &params.JSONOutput, students.Records(), store.Logger)
		},
	}
}
