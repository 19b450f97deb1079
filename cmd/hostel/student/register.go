// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package student

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/hostel/cmd/hostel/cli"
	"github.com/bureau-foundation/hostel/lib/schema"
)

type registerParams struct {
	cli.StoreFlags
	cli.JSONOutput
	ID     int32      `json:"id"   flag:"id"   desc:"student ID (unique)" required:"true"`
	Name   string     `json:"name" flag:"name" desc:"full name (at most 49 bytes)" required:"true"`
	Fields fieldFlags `json:"-"`
}

func registerCommand() *cli.Command {
	var params registerParams

	return &cli.Command{
		Name:    "register",
		Summary: "Register a new student",
		Description: `Add a student to the roster. The ID must not already be in use, by an
active or an inactive student. Every field other than the name is
optional and may be updated later; values longer than the field's
record slot are rejected rather than truncated.

New students are always active.`,
		Usage: "hostel student register --id ID --name NAME [field flags]",
		Examples: []cli.Example{
			{
				Description: "Register a student in room A-101",
				Command:     "hostel student register --id 101 --name 'ALI RAZA' --room-no A-101 --campus A",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 0, "hostel student register --id ID --name NAME [field flags]"); err != nil {
				return err
			}
			store, err := params.Open(ctx, logger)
			if err != nil {
				return err
			}

			student := schema.Student{ID: params.ID}
			params.Fields.apply(&student)
			student.Name = params.Name

			registered, err := store.Session.Registry.Students.Register(student)
			if err != nil {
				return cli.StoreError(err)
			}
			if err := store.Flush(); err != nil {
				return err
			}
			store.Logger.Info("student registered", "student", registered.ID)

			out := cli.StreamsFrom(ctx).Out
			if done, err := params.EmitJSON(out, registered); done {
				return err
			}
			fmt.Fprintf(out, "STUDENT %d REGISTERED.\n", registered.ID)
			return nil
		},
	}
}
