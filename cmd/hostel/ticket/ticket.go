// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/bureau-foundation/hostel/cmd/hostel/cli"
	"github.com/bureau-foundation/hostel/lib/schema"
)

// --- raise ---

type raiseParams struct {
	cli.StoreFlags
	cli.JSONOutput
	Student int32  `json:"student" flag:"student,s" desc:"ID of the student raising the issue" required:"true"`
	Issue   string `json:"issue"   flag:"issue,i"   desc:"issue description (at most 199 bytes)" required:"true"`
}

func raiseCommand() *cli.Command {
	var params raiseParams

	return &cli.Command{
		Name:    "raise",
		Summary: "Raise a maintenance issue for a student",
		Description: `Raise an OPEN ticket for an active student. The student's current name
is copied into the ticket.`,
		Usage: "hostel ticket raise --student ID --issue TEXT [flags]",
		Examples: []cli.Example{
			{
				Description: "Report a leaking tap for student 101",
				Command:     "hostel ticket raise --student 101 --issue 'LEAKING TAP IN A-101'",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 0, "hostel ticket raise --student ID --issue TEXT"); err != nil {
				return err
			}
			store, err := params.Open(ctx, logger)
			if err != nil {
				return err
			}

			ticket, err := store.Session.Registry.RaiseTicket(params.Student, params.Issue)
			if err != nil {
				return cli.StoreError(err)
			}
			if err := store.Flush(); err != nil {
				return err
			}
			store.Logger.Info("ticket raised", "ticket", ticket.ID, "student", ticket.StudentID)

			out := cli.StreamsFrom(ctx).Out
			if done, err := params.EmitJSON(out, ticket); done {
				return err
			}
			fmt.Fprintf(out, "ISSUE RAISED. TICKET ID: %d\n", ticket.ID)
			return nil
		},
	}
}

// --- show ---

type showParams struct {
	cli.StoreFlags
	cli.JSONOutput
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Show one ticket",
		Usage:   "hostel ticket show ID [flags]",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 1, "hostel ticket show ID"); err != nil {
				return err
			}
			id, err := cli.ParseID("ticket", args[0])
			if err != nil {
				return err
			}
			store, err := params.Open(ctx, logger)
			if err != nil {
				return err
			}

			ticket, ok := store.Session.Registry.Tickets.Get(id)
			if !ok {
				return cli.NotFound("ticket %d not found", id).
					WithHint("Run 'hostel ticket list' to see raised tickets.")
			}

			out := cli.StreamsFrom(ctx).Out
			if done, err := params.EmitJSON(out, ticket); done {
				return err
			}
			return writeTicketDetail(out, ticket)
		},
	}
}

// --- list ---

type listParams struct {
	cli.StoreFlags
	cli.JSONOutput
	Open    bool  `json:"open"    flag:"open,o"    desc:"only OPEN tickets (IN_PROGRESS is not open)"`
	Student int32 `json:"student" flag:"student,s" desc:"only tickets of this student"`
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List tickets in creation order",
		Usage:   "hostel ticket list [--open] [--student ID] [flags]",
		Examples: []cli.Example{
			{
				Description: "Tickets still waiting for attention",
				Command:     "hostel ticket list --open",
			},
			{
				Description: "Every ticket of student 101",
				Command:     "hostel ticket list --student 101",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 0, "hostel ticket list [--open] [--student ID]"); err != nil {
				return err
			}
			store, err := params.Open(ctx, logger)
			if err != nil {
				return err
			}

			registry := store.Session.Registry
			sequence := registry.Tickets.All()
			if params.Student != 0 {
				if _, ok := registry.Students.Get(params.Student); !ok {
					return cli.NotFound("student %d not found", params.Student)
				}
				sequence = registry.Tickets.ForStudent(params.Student)
			}
			tickets := slices.Collect(sequence)
			if params.Open {
				tickets = slices.DeleteFunc(tickets, func(ticket schema.Ticket) bool {
					return ticket.Status != schema.StatusOpen
				})
			}

			out := cli.StreamsFrom(ctx).Out
			if done, err := params.EmitJSON(out, tickets); done {
				return err
			}
			if len(tickets) == 0 {
				store.Logger.Info("no tickets found")
				return nil
			}
			return writeTicketTable(out, tickets)
		},
	}
}

// --- status ---

type statusParams struct {
	cli.StoreFlags
	cli.JSONOutput
}

func statusCommand() *cli.Command {
	var params statusParams

	return &cli.Command{
		Name:    "status",
		Summary: "Set a ticket's status",
		Description: `Move a ticket to STATUS: open, in_progress or resolved (any case;
hyphens and spaces work as separators). Every transition is allowed,
including reopening a resolved ticket.`,
		Usage: "hostel ticket status ID STATUS [flags]",
		Examples: []cli.Example{
			{
				Description: "Start work on ticket 3",
				Command:     "hostel ticket status 3 in-progress",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 2, "hostel ticket status ID STATUS"); err != nil {
				return err
			}
			id, err := cli.ParseID("ticket", args[0])
			if err != nil {
				return err
			}
			status, err := schema.ParseTicketStatus(args[1])
			if err != nil {
				return cli.Validation("%w", err)
			}
			store, err := params.Open(ctx, logger)
			if err != nil {
				return err
			}

			tickets := store.Session.Registry.Tickets
			if err := tickets.SetStatus(id, status); err != nil {
				return cli.StoreError(err)
			}
			if err := store.Flush(); err != nil {
				return err
			}
			store.Logger.Info("ticket status changed", "ticket", id, "status", status)

			out := cli.StreamsFrom(ctx).Out
			ticket, _ := tickets.Get(id)
			if done, err := params.EmitJSON(out, ticket); done {
				return err
			}
			fmt.Fprintf(out, "TICKET %d STATUS: %s\n", id, status)
			return nil
		},
	}
}

func writeTicketTable(w io.Writer, tickets []schema.Ticket) error {
	writer := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintf(writer, "TID\tSTU_ID\tSTUDENT NAME\tSTATUS\tISSUE\n")
	for _, ticket := range tickets {
		fmt.Fprintf(writer, "%d\t%d\t%s\t%s\t%s\n",
			ticket.ID,
			ticket.StudentID,
			ticket.StudentName,
			ticket.Status,
			truncate(ticket.Issue, 60),
		)
	}
	return writer.Flush()
}

func writeTicketDetail(w io.Writer, ticket schema.Ticket) error {
	writer := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "TICKET ID:\t%d\n", ticket.ID)
	fmt.Fprintf(writer, "STUDENT ID:\t%d\n", ticket.StudentID)
	fmt.Fprintf(writer, "STUDENT NAME:\t%s\n", ticket.StudentName)
	fmt.Fprintf(writer, "ISSUE:\t%s\n", ticket.Issue)
	fmt.Fprintf(writer, "STATUS:\t%s\n", ticket.Status)
	return writer.Flush()
}

// truncate shortens text to at most width runes, marking the cut with
// an ellipsis.
func truncate(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	return strings.TrimSpace(string(runes[:width-1])) + "…"
}
