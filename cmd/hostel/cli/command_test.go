// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func testContext(stderr *bytes.Buffer) context.Context {
	return WithStreams(context.Background(), Streams{
		Out:    &bytes.Buffer{},
		Err:    stderr,
		Logger: slog.New(slog.DiscardHandler),
	})
}

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "hostel",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "shell",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "shell"
					return nil
				},
			},
		},
	}

	if err := root.Execute(testContext(&bytes.Buffer{}), []string{"shell"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "shell" {
		t.Errorf("dispatched to %q, want %q", called, "shell")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "hostel",
		Subcommands: []*Command{
			{
				Name: "student",
				Subcommands: []*Command{
					{
						Name: "show",
						Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
							called = commandPath(ctx)
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(testContext(&bytes.Buffer{}), []string{"student", "show", "101"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "student/show" {
		t.Errorf("command path = %q, want %q", called, "student/show")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "101" {
		t.Errorf("args = %v, want [101]", receivedArgs)
	}
}

func TestCommand_Execute_ParamsParsing(t *testing.T) {
	type showParams struct {
		JSONOutput
		Campus string `flag:"campus" desc:"campus code" default:"A"`
	}
	var params showParams
	var target string

	command := &Command{
		Name:   "campus",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute(testContext(&bytes.Buffer{}), []string{"--campus", "B", "--json", "extra"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if params.Campus != "B" {
		t.Errorf("Campus = %q, want B", params.Campus)
	}
	if !params.OutputJSON {
		t.Error("OutputJSON = false, want true")
	}
	if target != "extra" {
		t.Errorf("target = %q, want extra", target)
	}
}

func TestCommand_Execute_RequiredFlag(t *testing.T) {
	type raiseParams struct {
		Student int32  `flag:"student" desc:"student ID" required:"true"`
		Issue   string `flag:"issue" desc:"issue text"`
	}
	var params raiseParams
	ran := false

	command := &Command{
		Name:   "raise",
		Params: func() any { return &params },
		Run: func(context.Context, []string, *slog.Logger) error {
			ran = true
			return nil
		},
	}

	err := command.Execute(testContext(&bytes.Buffer{}), []string{"--issue", "LEAK"})
	if err == nil {
		t.Fatal("expected error for missing --student")
	}
	if CategoryOf(err) != CategoryValidation {
		t.Errorf("category = %q, want validation", CategoryOf(err))
	}
	if !strings.Contains(err.Error(), "--student is required") {
		t.Errorf("error = %q, want it to name --student", err.Error())
	}
	if ran {
		t.Error("Run called despite missing required flag")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	type listParams struct {
		Active bool `flag:"active" desc:"only active students"`
	}
	var params listParams
	command := &Command{
		Name:   "list",
		Params: func() any { return &params },
		Run:    func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute(testContext(&bytes.Buffer{}), []string{"--actve"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --active?") {
		t.Errorf("error = %q, want a --active suggestion", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "hostel",
		Subcommands: []*Command{
			{Name: "student", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
			{Name: "ticket", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(testContext(&bytes.Buffer{}), []string{"studnet"})
	if err == nil {
		t.Fatal("expected error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "student"?`) {
		t.Errorf("error = %q, want a student suggestion", err.Error())
	}
	if !strings.Contains(err.Error(), "Run 'hostel --help' for usage.") {
		t.Errorf("error = %q, want the help hint", err.Error())
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	var stderr bytes.Buffer
	root := &Command{
		Name: "hostel",
		Subcommands: []*Command{
			{Name: "report", Summary: "Reports and exports"},
		},
	}
	err := root.Execute(testContext(&stderr), nil)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Fatalf("Execute(nil) = %v, want subcommand required", err)
	}
	if !strings.Contains(stderr.String(), "Reports and exports") {
		t.Errorf("help output missing subcommand summary:\n%s", stderr.String())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	type exportParams struct {
		Format string `flag:"format,f" desc:"report format" default:"text"`
	}
	var params exportParams
	var stderr bytes.Buffer
	command := &Command{
		Name:        "export",
		Description: "Write the student report.",
		Params:      func() any { return &params },
		Examples:    []Example{{Description: "HTML report", Command: "hostel report export --format html"}},
		Run:         func(context.Context, []string, *slog.Logger) error { return errors.New("should not run") },
	}

	if err := command.Execute(testContext(&stderr), []string{"--help"}); err != nil {
		t.Fatalf("Execute(--help) error: %v", err)
	}
	help := stderr.String()
	for _, want := range []string{"Write the student report.", "--format", "# HTML report"} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q:\n%s", want, help)
		}
	}
}
