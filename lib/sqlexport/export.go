// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlexport copies the record store into a SQLite database so
// it can be queried with ordinary SQL tools.
//
// The database has a students table with one TEXT column per student
// field (named as in schema.Fields) plus id and is_active, and a
// tickets table. Each export replaces every row inside one immediate
// transaction, so a reader never sees a half-written roster.
package sqlexport

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/bureau-foundation/hostel/lib/schema"
	"github.com/bureau-foundation/hostel/lib/sqlitepool"
)

// Result counts the exported rows.
type Result struct {
	Path     string `json:"path"`
	Students int    `json:"students"`
	Tickets  int    `json:"tickets"`
}

// Export writes dataset to the database at path, creating it if
// needed and replacing any rows from a previous export.
func Export(ctx context.Context, path string, dataset schema.Dataset, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:   path,
		Logger: logger,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, schemaSQL, nil)
		},
	})
	if err != nil {
		return Result{}, err
	}

	result, err := write(ctx, pool, dataset)
	if closeErr := pool.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return Result{}, fmt.Errorf("exporting to %s: %w", path, err)
	}
	result.Path = path
	logger.Info("sqlite export written", "path", path, "students", result.Students, "tickets", result.Tickets)
	return result, nil
}

func write(ctx context.Context, pool *sqlitepool.Pool, dataset schema.Dataset) (result Result, err error) {
	conn, err := pool.Take(ctx)
	if err != nil {
		return Result{}, err
	}
	defer pool.Put(conn)

	endFn, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return Result{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer endFn(&err)

	if err = sqlitex.ExecuteScript(conn, "DELETE FROM tickets; DELETE FROM students;", nil); err != nil {
		return Result{}, fmt.Errorf("clearing previous export: %w", err)
	}

	for index := range dataset.Students {
		student := &dataset.Students[index]
		args := make([]any, 0, len(schema.Fields)+2)
		args = append(args, int64(student.ID))
		for _, field := range schema.Fields {
			args = append(args, field.Get(student))
		}
		args = append(args, activeFlag(student.Active))
		if err = sqlitex.Execute(conn, insertStudentSQL, &sqlitex.ExecOptions{Args: args}); err != nil {
			return Result{}, fmt.Errorf("inserting student %d: %w", student.ID, err)
		}
		result.Students++
	}

	for _, ticket := range dataset.Tickets {
		err = sqlitex.Execute(conn, insertTicketSQL, &sqlitex.ExecOptions{
			Args: []any{int64(ticket.ID), int64(ticket.StudentID), ticket.StudentName, ticket.Issue, string(ticket.Status)},
		})
		if err != nil {
			return Result{}, fmt.Errorf("inserting ticket %d: %w", ticket.ID, err)
		}
		result.Tickets++
	}
	return result, nil
}

var (
	schemaSQL        = buildSchema()
	insertStudentSQL = buildInsertStudent()
)

const insertTicketSQL = `INSERT INTO tickets (ticket_id, student_id, student_name, issue, status) VALUES (?, ?, ?, ?, ?)`

func buildSchema() string {
	var builder strings.Builder
	builder.WriteString("CREATE TABLE IF NOT EXISTS students (\n\tid INTEGER PRIMARY KEY")
	for _, field := range schema.Fields {
		fmt.Fprintf(&builder, ",\n\t%s TEXT NOT NULL", field.Name)
	}
	builder.WriteString(",\n\tis_active INTEGER NOT NULL\n);\n")
	builder.WriteString(`CREATE TABLE IF NOT EXISTS tickets (
	ticket_id INTEGER PRIMARY KEY,
	student_id INTEGER NOT NULL,
	student_name TEXT NOT NULL,
	issue TEXT NOT NULL,
	status TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS tickets_by_student ON tickets (student_id);
CREATE INDEX IF NOT EXISTS students_by_campus ON students (campus);
`)
	return builder.String()
}

func buildInsertStudent() string {
	columns := make([]string, 0, len(schema.Fields)+2)
	columns = append(columns, "id")
	for _, field := range schema.Fields {
		columns = append(columns, field.Name)
	}
	columns = append(columns, "is_active")
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	return fmt.Sprintf("INSERT INTO students (%s) VALUES (%s)", strings.Join(columns, ", "), placeholders)
}

func activeFlag(active bool) int64 {
	if active {
		return 1
	}
	return 0
}
