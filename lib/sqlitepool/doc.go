// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool provides the standard SQLite connection pool.
//
// It wraps zombiezen.com/go/sqlite with fixed defaults so every
// database the hostel tools write is configured the same way. Callers
// [Pool.Take] a connection, perform work, and [Pool.Put] it back.
// Connections are not safe for concurrent use.
//
// # Pragmas
//
// Every connection is initialized with:
//
//   - journal_mode=WAL: readers never block the writer. The WAL is
//     checkpointed and removed when the last connection closes, so a
//     closed database is a single self-contained file.
//   - synchronous=NORMAL: transactions survive process crashes.
//   - busy_timeout=5000: wait up to 5 seconds for a write lock.
//   - foreign_keys=OFF: exports copy records as stored, including
//     tickets whose student is missing from a damaged file.
//   - temp_store=MEMORY: temporary tables and indexes in memory.
//
// # Usage
//
//	pool, err := sqlitepool.Open(sqlitepool.Config{
//	    Path:   "/srv/hostel/roster.db",
//	    Logger: logger,
//	    OnConnect: func(conn *sqlite.Conn) error {
//	        return sqlitex.ExecuteScript(conn, schema, nil)
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
// Callers write SQL directly, use sqlitex.Execute for cached
// statements, and manage transactions with
// sqlitex.ImmediateTransaction.
package sqlitepool
