// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package hostel owns the process-wide record store for one run of a
// hostel tool: the registry, the record files it was loaded from, and
// the report file it exports to.
//
// [Open] loads both record files before anything else touches the
// store. Callers mutate through [Session.Registry] and call
// [Session.Flush] afterwards; a failed flush is logged and returned,
// and in-memory state stays authoritative either way.
package hostel
