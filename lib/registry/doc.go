// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package registry holds the in-memory record store: a [Students]
// collection, a [Tickets] collection, and the [Registry] that owns
// both for one process.
//
// Collections are ordered slices with an explicit capacity taken from
// [Limits]. Lookups are linear. Every operation returns values, never
// pointers into the backing slices, so callers cannot mutate records
// except through the registry methods. Failures are reported with the
// sentinel errors in errors.go and never abort the process.
//
// A Registry is not safe for concurrent use. The hostel tool has one
// logical thread of control: the shell or a single CLI command.
package registry
