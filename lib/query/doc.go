// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package query holds the read-only views over the registries: the
// dashboard summary, report rendering in text, Markdown and HTML, and
// fuzzy name ranking.
//
// Nothing here mutates or retains registry state. Functions take the
// narrow [StudentSource] and [TicketSource] interfaces, which
// *registry.Students and *registry.Tickets satisfy, or plain slices
// of records.
package query
