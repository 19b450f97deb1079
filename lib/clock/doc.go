// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Code that stamps records with the current time (report headers,
// snapshot envelopes, session logs) accepts a Clock instead of calling
// time.Now directly. Production wiring passes Real(); tests pass
// Fake() and move time explicitly with Advance or Set:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	session, err := hostel.Open(hostel.Options{Clock: c, ...})
//	c.Advance(time.Hour)
package clock
