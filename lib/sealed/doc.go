// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed wraps filippo.io/age for encrypting backup snapshots.
//
// A roster holds personal data (addresses, phone numbers, guardians),
// so snapshots copied off the office machine can be sealed to one or
// more X25519 recipients. Ciphertext is the raw age binary format.
// Identities are read from age identity files: one AGE-SECRET-KEY-1
// line per key, with # comments and blank lines allowed, as written by
// age-keygen or `hostel backup keygen`.
package sealed
