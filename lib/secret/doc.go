// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret verifies the administrator secret that gates the
// interactive admin menu.
//
// A [Verifier] holds either a bcrypt hash (preferred, and the only form
// production configuration accepts) or a plain secret compared in
// constant time. [Hash] produces the value for admin.password_hash.
// [Gate] applies the attempt limit around a prompt function so the
// shell only supplies the I/O.
//
// Candidate secrets are passed as byte slices and zeroed by the callers
// that own them via [Zero].
package secret
