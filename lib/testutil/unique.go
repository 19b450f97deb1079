// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import "sync/atomic"

var studentCounter atomic.Int32

// StudentID returns a positive ID that no earlier call in this process
// returned. Values start high so they do not collide with the small
// literal IDs tests use for readability.
func StudentID() int32 {
	return 100000 + studentCounter.Add(1)
}
