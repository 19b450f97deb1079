// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package browseui is a read-only full-screen browser for the hostel
// records, built on bubbletea.
//
// The screen has two tabs, students and tickets. Each shows a list on
// the left and the selected record's details on the right. Pressing /
// opens a filter bar: students are ranked by fuzzy match on their name
// (matched characters highlighted), tickets by fuzzy match on student
// name and issue text. The browser works on a snapshot taken when it
// starts and never modifies the store.
package browseui
