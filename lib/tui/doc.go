// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui holds the color theme shared by the menu shell and the
// full-screen browser, plus terminal profile detection and small
// ANSI-aware helpers such as fixed-width cells and scrollbars.
package tui
