// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Hostel is the command-line front end for the hostel records manager.
//
// With no arguments it starts the interactive menu shell over the
// student and ticket record files. Subcommands expose the same
// operations for scripts: student and ticket management, the dashboard
// and report exports, snapshot backups, and a full-screen browser.
//
// The record files, capacities and admin secret come from the YAML
// configuration named by --config or HOSTEL_CONFIG.
package main
