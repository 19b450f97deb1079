// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the hostel
// tools.
//
// Configuration comes from a single file named by the --config flag or
// the HOSTEL_CONFIG environment variable (via [Load]), or from an
// explicit path (via [LoadFile]). With neither set, [Default] applies:
// record files in the working directory, the stock capacities, and the
// development admin secret.
//
// The file may carry environment-specific sections (development,
// production) that override base values when [Config].Environment
// matches. Production defaults are stricter: logs are JSON and a plain
// admin password fails validation, so a bcrypt password_hash is
// required.
//
// Variable expansion runs on path fields after overrides: ${HOME} and
// ${VAR:-default} patterns are expanded. No other environment
// variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Paths, Limits, Admin, Campuses, Logging
//   - [Default] -- returns a Config with development defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other hostel packages.
package config
