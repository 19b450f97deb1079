// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"log/slog"

	"github.com/bureau-foundation/hostel/lib/config"
	"github.com/bureau-foundation/hostel/lib/hostel"
)

// StoreFlags is embedded in the params of every command that touches
// the record store. It provides the --config flag.
type StoreFlags struct {
	ConfigPath string `json:"-" flag:"config,c" desc:"configuration file (default $HOSTEL_CONFIG, else built-in defaults)"`
}

// Store is an opened record store plus the configuration and logger it
// was opened with.
type Store struct {
	Session *hostel.Session
	Config  *config.Config
	Logger  *slog.Logger
}

// LoadConfig loads the configuration named by --config (or
// HOSTEL_CONFIG).
func (f *StoreFlags) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return nil, Validation("%w", err).WithHint("Check the file named by --config or $HOSTEL_CONFIG.")
	}
	return cfg, nil
}

// Open loads the configuration and opens the record store. Unless the
// context's [Streams] carry an explicit logger, the returned logger is
// rebuilt from the configuration's logging section. Load warnings
// (files reset to empty) are logged by the session.
func (f *StoreFlags) Open(ctx context.Context, logger *slog.Logger) (*Store, error) {
	cfg, err := f.LoadConfig()
	if err != nil {
		return nil, err
	}

	streams := StreamsFrom(ctx)
	if streams.Logger == nil {
		configured, err := NewCommandLogger(streams.Err, cfg.Logging.Level, cfg.Logging.Format)
		if err != nil {
			return nil, Validation("%w", err)
		}
		logger = configured.With("command", commandPath(ctx))
	}

	if err := cfg.EnsurePaths(); err != nil {
		return nil, Internal("%w", err)
	}
	session, err := hostel.Open(hostel.FromConfig(cfg, logger))
	if err != nil {
		return nil, StoreError(err)
	}
	return &Store{Session: session, Config: cfg, Logger: logger}, nil
}

// Flush saves the store and maps a failure to an internal error.
func (s *Store) Flush() error {
	return StoreError(s.Session.Flush())
}
