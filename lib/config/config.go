// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable Load consults when no
// explicit path is given.
const EnvironmentVariable = "HOSTEL_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for a warden's laptop or a test machine.
	Development Environment = "development"
	// Production is for the hostel office machine holding the real roster.
	Production Environment = "production"
)

// Config is the master configuration.
type Config struct {
	// Environment identifies the deployment type (development, production).
	Environment Environment `yaml:"environment"`

	// Paths configures where record files and reports live.
	Paths PathsConfig `yaml:"paths"`

	// Limits bounds the in-memory collections and the accepted file
	// record counts.
	Limits LimitsConfig `yaml:"limits"`

	// Admin configures the interactive shell's admin gate.
	Admin AdminConfig `yaml:"admin"`

	// Campuses lists the campus codes always shown on the dashboard,
	// in display order, even when no student has them.
	Campuses []string `yaml:"campuses"`

	// Logging configures the process logger.
	Logging LoggingConfig `yaml:"logging"`

	// Per-environment overrides, applied after the base config loads.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Paths    *PathsConfig    `yaml:"paths,omitempty"`
	Limits   *LimitsConfig   `yaml:"limits,omitempty"`
	Admin    *AdminOverrides `yaml:"admin,omitempty"`
	Campuses []string        `yaml:"campuses,omitempty"`
	Logging  *LoggingConfig  `yaml:"logging,omitempty"`
}

// AdminOverrides uses pointers for the secrets so an override can
// clear a base value with an explicit empty string.
type AdminOverrides struct {
	Password     *string `yaml:"password,omitempty"`
	PasswordHash *string `yaml:"password_hash,omitempty"`
	MaxAttempts  int     `yaml:"max_attempts,omitempty"`
}

// PathsConfig configures file locations. Relative file names resolve
// under DataDir.
type PathsConfig struct {
	// DataDir is the directory holding the record files.
	// Default: ${HOSTEL_DATA:-.}
	DataDir string `yaml:"data_dir"`

	// StudentsFile is the student record file.
	// Default: students.dat
	StudentsFile string `yaml:"students_file"`

	// TicketsFile is the ticket record file.
	// Default: tickets.dat
	TicketsFile string `yaml:"tickets_file"`

	// ReportFile is where the text report export is written.
	// Default: students_report.txt
	ReportFile string `yaml:"report_file"`
}

// LimitsConfig bounds collection sizes.
type LimitsConfig struct {
	MaxStudents int `yaml:"max_students"`
	MaxTickets  int `yaml:"max_tickets"`
}

// AdminConfig configures the admin gate. PasswordHash (bcrypt) takes
// precedence over Password when both are set.
type AdminConfig struct {
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"password_hash"`

	// MaxAttempts is how many wrong secrets end a login attempt.
	// Default: 3
	MaxAttempts int `yaml:"max_attempts"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is one of auto, text, json. Auto picks text when stderr
	// is a terminal and JSON otherwise.
	Format string `yaml:"format"`
}

// Default returns the default configuration. It is used as-is when no
// config file is named, and as the base a file is merged over.
func Default() *Config {
	return &Config{
		Environment: Development,
		Paths: PathsConfig{
			DataDir:      "${HOSTEL_DATA:-.}",
			StudentsFile: "students.dat",
			TicketsFile:  "tickets.dat",
			ReportFile:   "students_report.txt",
		},
		Limits: LimitsConfig{
			MaxStudents: 200,
			MaxTickets:  500,
		},
		Admin: AdminConfig{
			Password:    "ADMIN123",
			MaxAttempts: 3,
		},
		Campuses: []string{"A", "B"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load resolves the configuration for a command. A non-empty path is
// loaded with LoadFile; otherwise HOSTEL_CONFIG is consulted; with
// neither set the defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvironmentVariable)
	}
	if path == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, c)
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
		// Production defaults: machine-readable logs and no built-in
		// plain secret.
		if overrides == nil {
			empty := ""
			overrides = &ConfigOverrides{
				Admin:   &AdminOverrides{Password: &empty},
				Logging: &LoggingConfig{Format: "json"},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Paths != nil {
		if overrides.Paths.DataDir != "" {
			c.Paths.DataDir = overrides.Paths.DataDir
		}
		if overrides.Paths.StudentsFile != "" {
			c.Paths.StudentsFile = overrides.Paths.StudentsFile
		}
		if overrides.Paths.TicketsFile != "" {
			c.Paths.TicketsFile = overrides.Paths.TicketsFile
		}
		if overrides.Paths.ReportFile != "" {
			c.Paths.ReportFile = overrides.Paths.ReportFile
		}
	}

	if overrides.Limits != nil {
		if overrides.Limits.MaxStudents != 0 {
			c.Limits.MaxStudents = overrides.Limits.MaxStudents
		}
		if overrides.Limits.MaxTickets != 0 {
			c.Limits.MaxTickets = overrides.Limits.MaxTickets
		}
	}

	if overrides.Admin != nil {
		if overrides.Admin.Password != nil {
			c.Admin.Password = *overrides.Admin.Password
		}
		if overrides.Admin.PasswordHash != nil {
			c.Admin.PasswordHash = *overrides.Admin.PasswordHash
		}
		if overrides.Admin.MaxAttempts != 0 {
			c.Admin.MaxAttempts = overrides.Admin.MaxAttempts
		}
	}

	if overrides.Campuses != nil {
		c.Campuses = overrides.Campuses
	}

	if overrides.Logging != nil {
		if overrides.Logging.Level != "" {
			c.Logging.Level = overrides.Logging.Level
		}
		if overrides.Logging.Format != "" {
			c.Logging.Format = overrides.Logging.Format
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Paths.DataDir = expandVars(c.Paths.DataDir, vars)
	vars["HOSTEL_DATA_DIR"] = c.Paths.DataDir

	c.Paths.StudentsFile = expandVars(c.Paths.StudentsFile, vars)
	c.Paths.TicketsFile = expandVars(c.Paths.TicketsFile, vars)
	c.Paths.ReportFile = expandVars(c.Paths.ReportFile, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"auto", "text", "json"}
)

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Paths.StudentsFile == "" {
		errs = append(errs, errors.New("paths.students_file is required"))
	}
	if c.Paths.TicketsFile == "" {
		errs = append(errs, errors.New("paths.tickets_file is required"))
	}
	if c.Paths.ReportFile == "" {
		errs = append(errs, errors.New("paths.report_file is required"))
	}

	if c.Limits.MaxStudents <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_students must be positive, got %d", c.Limits.MaxStudents))
	}
	if c.Limits.MaxTickets <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_tickets must be positive, got %d", c.Limits.MaxTickets))
	}

	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		errs = append(errs, errors.New("admin.password or admin.password_hash is required"))
	}
	if c.Admin.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("admin.max_attempts must be at least 1, got %d", c.Admin.MaxAttempts))
	}
	if c.Environment == Production && c.Admin.Password != "" {
		errs = append(errs, errors.New("admin.password is not allowed in production; set admin.password_hash"))
	}

	for _, campus := range c.Campuses {
		if campus == "" {
			errs = append(errs, errors.New("campuses must not contain empty codes"))
			break
		}
	}

	if !slices.Contains(logLevels, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level must be one of: %v", logLevels))
	}
	if !slices.Contains(logFormats, c.Logging.Format) {
		errs = append(errs, fmt.Errorf("logging.format must be one of: %v", logFormats))
	}

	return errors.Join(errs...)
}

// StudentsPath returns the student record file path.
func (c *Config) StudentsPath() string { return c.resolve(c.Paths.StudentsFile) }

// TicketsPath returns the ticket record file path.
func (c *Config) TicketsPath() string { return c.resolve(c.Paths.TicketsFile) }

// ReportPath returns the text report path.
func (c *Config) ReportPath() string { return c.resolve(c.Paths.ReportFile) }

// EnsurePaths creates the data directory if it does not exist.
func (c *Config) EnsurePaths() error {
	if c.Paths.DataDir == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.DataDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", c.Paths.DataDir, err)
	}
	return nil
}

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) || c.Paths.DataDir == "" {
		return name
	}
	return filepath.Join(c.Paths.DataDir, name)
}
