package contract

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/LakGar/Coco-sub001/schema"
)

// Default values for configuration.
const (
	DefaultWindowDays = schema.WeekWindow
	DefaultPrecision  = 1
	DefaultLogLevel   = "info"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for snapshot commands.
// This struct remains the "final, validated" config.
type Config struct {
	EntityID   string
	WindowDays int
	Now        time.Time // Zero means use the wall clock when the command runs
	Force      bool      // Recompute even when the cached snapshot is fresh

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Detail     bool // Print the daily series as well as totals
	Width      int  // Terminal width override (0 = auto-detect)
	UseColors  bool

	SnapshotBackend   schema.DatabaseBackend
	SnapshotDBConnect string // Please use env var as this is plaintext

	EventsBackend   schema.DatabaseBackend
	EventsDBConnect string // Please use env var as this is plaintext

	LogLevel slog.Level
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	EntityIDStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Precision         int    `mapstructure:"precision"`
	Width             int    `mapstructure:"width"`
	Color             string `mapstructure:"color"`
	SnapshotBackend   string `mapstructure:"snapshot-backend"`
	SnapshotDBConnect string `mapstructure:"snapshot-db-connect"`
	EventsBackend     string `mapstructure:"events-backend"`
	EventsDBConnect   string `mapstructure:"events-db-connect"`
	LogLevel          string `mapstructure:"log-level"`

	// --- Fields from snapshotCmd.Flags() ---
	Window int    `mapstructure:"window"`
	Now    string `mapstructure:"now"`
	Force  bool   `mapstructure:"force"`
	Detail bool   `mapstructure:"detail"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ResolveNow returns the configured instant, or the wall clock when none was set.
func (c *Config) ResolveNow() time.Time {
	if c.Now.IsZero() {
		return time.Now().UTC()
	}
	return c.Now
}

// ProcessAndValidate validates the raw input and populates cfg from it.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processSnapshotInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString performs basic validation of a connection string per backend.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseDatabaseBackend lowercases and validates a backend name.
func ParseDatabaseBackend(s string) (schema.DatabaseBackend, error) {
	backend := schema.DatabaseBackend(strings.ToLower(s))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("%w '%s'. must be sqlite, mysql, postgresql, none", schema.ErrUnsupportedBackend, s)
	}
	return backend, nil
}

// validateSimpleInputs transfers and validates presentation settings.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Detail = input.Detail

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 0 || input.Precision > 2 {
		return fmt.Errorf("precision must be between 0 and 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	level, err := ParseLogLevel(input.LogLevel)
	if err != nil {
		return err
	}
	cfg.LogLevel = level

	return nil
}

// processSnapshotInputs handles the entity, window and clock settings.
func processSnapshotInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.EntityID = strings.TrimSpace(input.EntityIDStr)
	cfg.Force = input.Force

	if err := schema.ValidateWindowDays(input.Window); err != nil {
		return fmt.Errorf("invalid --window %d: %w", input.Window, err)
	}
	cfg.WindowDays = input.Window

	cfg.Now = time.Time{}
	if input.Now != "" {
		now, err := time.Parse(DateTimeFormat, input.Now)
		if err != nil {
			return fmt.Errorf("invalid --now value %q (expected %s): %w", input.Now, DateTimeFormat, err)
		}
		cfg.Now = now.UTC()
	}
	return nil
}

// validateBackendConfigs validates the snapshot and events backends.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Snapshot Backend Validation ---
	backend, err := ParseDatabaseBackend(input.SnapshotBackend)
	if err != nil {
		return fmt.Errorf("invalid snapshot backend: %w", err)
	}
	cfg.SnapshotBackend = backend
	cfg.SnapshotDBConnect = input.SnapshotDBConnect
	if err := ValidateDatabaseConnectionString(cfg.SnapshotBackend, cfg.SnapshotDBConnect); err != nil {
		return err
	}

	// --- Events Backend Validation ---
	backend, err = ParseDatabaseBackend(input.EventsBackend)
	if err != nil {
		return fmt.Errorf("invalid events backend: %w", err)
	}
	if backend == schema.NoneBackend {
		return fmt.Errorf("events backend cannot be none: snapshots need a care database to read from")
	}
	cfg.EventsBackend = backend
	cfg.EventsDBConnect = input.EventsDBConnect
	return ValidateDatabaseConnectionString(cfg.EventsBackend, cfg.EventsDBConnect)
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) {
	profile.Enabled = profilePrefix != ""
	profile.Prefix = profilePrefix
}
