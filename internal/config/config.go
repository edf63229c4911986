package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the login
// widget. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Service holds the address and timeout settings of the remote
	// authentication service the widget talks to.
	Service Service `envPrefix:"SERVICE_"`

	// Storage holds configuration for the local preferences database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Widget holds interaction tuning knobs such as the keystroke
	// debounce interval.
	Widget Widget `envPrefix:"WIDGET_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Service holds network settings for the remote authentication service.
type Service struct {
	// Address is the base address of the authentication service, in
	// "host:port" format (e.g. "localhost:8080"). A scheme may be
	// included; plain host:port is assumed to be http.
	// Env: SERVICE_ADDRESS
	Address string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single outbound
	// request before the client cancels it (e.g. "30s", "1m").
	// Env: SERVICE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for the widget's local persistence.
type Storage struct {
	// DB holds the preferences database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local preferences database.
type DB struct {
	// DSN is the SQLite data source name used to open the preferences
	// database (e.g. "file:prefs.db" or a plain file path).
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Widget holds interaction tuning knobs.
type Widget struct {
	// DebounceInterval is how long the widget waits after the last
	// username keystroke before asking the service whether the name is
	// taken (e.g. "100ms").
	// Env: WIDGET_DEBOUNCE_INTERVAL
	DebounceInterval time.Duration `env:"DEBOUNCE_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the widget configuration
// from all available sources in the following priority order (last source
// wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
