package config

import "errors"

// Validation errors returned by [WidgetConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidServiceConfigs indicates invalid auth service settings
	// (for example, missing address or non-positive request timeout).
	ErrInvalidServiceConfigs = errors.New("invalid service configuration")
	// ErrInvalidStorageConfigs indicates invalid preferences storage
	// settings (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidWidgetConfigs indicates invalid interaction settings
	// (for example, a non-positive debounce interval).
	ErrInvalidWidgetConfigs = errors.New("invalid widget configuration")
)
