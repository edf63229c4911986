package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Defaults applied by [GetWidgetConfig] when a setting is absent from every
// configuration source.
const (
	DefaultServiceAddress   = "localhost:8080"
	DefaultRequestTimeout   = 30 * time.Second
	DefaultDebounceInterval = 100 * time.Millisecond

	defaultPrefsFile = "prefs.db"
)

// WidgetConfig is the defaulted, validated view of the configuration the
// widget runtime consumes.
type WidgetConfig struct {
	// Service contains the auth service address and request timeout.
	Service Service
	// PrefsDSN is the SQLite data source name of the local preferences
	// database.
	PrefsDSN string
	// DebounceInterval is the username availability check debounce.
	DebounceInterval time.Duration
}

// GetWidgetConfig builds and validates the widget runtime configuration.
//
// It loads the base config via [GetStructuredConfig], maps the fields the
// widget needs, fills in defaults for anything left unset, and validates the
// resulting [WidgetConfig].
func GetWidgetConfig() (*WidgetConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	widgetCfg := &WidgetConfig{
		Service:          cfg.Service,
		PrefsDSN:         cfg.Storage.DB.DSN,
		DebounceInterval: cfg.Widget.DebounceInterval,
	}
	widgetCfg.applyDefaults()

	return widgetCfg, widgetCfg.validate()
}

func (cfg *WidgetConfig) applyDefaults() {
	if cfg.Service.Address == "" {
		cfg.Service.Address = DefaultServiceAddress
	}
	if cfg.Service.RequestTimeout == 0 {
		cfg.Service.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.DebounceInterval == 0 {
		cfg.DebounceInterval = DefaultDebounceInterval
	}
	if cfg.PrefsDSN == "" {
		cfg.PrefsDSN = defaultPrefsDSN()
	}
}

// defaultPrefsDSN places the preferences database next to the executable so
// the widget works without any configuration at all.
func defaultPrefsDSN() string {
	execPath, err := os.Executable()
	if err != nil {
		return defaultPrefsFile
	}
	return filepath.Join(filepath.Dir(execPath), defaultPrefsFile)
}
