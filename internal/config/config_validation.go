package config

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup.
//
// The raw merged config carries no requirements of its own: every field may
// legitimately be empty because [GetWidgetConfig] fills in defaults. The
// strict checks live on [WidgetConfig.validate].
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *WidgetConfig) validate() error {
	if cfg.Service.Address == "" || cfg.Service.RequestTimeout <= 0 {
		return ErrInvalidServiceConfigs
	}

	if cfg.PrefsDSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.DebounceInterval <= 0 {
		return ErrInvalidWidgetConfigs
	}

	return nil
}
