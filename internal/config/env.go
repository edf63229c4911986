package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment. The mapping lives in the
// `env`/`envPrefix` tags on [StructuredConfig] and its sections, so widget
// variables read like SERVICE_ADDRESS or WIDGET_DEBOUNCE_INTERVAL.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
