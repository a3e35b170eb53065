package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable name in Config tags.
const EnvPrefix = "CHEATSHEET_"

// parseEnv overlays cfg with CHEATSHEET_* variables. Unset variables keep
// the value from earlier stages.
func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}
