package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. DRAFT_APP_PORT or
// DRAFT_CHAT_API_KEY.
const EnvPrefix = "DRAFT"

// OverlayEnv replaces fields whose environment variable is set. Unset
// variables leave the file value alone.
func OverlayEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("env overlay: %w", err)
	}
	return nil
}
