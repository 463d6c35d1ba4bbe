package config

import "slices"

// RestartFields names the settings that differ between prev and next and
// are only read at startup. Everything else is applied to the running
// engine.
func RestartFields(prev, next Config) []string {
	var out []string
	if prev.App.Host != next.App.Host {
		out = append(out, "app.host")
	}
	if prev.App.Port != next.App.Port {
		out = append(out, "app.port")
	}
	if !slices.Equal(prev.App.AllowedOrigins, next.App.AllowedOrigins) {
		out = append(out, "app.allowed_origins")
	}
	if prev.Chat.KeyringAccount != next.Chat.KeyringAccount {
		out = append(out, "chat.keyring_account")
	}
	if prev.Chat.CleanupMinutes != next.Chat.CleanupMinutes {
		out = append(out, "chat.cleanup_minutes")
	}
	if prev.Logging != next.Logging {
		out = append(out, "logging")
	}
	return out
}
