package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Host string `yaml:"host" json:"host" envconfig:"host" validate:"required"`
	Port int    `yaml:"port" json:"port" envconfig:"port" validate:"min=1,max=65535"`
	// Origins allowed to call the API from a browser.
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins" envconfig:"allowed_origins"`
}

type DataConfig struct {
	// Cleaned dataset loaded at startup. Relative paths resolve against the
	// data dir.
	CSVPath string `yaml:"csv_path" json:"csv_path" envconfig:"csv_path" validate:"required"`
	// Fall back to the last sqlite snapshot when the CSV cannot be read.
	SnapshotFallback bool `yaml:"snapshot_fallback" json:"snapshot_fallback" envconfig:"snapshot_fallback"`
}

type DashboardConfig struct {
	PageLimit  int `yaml:"page_limit" json:"page_limit" envconfig:"page_limit" validate:"min=1,max=100000"`
	TopSchools int `yaml:"top_schools" json:"top_schools" envconfig:"top_schools" validate:"min=1,max=100"`
	// Count SP1 as a pitcher in the position trend chart as well as in
	// the filter.
	TrendPitcherIncludesSP1 bool `yaml:"trend_pitcher_includes_sp1" json:"trend_pitcher_includes_sp1" envconfig:"trend_pitcher_includes_sp1"`
	// Sessions untouched for this long are dropped.
	SessionIdleMinutes int `yaml:"session_idle_minutes" json:"session_idle_minutes" envconfig:"session_idle_minutes" validate:"min=1"`
}

type ChatConfig struct {
	Enabled           bool    `yaml:"enabled" json:"enabled" envconfig:"enabled"`
	Model             string  `yaml:"model" json:"model" envconfig:"model" validate:"required_if=Enabled true"`
	Temperature       float32 `yaml:"temperature" json:"temperature" envconfig:"temperature" validate:"min=0,max=2"`
	MaxTokens         int32   `yaml:"max_tokens" json:"max_tokens" envconfig:"max_tokens" validate:"min=1,max=8192"`
	MaxContextChars   int     `yaml:"max_context_chars" json:"max_context_chars" envconfig:"max_context_chars" validate:"min=0"`
	RequestsPerMinute int     `yaml:"requests_per_minute" json:"requests_per_minute" envconfig:"requests_per_minute" validate:"min=1,max=600"`
	HistoryDays       int     `yaml:"history_days" json:"history_days" envconfig:"history_days" validate:"min=1"`
	CleanupMinutes    int     `yaml:"cleanup_minutes" json:"cleanup_minutes" envconfig:"cleanup_minutes" validate:"min=1"`
	KeyringAccount    string  `yaml:"keyring_account" json:"keyring_account" envconfig:"keyring_account" validate:"required"`
	// Set only from the environment; never written to disk.
	APIKey string `yaml:"-" json:"-" envconfig:"api_key"`
}

type LoggingConfig struct {
	Level       string `yaml:"level" json:"level" envconfig:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development" json:"development" envconfig:"development"`
}

type Config struct {
	App       AppConfig       `yaml:"app" json:"app" envconfig:"app"`
	Data      DataConfig      `yaml:"data" json:"data" envconfig:"data"`
	Dashboard DashboardConfig `yaml:"dashboard" json:"dashboard" envconfig:"dashboard"`
	Chat      ChatConfig      `yaml:"chat" json:"chat" envconfig:"chat"`
	Logging   LoggingConfig   `yaml:"logging" json:"logging" envconfig:"logging"`
}

// Defaults is the configuration used for any key the file leaves out.
func Defaults() Config {
	return Config{
		App: AppConfig{
			Host: "127.0.0.1",
			Port: 38471,
		},
		Data: DataConfig{
			CSVPath:          "mlb_draft_cleaned.csv",
			SnapshotFallback: true,
		},
		Dashboard: DashboardConfig{
			PageLimit:          5000,
			TopSchools:         10,
			SessionIdleMinutes: 120,
		},
		Chat: ChatConfig{
			Model:             "gemini-2.0-flash",
			Temperature:       0.2,
			MaxTokens:         300,
			MaxContextChars:   10000,
			RequestsPerMinute: 20,
			HistoryDays:       30,
			CleanupMinutes:    60,
			KeyringAccount:    "draftboard:llm",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Defaults()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadWithEnv loads path and overlays DRAFT_* environment variables.
func LoadWithEnv(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if err := OverlayEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
