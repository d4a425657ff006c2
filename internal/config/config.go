// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"time"
)

// Default AI collaborator bounds.
const (
	defaultAITimeoutMS  = 10_000
	defaultAIRatePerMin = 10
	defaultWindowDays   = 30
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// PlayersFile is the player table CSV path.
	PlayersFile string `koanf:"players_file"`

	// RecentsFile is the recency log JSON path.
	RecentsFile string `koanf:"recents_file"`

	// WindowDays is the no-repeat window for daily picks.
	WindowDays int `koanf:"window_days"`

	// Timezone is the IANA zone governing daily rollover, e.g. "Europe/London".
	Timezone string `koanf:"timezone"`

	// ClubName is the club noun rendered into clue text.
	ClubName string `koanf:"club_name"`

	// Debug exposes the debug surface. Never enable in production.
	Debug bool `koanf:"debug"`

	// AdminKey allows the recent-players debug view in production.
	AdminKey string `koanf:"admin_key"`

	// GeminiAPIKey enables the optional AI clue/bio collaborator.
	GeminiAPIKey string `koanf:"gemini_api_key"`

	// GeminiModel selects the generation model.
	GeminiModel string `koanf:"gemini_model"`

	// AITimeoutMS bounds each AI collaborator call.
	AITimeoutMS int `koanf:"ai_timeout_ms"`

	// AIRatePerMinute caps outbound AI calls per minute.
	AIRatePerMinute int `koanf:"ai_rate_per_minute"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		PlayersFile:     "players.csv",
		RecentsFile:     "recent_players.json",
		WindowDays:      defaultWindowDays,
		Timezone:        "UTC",
		ClubName:        "",
		Debug:           false,
		GeminiModel:     "gemini-2.5-flash-lite",
		AITimeoutMS:     defaultAITimeoutMS,
		AIRatePerMinute: defaultAIRatePerMin,
	}
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, ErrInvalidConfig
	}
	return loc, nil
}

// AITimeout returns the AI call timeout as a duration.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AITimeoutMS) * time.Millisecond
}
