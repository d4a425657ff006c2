package config

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if GULLY_CONFIG is set
//  3. env (prefix GULLY_)
//
// A .env file in the working directory is read into the environment first;
// a missing .env is fine and real env vars win in production.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("GULLY_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: GULLY_ADDR, GULLY_WINDOW_DAYS, ...
	// Map env keys like GULLY_WINDOW_DAYS -> window_days (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("GULLY_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "gully_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	// Basic validation
	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.WindowDays < 1 {
		return nil, errors.New("window_days must be >= 1")
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
