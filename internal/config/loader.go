package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PROHUNT_CONFIG is set
//  3. env (prefix PROHUNT_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PROHUNT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PROHUNT_ADDR, PROHUNT_RECOMMEND_URL, ...
	// Map env keys like PROHUNT_SUGGEST_LIMIT -> suggest_limit (flat keys,
	// underscores preserved to match the koanf tags on the struct).
	envProvider := env.Provider("PROHUNT_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "prohunt_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DatabasePath == "":
		return fmt.Errorf("%w: database_path must not be empty", ErrInvalidConfig)
	case c.RecommendURL == "":
		return fmt.Errorf("%w: recommend_url must not be empty", ErrInvalidConfig)
	case c.SuggestLimit < 1:
		return fmt.Errorf("%w: suggest_limit must be positive", ErrInvalidConfig)
	case c.MaxSuggestLimit < c.SuggestLimit:
		return fmt.Errorf("%w: max_suggest_limit must be >= suggest_limit", ErrInvalidConfig)
	case c.RecommendTimeoutMS < 1:
		return fmt.Errorf("%w: recommend_timeout_ms must be positive", ErrInvalidConfig)
	case c.AvatarMaxBytes < 1:
		return fmt.Errorf("%w: avatar_max_bytes must be positive", ErrInvalidConfig)
	}
	return nil
}
