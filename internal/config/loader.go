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

	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "RIDER_"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if RIDER_CONFIG is set
//  3. env (prefix RIDER_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// RIDER_MIXER_CAPACITY -> mixer_capacity; underscores are kept to match
	// the flat koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	cfg.SingleFamilyOrder = splitList(cfg.SingleFamilyOrder)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges and family names.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MixerCapacity <= 0:
		return fmt.Errorf("%w: mixer_capacity must be positive", ErrInvalidConfig)
	case c.BatchConcurrency <= 0:
		return fmt.Errorf("%w: batch_concurrency must be positive", ErrInvalidConfig)
	case c.MaxBatchSize <= 0:
		return fmt.Errorf("%w: max_batch_size must be positive", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json", ErrInvalidConfig)
	}
	for _, f := range c.SingleFamilyOrder {
		if _, err := model.ParseFamily(f); err != nil {
			return fmt.Errorf("%w: single_family_order: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Families returns SingleFamilyOrder parsed into families. Call after Validate.
func (c *Config) Families() []model.Family {
	out := make([]model.Family, 0, len(c.SingleFamilyOrder))
	for _, s := range c.SingleFamilyOrder {
		if f, err := model.ParseFamily(s); err == nil {
			out = append(out, f)
		}
	}
	return out
}

// splitList flattens comma-separated entries, as given by RIDER_SINGLE_FAMILY_ORDER.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
