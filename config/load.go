package config

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Load reads YAML config from URL (any afs URL; empty skips the file), overlays
// AUTHSTORE_* environment variables and applies defaults.
func Load(ctx context.Context, URL string) (*Config, error) {
	cfg := &Config{}
	if URL != "" {
		data, err := afs.New().DownloadWithURL(ctx, URL)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
		}
	}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	cfg.Init()
	return cfg, nil
}

// ParseEnv overlays environment variables onto cfg; unset variables keep their values.
func ParseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
