package config

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

// Load reads the optional TOML file at path, then fills every field which is
// still empty from environment variables (or their defaults).
func Load(ctx context.Context, path string) (*Configs, error) {
	var cfg Configs
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot decode config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("cannot process environment config: %w", err)
	}

	if len(cfg.Reward.Tiers) == 0 {
		cfg.Reward.Tiers = DefaultTiers
	}

	return &cfg, nil
}
