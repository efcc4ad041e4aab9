package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.ApiServer.Port)
	require.Equal(t, 50, cfg.ApiServer.MaxLimit)
	require.Equal(t, []string{"student"}, cfg.Reward.BlockedRoles)
	require.Equal(t, DefaultTiers, cfg.Reward.Tiers)
	require.Equal(t, 168*time.Hour, cfg.Invitation.TTL)
	require.Equal(t, 5, cfg.Redis.PoolSize)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
env = "production"

[api_server]
port = "9000"

[[reward.tiers]]
name = "member"
min_points = 0

[[reward.tiers]]
name = "patron"
min_points = 100
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Setenv("REDIS_ADDR", "redis:6380")

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
	require.Equal(t, "9000", cfg.ApiServer.Port)
	require.Equal(t, "redis:6380", cfg.Redis.Addr)
	require.Len(t, cfg.Reward.Tiers, 2)
	require.Equal(t, "patron", cfg.Reward.Tiers[1].Name)
}
