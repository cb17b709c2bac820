package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HARVESTLINK_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.App.Env)
	assert.True(t, cfg.App.IsDev())
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, SnapshotBackendDB, cfg.Snapshot.Backend)
	assert.False(t, cfg.Snapshot.UsesRedis())
	assert.False(t, cfg.OrderSync.Enabled())
	assert.Equal(t, 128, cfg.OrderSync.QueueSize)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("HARVESTLINK_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsUnknownSnapshotBackend(t *testing.T) {
	t.Setenv("HARVESTLINK_JWT_SECRET", "test-secret")
	t.Setenv("HARVESTLINK_SNAPSHOT_BACKEND", "memcached")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRedisBackendNeedsAddress(t *testing.T) {
	t.Setenv("HARVESTLINK_JWT_SECRET", "test-secret")
	t.Setenv("HARVESTLINK_SNAPSHOT_BACKEND", "redis")
	t.Setenv("HARVESTLINK_REDIS_URL", "")
	t.Setenv("HARVESTLINK_REDIS_ADDR", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("HARVESTLINK_REDIS_ADDR", "localhost:6379")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Snapshot.UsesRedis())
	assert.True(t, cfg.Redis.Configured())
}
