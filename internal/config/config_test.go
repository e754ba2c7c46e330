package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 500, cfg.Processing.BatchSize)
	assert.InDelta(t, 10.0, cfg.Processing.MaxFileSizeGB, 0.001)
	assert.Equal(t, 2048, cfg.Processing.MemoryCeilingMB)
	assert.Equal(t, 10000, cfg.Processing.GCIntervalRecords)
	assert.False(t, cfg.Processing.ChildIsolation)
	assert.True(t, cfg.Processing.Validate)
	assert.Equal(t, 3, cfg.XML.RetryAttempts)
	assert.Equal(t, 32, cfg.XML.MaxElementDepth)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestEnvOverridesDefault(t *testing.T) {
	t.Setenv("WATCHLIST_DATABASE_DRIVER", "sqlite")
	t.Setenv("WATCHLIST_PROCESSING_MEMORY_CEILING_MB", "512")

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 512, cfg.Processing.MemoryCeilingMB)
}

func TestFlagBindingOverridesEnv(t *testing.T) {
	t.Setenv("WATCHLIST_DATABASE_URL", "postgres://env")

	v := New()
	v.Set("database.url", "postgres://flag")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "postgres://flag", cfg.Database.URL)
}

func TestInitLoggerRejectsBadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "noisy", Format: "json"})
	require.Error(t, err)
}

func TestInitLoggerConsoleFormat(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
}
