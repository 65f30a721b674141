package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "./merged", cfg.Merge.OutputDir)
	assert.True(t, cfg.Merge.RecordAudit)
	assert.Equal(t, "dir", cfg.Vanilla.Source)
	assert.Equal(t, 0, cfg.Vanilla.CacheTTLSeconds)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("MERGE_OUTPUT_DIR", "/tmp/out")
	t.Setenv("VANILLA_SOURCE", "none")
	t.Setenv("VANILLA_CACHE_TTL_SECONDS", "30")
	t.Setenv("STORAGE_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/tmp/out", cfg.Merge.OutputDir)
	assert.Equal(t, "none", cfg.Vanilla.Source)
	assert.Equal(t, 30, cfg.Vanilla.CacheTTLSeconds)
	assert.True(t, cfg.Storage.Enabled)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\nSERVER_PORT=9999\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("SERVER_PORT")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "9999", cfg.Server.Port)
}
