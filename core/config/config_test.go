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

	assert.Equal(t, 60, cfg.Relations.CacheTTLSeconds)
	assert.False(t, cfg.Relations.DryRun)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "relations", cfg.Storage.Bucket)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("RELATIONS_CACHE_TTL_SECONDS", "5")
	t.Setenv("RELATIONS_DRY_RUN", "true")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Relations.CacheTTLSeconds)
	assert.True(t, cfg.Relations.DryRun)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DATABASE_NAME=newsroom\nSTORAGE_BUCKET=payloads\n"), 0o600)
	require.NoError(t, err)

	// godotenv.Overload writes into the process environment; restore afterwards.
	t.Setenv("DATABASE_NAME", "")
	t.Setenv("STORAGE_BUCKET", "")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "newsroom", cfg.Database.Name)
	assert.Equal(t, "payloads", cfg.Storage.Bucket)
}
