package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "campus_placement", cfg.Database.Name)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "uploads/resumes", cfg.Storage.LocalPath)
	assert.Equal(t, 168*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 3, cfg.Resume.MaxCount)
	assert.EqualValues(t, 7864320, cfg.Resume.MaxSizeBytes)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("RESUME_MAX_COUNT", "5")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "s3", cfg.Storage.Driver)
	assert.Equal(t, 5, cfg.Resume.MaxCount)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := "server:\n  address: \":7070\"\njwt:\n  secret: file-secret\n  expiration: 24h\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	// Unset keys keep their defaults.
	assert.Equal(t, "campus_placement", cfg.Database.Name)
}
