package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppConfigCreatesConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", filepath.Join(dir, "cntr"))

	cfg, err := NewAppConfig("cntr", "1.2.3", "abc123", true)
	require.NoError(t, err)

	assert.Equal(t, "cntr", cfg.Name)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.True(t, cfg.Debug)
	assert.DirExists(t, cfg.ConfigDir)
	assert.NotNil(t, cfg.UserConfig)
	assert.Equal(t, "/bin/sh", cfg.UserConfig.Shell)
}

func TestNewAppConfigDebugFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("DEBUG", "TRUE")

	cfg, err := NewAppConfig("cntr", "dev", "", false)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
}
