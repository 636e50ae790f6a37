package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultConfig(t *testing.T) {
	defaults := GetDefaultConfig()
	assert.Equal(t, "/bin/sh", defaults.Shell)
	assert.Equal(t, []string{"/.cntr/bin"}, defaults.ExtraPathDirs)
	assert.Equal(t, 5, defaults.GraceSeconds)
}

func TestLoadUserConfigWithDefaultsCreatesFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := loadUserConfigWithDefaults(dir)
	require.NoError(t, err)
	assert.Equal(t, "/bin/sh", cfg.Shell)
	assert.FileExists(t, filepath.Join(dir, "config.yml"))
}

func TestLoadUserConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("shell: /bin/bash\ngraceSeconds: 10\n"), 0o644))

	cfg, err := loadUserConfigWithDefaults(dir)
	require.NoError(t, err)
	assert.Equal(t, "/bin/bash", cfg.Shell)
	assert.Equal(t, 10, cfg.GraceSeconds)
}
