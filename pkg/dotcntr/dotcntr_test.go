package dotcntr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBasicTree(t *testing.T) {
	tree, err := Build(Options{
		AttachPID: 4242,
		Shell:     "/bin/sh",
		Home:      "/root",
		ExtraPath: []string{"/usr/local/bin"},
	})
	require.NoError(t, err)

	pidFile, ok := tree.Lookup("cntr.pid")
	require.True(t, ok)
	assert.Equal(t, "4242\n", string(pidFile.Data))

	setup, ok := tree.Lookup("setup.sh")
	require.True(t, ok)
	assert.Contains(t, string(setup.Data), `HOME="/root"`)
	assert.Contains(t, string(setup.Data), "/usr/local/bin")
	assert.Contains(t, string(setup.Data), `"/bin/sh"`)
}

func TestBuildHelperBinaries(t *testing.T) {
	dir := t.TempDir()
	helperPath := filepath.Join(dir, "busybox")
	require.NoError(t, os.WriteFile(helperPath, []byte("fake-elf-bytes"), 0o755))

	tree, err := Build(Options{
		Shell:          "/bin/sh",
		HelperBinaries: map[string]string{"busybox": helperPath},
	})
	require.NoError(t, err)

	f, ok := tree.Lookup("bin/busybox")
	require.True(t, ok)
	assert.Equal(t, "fake-elf-bytes", string(f.Data))
	assert.Equal(t, os.FileMode(0o555), f.Mode)
}

func TestBuildMissingHelperBinary(t *testing.T) {
	_, err := Build(Options{
		Shell:          "/bin/sh",
		HelperBinaries: map[string]string{"ghost": "/nonexistent/path"},
	})
	assert.Error(t, err)
}

func TestTreeSizeBound(t *testing.T) {
	tree, err := Build(Options{Shell: "/bin/sh"})
	require.NoError(t, err)
	assert.Less(t, tree.Size(), 1<<20)
	assert.Greater(t, tree.Size(), 0)
}
