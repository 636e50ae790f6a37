package procfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.podman.io/storage/pkg/idtools"
)

func TestParseIDMapFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uid_map")
	require.NoError(t, os.WriteFile(path, []byte("0 100000 65536\n"), 0o644))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	m, err := parseIDMap(path, f)
	require.NoError(t, err)
	ns, ok := m.MapUp(100005)
	assert.True(t, ok)
	assert.Equal(t, 5, ns)
}

func TestParseIDMapMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uid_map")
	require.NoError(t, os.WriteFile(path, []byte("not-a-number\n"), 0o644))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = parseIDMap(path, f)
	assert.Error(t, err)
}

func TestIDMapRoundTrip(t *testing.T) {
	m := &IDMap{entries: []idtools.IDMap{
		{ContainerID: 0, HostID: 100000, Size: 65536},
	}}
	for h := 100000; h < 100000+65536; h += 4099 {
		ns, ok := m.MapUp(h)
		assert.True(t, ok)
		back, ok := m.MapDown(ns)
		assert.True(t, ok)
		assert.Equal(t, h, back)
	}
}

func TestIDMapOverflow(t *testing.T) {
	m := &IDMap{}
	ns, ok := m.MapUp(5000)
	assert.False(t, ok)
	assert.Equal(t, OverflowID, ns)

	host, ok := m.MapDown(5000)
	assert.False(t, ok)
	assert.Equal(t, OverflowID, host)
}

func TestIDMapPidOneBoundary(t *testing.T) {
	// container pid 1 maps from host pid 12345 via a single range covering
	// it, the boundary scenario in spec §8.
	m := &IDMap{entries: []idtools.IDMap{
		{ContainerID: 0, HostID: 12344, Size: 10},
	}}
	ns, ok := m.MapUp(12345)
	assert.True(t, ok)
	assert.Equal(t, 1, ns)
}

func TestIDMapDisjointRanges(t *testing.T) {
	m := &IDMap{entries: []idtools.IDMap{
		{ContainerID: 0, HostID: 1000, Size: 10},
		{ContainerID: 100, HostID: 2000, Size: 10},
	}}
	ns, ok := m.MapUp(2005)
	assert.True(t, ok)
	assert.Equal(t, 105, ns)

	_, ok = m.MapUp(1500)
	assert.False(t, ok)
}
