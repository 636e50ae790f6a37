package procfs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadStatusSelf(t *testing.T) {
	if _, err := os.Stat("/proc/self/status"); err != nil {
		t.Skip("no /proc on this platform")
	}

	s, err := ReadStatus(os.Getpid())
	require.NoError(t, err)
	assert.Equal(t, os.Getuid(), s.Uids[0])
	assert.Equal(t, os.Getgid(), s.Gids[0])
	assert.NotEmpty(t, s.Namespaces["pid"])
	assert.NotEmpty(t, s.Namespaces["user"])
}

func TestReadSessionIDSelf(t *testing.T) {
	if _, err := os.Stat("/proc/self/stat"); err != nil {
		t.Skip("no /proc on this platform")
	}
	sid, err := readSessionID(os.Getpid())
	require.NoError(t, err)
	assert.Greater(t, sid, 0)
}

func TestUserNamespaceSelf(t *testing.T) {
	if _, err := os.Stat("/proc/self/ns/user"); err != nil {
		t.Skip("no /proc on this platform")
	}
	ns, err := UserNamespace(os.Getpid())
	require.NoError(t, err)
	assert.NotEmpty(t, ns)
}
