package cntrfs

import (
	"os"
	"syscall"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, root string) *Server {
	t.Helper()
	session := &Session{
		FD:   -1,
		Opts: MountOptions{Prefix: root},
	}
	return NewServer(session, logrus.NewEntry(logrus.StandardLogger()))
}

func TestTranslateAttrNoMapPassesHostIDThrough(t *testing.T) {
	dir := t.TempDir()
	fi, err := os.Stat(dir)
	require.NoError(t, err)

	s := newTestServer(t, dir)
	a := s.translateAttr(1, fi)
	assert.Equal(t, uint32(os.Getuid()), a.UID)
	assert.Equal(t, uint32(os.Getgid()), a.GID)
}

func TestTranslateAttrEffectiveOverride(t *testing.T) {
	dir := t.TempDir()
	fi, err := os.Stat(dir)
	require.NoError(t, err)

	s := newTestServer(t, dir)
	s.session.Opts.HasEffectiveID = true
	s.session.Opts.EffectiveUID = 65534
	s.session.Opts.EffectiveGID = 65534

	a := s.translateAttr(1, fi)
	assert.Equal(t, uint32(65534), a.UID)
	assert.Equal(t, uint32(65534), a.GID)
}

func TestReplyErrno(t *testing.T) {
	s := newTestServer(t, t.TempDir())
	reply, err := s.replyErrno(inHeader{Unique: 99}, syscall.ENOENT)
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
}

func TestDispatchInit(t *testing.T) {
	s := newTestServer(t, t.TempDir())

	req := encodeInitRequest(t, 42)
	reply, err := s.dispatch(req)
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
}

func TestDispatchUnknownOpcodeReturnsENOSYS(t *testing.T) {
	s := newTestServer(t, t.TempDir())

	req := encodeInitRequest(t, 42)
	req[4] = 0xFF // corrupt the opcode field to something undispatched
	reply, err := s.dispatch(req)
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
}
