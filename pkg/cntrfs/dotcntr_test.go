package cntrfs

import (
	"bytes"
	"encoding/binary"
	"os"
	"syscall"
	"testing"

	"github.com/jesseduffield/cntr/pkg/dotcntr"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServerWithTree(t *testing.T, root string, tree *dotcntr.Tree) *Server {
	t.Helper()
	session := &Session{
		FD:   -1,
		Opts: MountOptions{Prefix: root, DotCntr: tree},
	}
	return NewServer(session, logrus.NewEntry(logrus.StandardLogger()))
}

func TestLookupDotCntrRootServesVirtualDir(t *testing.T) {
	tree, err := dotcntr.Build(dotcntr.Options{AttachPID: 123, Shell: "/bin/sh"})
	require.NoError(t, err)

	dir := t.TempDir()
	s := newTestServerWithTree(t, dir, tree)

	reply, err := s.replyLookup(inHeader{NodeID: 1}, []byte(".cntr\x00"))
	require.NoError(t, err)
	assert.NotEmpty(t, reply)

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Len(t, s.nodes, 2)
	for id, ref := range s.nodes {
		if id == 1 {
			continue
		}
		assert.Equal(t, nodeVirtualDir, ref.kind)
		assert.Equal(t, "", ref.virtualDir)
	}
}

func TestLookupVirtualFileUnderDotCntr(t *testing.T) {
	tree, err := dotcntr.Build(dotcntr.Options{AttachPID: 123, Shell: "/bin/sh"})
	require.NoError(t, err)

	s := newTestServerWithTree(t, t.TempDir(), tree)

	reply, err := s.replyLookup(inHeader{NodeID: 1}, []byte(".cntr\x00"))
	require.NoError(t, err)
	require.NotEmpty(t, reply)

	dirNodeID := uint64(2)
	reply, err = s.replyLookup(inHeader{NodeID: dirNodeID}, []byte("cntr.pid\x00"))
	require.NoError(t, err)
	assert.NotEmpty(t, reply)

	s.mu.Lock()
	ref := s.nodes[3]
	s.mu.Unlock()
	assert.Equal(t, nodeVirtualFile, ref.kind)
	assert.Equal(t, "cntr.pid", ref.virtualFile)
}

func TestLookupVirtualFileMissingReturnsENOENT(t *testing.T) {
	tree, err := dotcntr.Build(dotcntr.Options{AttachPID: 123, Shell: "/bin/sh"})
	require.NoError(t, err)
	s := newTestServerWithTree(t, t.TempDir(), tree)

	_, err = s.replyLookup(inHeader{NodeID: 1}, []byte(".cntr\x00"))
	require.NoError(t, err)

	reply, err := s.replyLookup(inHeader{NodeID: 2}, []byte("nope\x00"))
	require.NoError(t, err)

	var out outHeader
	require.NoError(t, binary.Read(bytes.NewReader(reply), binary.LittleEndian, &out))
	assert.Equal(t, -int32(syscall.ENOENT), out.Error)
}

func TestLookupBinSubdirectory(t *testing.T) {
	binPath := writeExecutable(t, "fakebin")
	tree, err := dotcntr.Build(dotcntr.Options{
		AttachPID:      123,
		Shell:          "/bin/sh",
		HelperBinaries: map[string]string{"busybox": binPath},
	})
	require.NoError(t, err)
	s := newTestServerWithTree(t, t.TempDir(), tree)

	_, err = s.replyLookup(inHeader{NodeID: 1}, []byte(".cntr\x00"))
	require.NoError(t, err)
	reply, err := s.replyLookup(inHeader{NodeID: 2}, []byte("bin\x00"))
	require.NoError(t, err)
	assert.NotEmpty(t, reply)

	s.mu.Lock()
	ref := s.nodes[3]
	s.mu.Unlock()
	assert.Equal(t, nodeVirtualDir, ref.kind)
	assert.Equal(t, "bin", ref.virtualDir)
}

func writeExecutable(t *testing.T, name string) string {
	t.Helper()
	path := t.TempDir() + "/" + name
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
	return path
}
