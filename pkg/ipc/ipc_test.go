package ipc

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestSendRecvFD(t *testing.T) {
	pair, err := NewPair()
	require.NoError(t, err)
	defer pair.Parent.Close()
	defer pair.Child.Close()

	devNull, err := os.Open(os.DevNull)
	require.NoError(t, err)
	defer devNull.Close()

	done := make(chan error, 1)
	go func() {
		done <- SendFD(pair.Parent, int(devNull.Fd()))
	}()

	fd, err := RecvFD(pair.Child)
	require.NoError(t, err)
	assert.Greater(t, fd, 0)
	unix.Close(fd)

	require.NoError(t, <-done)
}

func TestSignalReadyThenWaitForEOF(t *testing.T) {
	pair, err := NewPair()
	require.NoError(t, err)
	defer pair.Child.Close()

	done := make(chan error, 1)
	go func() {
		done <- WaitForEOF(pair.Parent)
	}()

	require.NoError(t, SignalReady(pair.Child))
	assert.NoError(t, <-done)
}
