// Package ipc implements component C5: the bidirectional socket the
// post-fork parent and child use to hand off the FUSE session fd and signal
// mount readiness. Grounded on the buildah internal/open package's
// inChroot/inChrootMain pair (vendor/github.com/containers/buildah/
// internal/open/open_unix.go), which opens a unix.Socketpair before
// re-exec and moves a file descriptor across it via SCM_RIGHTS exactly the
// way spec §4.5 describes, and on run_common.go's runAcceptTerminal for the
// receive side's ParseSocketControlMessage/ParseUnixRights sequence.
package ipc

import (
	"os"

	"github.com/jesseduffield/cntr/pkg/cerrors"
	"golang.org/x/sys/unix"
)

// Pair is a connected pair of unix domain sockets supporting ancillary data,
// the §4.5 "socketpair of connected stream sockets supporting SCM_RIGHTS".
type Pair struct {
	Parent *os.File
	Child  *os.File
}

// NewPair creates a socketpair via unix.Socketpair, wrapping each half in an
// *os.File the way buildah's inChroot does so the child half can travel
// across a re-exec as an ExtraFiles entry.
func NewPair() (*Pair, error) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, cerrors.Wrap(err, "creating ipc socketpair").WithKind(cerrors.KindFdHandoff)
	}
	return &Pair{
		Parent: os.NewFile(uintptr(fds[0]), "cntr ipc parent"),
		Child:  os.NewFile(uintptr(fds[1]), "cntr ipc child"),
	}, nil
}

// SendFD sends fd as ancillary data over an empty-payload message, the one
// message shape spec §4.5 defines ("an empty-payload datagram with a single
// file descriptor attached").
func SendFD(conn *os.File, fd int) error {
	rights := unix.UnixRights(fd)
	if err := unix.Sendmsg(int(conn.Fd()), []byte{0}, rights, nil, 0); err != nil {
		return cerrors.Wrap(err, "sending fd over ipc socket").WithKind(cerrors.KindFdHandoff)
	}
	return nil
}

// RecvFD blocks for the next message on conn and returns the single file
// descriptor it carried.
func RecvFD(conn *os.File) (int, error) {
	buf := make([]byte, 8)
	oob := make([]byte, unix.CmsgSpace(4))

	n, oobn, _, _, err := unix.Recvmsg(int(conn.Fd()), buf, oob, 0)
	if err != nil {
		return -1, cerrors.Wrap(err, "receiving fd over ipc socket").WithKind(cerrors.KindFdHandoff)
	}
	if n == 0 && oobn == 0 {
		return -1, cerrors.New("ipc socket closed before fd was sent").WithKind(cerrors.KindFdHandoff)
	}

	scms, err := unix.ParseSocketControlMessage(oob[:oobn])
	if err != nil {
		return -1, cerrors.Wrap(err, "parsing ipc control message").WithKind(cerrors.KindFdHandoff)
	}
	for i := range scms {
		fds, err := unix.ParseUnixRights(&scms[i])
		if err != nil {
			return -1, cerrors.Wrap(err, "parsing ipc rights message").WithKind(cerrors.KindFdHandoff)
		}
		if len(fds) > 0 {
			return fds[0], nil
		}
	}
	return -1, cerrors.New("ipc message carried no file descriptor").WithKind(cerrors.KindFdHandoff)
}

// SignalReady closes conn. Per spec §4.5, "closure of either end is itself a
// signal (EOF = peer exit)" — used by the child to tell the parent the
// mount is installed without a separate message.
func SignalReady(conn *os.File) error {
	if err := conn.Close(); err != nil {
		return cerrors.Wrap(err, "closing ipc socket").WithKind(cerrors.KindFdHandoff)
	}
	return nil
}

// WaitForEOF blocks until conn reports EOF (the peer closed its end), the
// receive-side counterpart to SignalReady.
func WaitForEOF(conn *os.File) error {
	buf := make([]byte, 1)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return nil // EOF or closed: either is the signal
		}
		if n == 0 {
			return nil
		}
	}
}
