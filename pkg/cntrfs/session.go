// Package cntrfs implements component C4 (overlay filesystem handle) and
// the mounting half of C8/C7: opening /dev/fuse, building its kernel mount
// option string, and mounting it once inside the target mount namespace.
//
// The spec splits "open the device", "mount it", and "serve it" across a
// process (and, for the mount, a mount-namespace) boundary: the fd is
// opened before fork, handed to the child over the IPC pair, the child
// mounts it from inside the target namespace, and the parent serves
// requests on its own copy of the fd. No FUSE library's public API
// expresses that split (they bundle open+mount+serve into one call in one
// process), so this package talks to /dev/fuse and mount(2) directly via
// golang.org/x/sys/unix, grounded on buildah/chroot/run_linux.go's own
// direct unix.Mount/unix.PivotRoot use for the equivalent pivot/mount
// sequence, and typed against the kernel's documented FUSE ABI.
package cntrfs

import (
	"fmt"
	"strings"

	"github.com/jesseduffield/cntr/pkg/cerrors"
	"github.com/jesseduffield/cntr/pkg/dotcntr"
	"github.com/jesseduffield/cntr/pkg/procfs"
	"golang.org/x/sys/unix"
)

// devFuse is the kernel FUSE character device every session opens.
const devFuse = "/dev/fuse"

// dotCntrName is the path under the overlay root the marker tree (C3) is
// exposed at, per spec §3/§4.3.
const dotCntrName = ".cntr"

// MountOptions is the overlay mount spec of spec §3: a source prefix, the
// two id maps, an optional effective (uid, gid) override used by the server
// when synthesizing permission checks, and the marker tree grafted in at
// /.cntr.
type MountOptions struct {
	Prefix         string
	UIDMap         *procfs.IDMap
	GIDMap         *procfs.IDMap
	EffectiveUID   int
	EffectiveGID   int
	HasEffectiveID bool
	DotCntr        *dotcntr.Tree
}

// Session is a configured-but-not-yet-mounted FUSE handle: the device fd is
// open and carries the kernel-facing identity (uid/gid for the permission
// check) but mount(2) has not run yet. Per §4.4, creation happens pre-fork;
// mounting happens in the child, inside the target mount namespace.
type Session struct {
	FD      int
	Opts    MountOptions
	rootUID int
	rootGID int
}

// Open opens /dev/fuse and returns a not-yet-mounted Session, capturing the
// caller's uid/gid for the kernel's own permission check on the mount.
func Open(opts MountOptions) (*Session, error) {
	fd, err := unix.Open(devFuse, unix.O_RDWR, 0)
	if err != nil {
		return nil, cerrors.Wrapf(err, "opening %s", devFuse).WithKind(cerrors.KindMountFailed)
	}
	return &Session{
		FD:      fd,
		Opts:    opts,
		rootUID: unix.Getuid(),
		rootGID: unix.Getgid(),
	}, nil
}

// Close releases the device fd. Safe to call on either half after its last
// use of FD (the parent keeps serving; the child closes its copy right
// after mount, per §5's "Shared resources" note).
func (s *Session) Close() error {
	if err := unix.Close(s.FD); err != nil {
		return cerrors.Wrap(err, "closing fuse device")
	}
	return nil
}

// mountData renders the kernel's "fd=N,rootmode=...,user_id=...,group_id=..."
// option string for a fuse.cntr mount, per spec §4.8 step 2.
func mountData(fd int, rootUID, rootGID int) string {
	const rootmodeDir = 040000 // S_IFDIR, the root inode's mode the kernel expects
	return fmt.Sprintf("fd=%d,rootmode=%o,user_id=%d,group_id=%d", fd, rootmodeDir, rootUID, rootGID)
}

// Mount performs the mount(2) call described in spec §4.8 step 2. It must
// run inside the target mount namespace, after the child has joined mnt,
// using the session fd received over the IPC pair (not necessarily s.FD
// itself, since that fd may have traveled via SCM_RIGHTS into a different
// process — callers pass whichever fd is valid in the caller's fd table).
func Mount(fd int, target string, rootUID, rootGID int, extraOptions string) error {
	data := mountData(fd, rootUID, rootGID)
	if extraOptions != "" {
		data = data + "," + extraOptions
	}
	if err := unix.Mount("cntr", target, "fuse.cntr", 0, data); err != nil {
		return cerrors.Wrapf(err, "mounting fuse.cntr at %s", target).WithKind(cerrors.KindMountFailed)
	}
	return nil
}

// Unmount detaches the overlay mount at target, used by both the parent's
// cleanup path (child exited / session fd closed / signal) and by tests.
func Unmount(target string) error {
	if err := unix.Unmount(target, unix.MNT_DETACH); err != nil {
		return cerrors.Wrapf(err, "unmounting %s", target).WithKind(cerrors.KindMountFailed)
	}
	return nil
}

// RootUID/RootGID expose the ids Open captured, for callers that must embed
// them in the mount(2) data string from a different process than the one
// that called Open (the parent computes them before fork; the child gets
// them over the same pre-fork state, never recomputes).
func (s *Session) RootUID() int { return s.rootUID }
func (s *Session) RootGID() int { return s.rootGID }

// String renders the session for log lines.
func (s *Session) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cntrfs.Session{fd=%d prefix=%q effective=%v}", s.FD, s.Opts.Prefix, s.Opts.HasEffectiveID)
	return b.String()
}
