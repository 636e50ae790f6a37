// Package lockfile guards concurrent attach invocations against the same
// /var/lib/cntr mount point (spec §5: "concurrent attach invocations for
// the same container must be serialized by a file lock on
// /var/lib/cntr/.lock; a second invocation fails with AlreadyAttached").
// Built on gofrs/flock, the file-locking library the teacher's go.mod
// already carries for exactly this purpose.
package lockfile

import (
	"context"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/jesseduffield/cntr/pkg/cerrors"
)

// Name is the lockfile's filename inside the mount root.
const Name = ".lock"

// Lock is an acquired, exclusive, non-blocking lock on <mountRoot>/.lock.
type Lock struct {
	flock *flock.Flock
}

// Acquire tries to exclusively lock <mountRoot>/.lock without blocking. If
// another attach already holds it, Acquire returns an AlreadyAttached
// error and does not mutate mountRoot.
func Acquire(mountRoot string) (*Lock, error) {
	return AcquireWithTimeout(mountRoot, 0)
}

// AcquireWithTimeout tries to exclusively lock <mountRoot>/.lock, retrying
// for up to timeout (config.UserConfig.LockTimeoutSeconds) before giving up.
// timeout <= 0 means try once, without blocking at all.
func AcquireWithTimeout(mountRoot string, timeout time.Duration) (*Lock, error) {
	path := filepath.Join(mountRoot, Name)
	fl := flock.New(path)

	var locked bool
	var err error
	if timeout <= 0 {
		locked, err = fl.TryLock()
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		locked, err = fl.TryLockContext(ctx, 100*time.Millisecond)
	}
	if err != nil {
		return nil, cerrors.Wrapf(err, "locking %s", path).WithKind(cerrors.KindAlreadyAttached)
	}
	if !locked {
		return nil, cerrors.Newf("%s is already attached", mountRoot).WithKind(cerrors.KindAlreadyAttached)
	}

	return &Lock{flock: fl}, nil
}

// Release unlocks and closes the underlying lockfile. Safe to call on every
// exit path, including signal-driven shutdown.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := l.flock.Unlock(); err != nil {
		return cerrors.Wrap(err, "releasing lockfile")
	}
	return nil
}
