package lockfile

import (
	"testing"

	"github.com/jesseduffield/cntr/pkg/cerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireThenSecondFails(t *testing.T) {
	dir := t.TempDir()

	lock1, err := Acquire(dir)
	require.NoError(t, err)
	defer lock1.Release()

	_, err = Acquire(dir)
	assert.Error(t, err)
	assert.Equal(t, cerrors.KindAlreadyAttached, cerrors.KindOf(err))
}

func TestReleaseThenReacquire(t *testing.T) {
	dir := t.TempDir()

	lock1, err := Acquire(dir)
	require.NoError(t, err)
	require.NoError(t, lock1.Release())

	lock2, err := Acquire(dir)
	require.NoError(t, err)
	defer lock2.Release()
}

func TestReleaseNilLock(t *testing.T) {
	var l *Lock
	assert.NoError(t, l.Release())
}
