package container

import (
	"testing"

	"github.com/jesseduffield/cntr/pkg/cerrors"
	"github.com/stretchr/testify/assert"
)

type stubBackend struct {
	name      string
	toolsErr  error
	pid       int
	lookupErr error
}

func (s *stubBackend) Name() string           { return s.name }
func (s *stubBackend) CheckTools() error      { return s.toolsErr }
func (s *stubBackend) Lookup(string) (int, error) {
	return s.pid, s.lookupErr
}

func TestResolveSkipsMissingTools(t *testing.T) {
	missing := &stubBackend{name: "a", toolsErr: cerrors.New("nope").WithKind(cerrors.KindToolsMissing)}
	present := &stubBackend{name: "b", pid: 7}

	pid, err := Resolve("c", "", []Backend{missing, present})
	assert.NoError(t, err)
	assert.Equal(t, 7, pid)
}

func TestResolvePreferredBackend(t *testing.T) {
	a := &stubBackend{name: "a", pid: 1}
	b := &stubBackend{name: "b", pid: 2}

	pid, err := Resolve("c", "b", []Backend{a, b})
	assert.NoError(t, err)
	assert.Equal(t, 2, pid)
}

func TestResolveUnknownPreferredBackend(t *testing.T) {
	a := &stubBackend{name: "a", pid: 1}
	_, err := Resolve("c", "nonexistent", []Backend{a})
	assert.Error(t, err)
	assert.Equal(t, cerrors.KindContainerNotFound, cerrors.KindOf(err))
}

func TestResolveNoBackendHasTools(t *testing.T) {
	a := &stubBackend{name: "a", toolsErr: cerrors.New("nope").WithKind(cerrors.KindToolsMissing)}
	_, err := Resolve("c", "", []Backend{a})
	assert.Error(t, err)
	assert.Equal(t, cerrors.KindToolsMissing, cerrors.KindOf(err))
}

func TestResolveNotFoundListsTried(t *testing.T) {
	a := &stubBackend{name: "a", lookupErr: cerrors.New("not found").WithKind(cerrors.KindContainerNotFound)}
	_, err := Resolve("c", "", []Backend{a})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "tried")
}
