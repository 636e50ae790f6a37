package app

import (
	"testing"

	"github.com/jesseduffield/cntr/pkg/cerrors"
	"github.com/jesseduffield/cntr/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAppConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	t.Setenv("CONFIG_DIR", t.TempDir())
	cfg, err := config.NewAppConfig("cntr", "test-version", "test-commit", false)
	require.NoError(t, err)
	return cfg
}

func TestNewAppInitializesFields(t *testing.T) {
	cfg := newTestAppConfig(t)

	app, err := NewApp(cfg)
	require.NoError(t, err)
	assert.NotNil(t, app.Config)
	assert.NotNil(t, app.Log)
	assert.NotNil(t, app.ErrorChan)
}

func TestKnownErrorPermissionDenied(t *testing.T) {
	cfg := newTestAppConfig(t)
	app, err := NewApp(cfg)
	require.NoError(t, err)

	text, known := app.KnownError(&mockError{message: "open /dev/fuse: permission denied"})
	assert.True(t, known)
	assert.NotEmpty(t, text)
}

func TestKnownErrorAlreadyAttached(t *testing.T) {
	cfg := newTestAppConfig(t)
	app, err := NewApp(cfg)
	require.NoError(t, err)

	wrapped := cerrors.New("already attached").WithKind(cerrors.KindAlreadyAttached)
	text, known := app.KnownError(wrapped)
	assert.True(t, known)
	assert.Contains(t, text, "already attached")
}

func TestKnownErrorUnknown(t *testing.T) {
	cfg := newTestAppConfig(t)
	app, err := NewApp(cfg)
	require.NoError(t, err)

	text, known := app.KnownError(&mockError{message: "some unrelated failure"})
	assert.False(t, known)
	assert.Empty(t, text)
}

type mockError struct {
	message string
}

func (e *mockError) Error() string {
	return e.message
}
