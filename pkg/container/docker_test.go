package container

import (
	"testing"

	"github.com/jesseduffield/cntr/pkg/cerrors"
	"github.com/stretchr/testify/assert"
)

func TestDockerLookupViaDockerPid(t *testing.T) {
	runner := newFakeRunner()
	runner.tools["docker-pid"] = true
	runner.stdout["docker-pid"] = "true;4242\n"

	d := NewDocker(runner)
	pid, err := d.Lookup("mycontainer")
	assert.NoError(t, err)
	assert.Equal(t, 4242, pid)
	assert.Equal(t, "docker-pid", runner.lastCmd)
}

func TestDockerLookupFallsBackToInspect(t *testing.T) {
	runner := newFakeRunner()
	runner.tools["docker"] = true
	runner.stdout["docker"] = "true;99\n"

	d := NewDocker(runner)
	pid, err := d.Lookup("mycontainer")
	assert.NoError(t, err)
	assert.Equal(t, 99, pid)
	assert.Equal(t, "docker", runner.lastCmd)
}

func TestDockerCheckToolsMissing(t *testing.T) {
	runner := newFakeRunner()
	d := NewDocker(runner)
	err := d.CheckTools()
	assert.Error(t, err)
	assert.Equal(t, cerrors.KindToolsMissing, cerrors.KindOf(err))
}

func TestDockerLookupNotRunning(t *testing.T) {
	runner := newFakeRunner()
	runner.tools["docker"] = true
	runner.stdout["docker"] = "false;0\n"

	d := NewDocker(runner)
	_, err := d.Lookup("mycontainer")
	assert.Error(t, err)
	assert.Equal(t, cerrors.KindContainerNotRunning, cerrors.KindOf(err))
}
