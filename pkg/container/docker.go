package container

import (
	"context"
	"strings"

	"github.com/jesseduffield/cntr/pkg/cerrors"
)

// Docker resolves a container name via the docker-pid helper when present,
// else via `docker inspect --format`, following
// original_source/src/container/docker.rs's Container impl for Docker.
type Docker struct {
	runner CommandRunner
}

// NewDocker returns the Docker backend.
func NewDocker(runner CommandRunner) *Docker {
	return &Docker{runner: runner}
}

func (d *Docker) Name() string { return "docker" }

func (d *Docker) CheckTools() error {
	if _, err := d.runner.LookPath("docker-pid"); err == nil {
		return nil
	}
	if _, err := d.runner.LookPath("docker"); err == nil {
		return nil
	}
	return cerrors.New("Neither docker or docker-pid was found").WithKind(cerrors.KindToolsMissing)
}

func (d *Docker) Lookup(name string) (int, error) {
	ctx := context.Background()

	var args []string
	var cmdline string
	if _, err := d.runner.LookPath("docker-pid"); err == nil {
		args = []string{name}
		stdout, stderr, err := d.runner.Run(ctx, "docker-pid", args...)
		cmdline = "docker-pid " + name
		if err != nil {
			return 0, cerrors.Wrapf(err, "running '%s' failed: %s", cmdline, strings.TrimSpace(stderr))
		}
		return parseRunningPid(name, cmdline, stdout)
	}

	args = []string{"inspect", "--format", "{{.State.Running}};{{.State.Pid}}", name}
	cmdline = "docker " + strings.Join(args, " ")
	stdout, stderr, err := d.runner.Run(ctx, "docker", args...)
	if err != nil {
		return 0, cerrors.Wrapf(err, "running '%s' failed: %s", cmdline, strings.TrimSpace(stderr))
	}
	return parseRunningPid(name, cmdline, stdout)
}
