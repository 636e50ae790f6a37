package container

import (
	"context"
	"os"
	"strings"

	"github.com/jesseduffield/cntr/pkg/cerrors"
)

// containerHostEnvKey is podman's standard remote-socket override, reused
// from the teacher's podman_host_unix.go probing order: if set, it's passed
// through explicitly via --url rather than relied on implicitly via process
// environment inheritance.
const containerHostEnvKey = "CONTAINER_HOST"

// Podman resolves a container name via `podman inspect --format`, the CLI
// equivalent of the teacher's SocketRuntime/LibpodRuntime split
// (pkg/commands/runtime_socket.go, runtime_libpod.go) but narrowed to the
// single pid lookup this spec needs.
type Podman struct {
	runner CommandRunner
}

// NewPodman returns the Podman backend.
func NewPodman(runner CommandRunner) *Podman {
	return &Podman{runner: runner}
}

func (p *Podman) Name() string { return "podman" }

func (p *Podman) CheckTools() error {
	if _, err := p.runner.LookPath("podman"); err != nil {
		return cerrors.New("podman was not found").WithKind(cerrors.KindToolsMissing)
	}
	return nil
}

func (p *Podman) Lookup(name string) (int, error) {
	ctx := context.Background()
	args := podmanArgs("inspect", "--format", "{{.State.Running}};{{.State.Pid}}", name)
	cmdline := "podman " + strings.Join(args, " ")

	stdout, stderr, err := p.runner.Run(ctx, "podman", args...)
	if err != nil {
		return 0, cerrors.Wrapf(err, "running '%s' failed: %s", cmdline, strings.TrimSpace(stderr))
	}
	return parseRunningPid(name, cmdline, stdout)
}

// podmanArgs prepends --url when CONTAINER_HOST is set, so a remote podman
// socket is addressed explicitly rather than relied on via environment
// inheritance in the CommandRunner.
func podmanArgs(args ...string) []string {
	if host := os.Getenv(containerHostEnvKey); host != "" {
		return append([]string{"--url", host}, args...)
	}
	return args
}
