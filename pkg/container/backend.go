// Package container implements the runtime probes (spec §4.1, component C1):
// given a container name, resolve its init pid through one of several
// container-runtime backends. It generalizes the teacher's multi-backend
// ContainerRuntime interface (pkg/commands/runtime.go, runtime_socket.go,
// runtime_libpod.go) down to the two-method contract the spec needs, and
// grounds the wire parsing on original_source/src/container/docker.rs's
// parse_docker_output.
package container

import (
	"github.com/jesseduffield/cntr/pkg/cerrors"
)

// Backend resolves a container name to its init pid and reports whether its
// required tools are present on the host. Spec §4.1's Docker/Podman/
// Containerd/LXC/LXD/Rkt/Nspawn/Command variants all implement this.
type Backend interface {
	// Name identifies the backend for --type selection and error messages.
	Name() string

	// CheckTools reports whether the backend's required host tooling is
	// present. A backend with missing tools is silently skipped during
	// auto-probing (§4.1).
	CheckTools() error

	// Lookup resolves name to its init pid on the host, or returns an error
	// carrying a cerrors.Kind of ContainerNotRunning/ContainerNotFound.
	Lookup(name string) (int, error)
}

// Resolve selects a backend and returns the looked-up pid. If preferred is
// non-empty, only that backend is tried (matching --type). Otherwise every
// backend in backends is probed in order: CheckTools() failures are skipped
// silently, and the first successful Lookup wins. If nothing resolves the
// name, ContainerNotFound lists every backend that was actually tried.
func Resolve(name string, preferred string, backends []Backend) (int, error) {
	if preferred != "" {
		for _, b := range backends {
			if b.Name() != preferred {
				continue
			}
			if err := b.CheckTools(); err != nil {
				return 0, cerrors.Wrapf(err, "required tools for backend %q are missing", preferred).WithKind(cerrors.KindToolsMissing)
			}
			return b.Lookup(name)
		}
		return 0, cerrors.Newf("unknown container backend %q", preferred).WithKind(cerrors.KindContainerNotFound)
	}

	var tried []string
	var lastErr error
	for _, b := range backends {
		if err := b.CheckTools(); err != nil {
			continue
		}
		tried = append(tried, b.Name())
		pid, err := b.Lookup(name)
		if err == nil {
			return pid, nil
		}
		lastErr = err
	}

	if len(tried) == 0 {
		return 0, cerrors.New("no container backend has its required tools installed").WithKind(cerrors.KindToolsMissing)
	}

	return 0, cerrors.Wrapf(lastErr, "container %q not found (tried: %v)", name, tried).WithKind(cerrors.KindContainerNotFound)
}

// DefaultBackends returns the backends probed in spec.md's preference order
// when --type isn't given, using osExec as the process runner for every
// backend that shells out to a runtime CLI.
func DefaultBackends(runner CommandRunner) []Backend {
	return []Backend{
		NewDocker(runner),
		NewPodman(runner),
		NewContainerd(runner),
		NewLXC(runner),
		NewLXD(runner),
		NewRkt(runner),
		NewNspawn(runner),
	}
}
