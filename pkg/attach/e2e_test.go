//go:build linux_e2e

// These integration tests require a real Linux host with root privileges,
// /dev/fuse, and the docker CLI, following the same build-tag pattern the
// teacher used for its own Docker-daemon-requiring tests (pkg/commands'
// now-removed integration_test.go skipped in short mode / without a daemon
// rather than failing the whole suite). Run with:
//
//	sudo go test -tags linux_e2e ./pkg/attach/...
package attach

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/jesseduffield/cntr/pkg/cerrors"
	"github.com/jesseduffield/cntr/pkg/container"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func requireDocker(t *testing.T) {
	t.Helper()
	if os.Getuid() != 0 {
		t.Skip("linux_e2e tests must run as root")
	}
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed")
	}
	if err := exec.Command("docker", "info").Run(); err != nil {
		t.Skip("docker daemon not reachable")
	}
}

func runDocker(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := exec.Command("docker", args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	require.NoError(t, cmd.Run(), "docker %v: %s", args, out.String())
	return strings.TrimSpace(out.String())
}

func startAlpine(t *testing.T, name string) {
	t.Helper()
	_ = exec.Command("docker", "rm", "-f", name).Run()
	runDocker(t, "run", "-d", "--name", name, "alpine", "sleep", "3600")
	t.Cleanup(func() { _ = exec.Command("docker", "rm", "-f", name).Run() })
}

func testRunner(t *testing.T) container.CommandRunner {
	return container.NewExecRunner(logrus.NewEntry(logrus.New()))
}

// Scenario 1: attach to a running container gets a shell with the
// container's root uid, the injected /.cntr/bin helpers, and a pid marker.
func TestE2EAttachRunningContainer(t *testing.T) {
	requireDocker(t)
	startAlpine(t, "cntr-e2e-alpine1")

	opts := Options{
		ContainerName: "cntr-e2e-alpine1",
		Backends:      container.DefaultBackends(testRunner(t)),
		Command:       "/bin/sh",
		Arguments:     []string{"-c", "id -u; ls /.cntr/bin; cat /.cntr/cntr.pid"},
	}
	result, err := Run(opts, logrus.NewEntry(logrus.New()))
	require.NoError(t, err)
	require.Equal(t, 0, result.ExitCode)
}

// Scenario 2: container not running yields exit 127 and a descriptive
// message.
func TestE2EContainerNotRunning(t *testing.T) {
	requireDocker(t)
	runDocker(t, "create", "--name", "cntr-e2e-stopped", "alpine", "true")
	t.Cleanup(func() { _ = exec.Command("docker", "rm", "-f", "cntr-e2e-stopped").Run() })

	opts := Options{
		ContainerName: "cntr-e2e-stopped",
		Backends:      container.DefaultBackends(testRunner(t)),
	}
	_, err := Run(opts, logrus.NewEntry(logrus.New()))
	require.Error(t, err)
	require.Equal(t, cerrors.KindContainerNotRunning, cerrors.KindOf(err))
	require.Contains(t, err.Error(), "not running")
}

// Scenario 3: no backend's tooling is installed -> ToolsMissing, exit 126
// at the CLI layer.
func TestE2ENoBackendTools(t *testing.T) {
	opts := Options{
		ContainerName: "whatever",
		Backends:      []container.Backend{&alwaysMissingBackend{}},
	}
	_, err := Run(opts, logrus.NewEntry(logrus.New()))
	require.Error(t, err)
	require.Equal(t, cerrors.KindToolsMissing, cerrors.KindOf(err))
}

type alwaysMissingBackend struct{}

func (*alwaysMissingBackend) Name() string      { return "docker" }
func (*alwaysMissingBackend) CheckTools() error { return cerrors.New("docker-pid not found") }
func (*alwaysMissingBackend) Lookup(string) (int, error) {
	return 0, cerrors.New("unreachable")
}

// Scenario 4: --effective-user overrides the shell's uid/gid and $HOME from
// the container's own /etc/passwd.
func TestE2EEffectiveUserOverride(t *testing.T) {
	requireDocker(t)
	startAlpine(t, "cntr-e2e-alpine4")
	runDocker(t, "exec", "cntr-e2e-alpine4", "adduser", "-D", "-u", "65534", "nobody2")

	opts := Options{
		ContainerName: "cntr-e2e-alpine4",
		Backends:      container.DefaultBackends(testRunner(t)),
		EffectiveUser: "nobody2",
		Command:       "/bin/sh",
		Arguments:     []string{"-c", `[ "$(id -u)" = 65534 ] && echo "$HOME" | grep -q nobody2`},
	}
	result, err := Run(opts, logrus.NewEntry(logrus.New()))
	require.NoError(t, err)
	require.Equal(t, 0, result.ExitCode)
}

// Scenario 5: SIGTERM to the parent mid-session propagates to the child
// within the grace period and the overlay is unmounted on the way out.
func TestE2ESIGTERMGracePeriod(t *testing.T) {
	requireDocker(t)
	startAlpine(t, "cntr-e2e-alpine5")

	opts := Options{
		ContainerName:       "cntr-e2e-alpine5",
		Backends:            container.DefaultBackends(testRunner(t)),
		Command:             "/bin/sh",
		Arguments:           []string{"-c", "trap 'exit 0' TERM; sleep 300"},
		GraceTimeoutSeconds: 2,
	}

	var result Result
	var runErr error
	done := make(chan struct{})
	go func() {
		result, runErr = Run(opts, logrus.NewEntry(logrus.New()))
		close(done)
	}()

	time.Sleep(500 * time.Millisecond)
	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("attach did not return within the grace period")
	}
	require.NoError(t, runErr)
	require.Equal(t, 130, result.ExitCode)
}

// Scenario 6: two concurrent attaches to the same container -> the second
// fails AlreadyAttached without mutating /var/lib/cntr.
func TestE2EConcurrentAttachFailsAlreadyAttached(t *testing.T) {
	requireDocker(t)
	startAlpine(t, "cntr-e2e-alpine6")

	var wg sync.WaitGroup
	results := make([]error, 2)
	wg.Add(2)
	for i := range 2 {
		go func(i int) {
			defer wg.Done()
			opts := Options{
				ContainerName: "cntr-e2e-alpine6",
				Backends:      container.DefaultBackends(testRunner(t)),
				Command:       "/bin/sh",
				Arguments:     []string{"-c", "sleep 2"},
			}
			_, err := Run(opts, logrus.NewEntry(logrus.New()))
			results[i] = err
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case cerrors.KindOf(err) == cerrors.KindAlreadyAttached:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, successes, "exactly one attach should succeed")
	require.Equal(t, 1, conflicts, "exactly one attach should fail AlreadyAttached")
}
