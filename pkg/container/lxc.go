package container

import (
	"context"
	"strings"

	"github.com/jesseduffield/cntr/pkg/cerrors"
)

// LXC resolves a container name via `lxc-info`, the classic LXC tool named
// directly in spec.md §4.1's backend list.
type LXC struct {
	runner CommandRunner
}

// NewLXC returns the LXC backend.
func NewLXC(runner CommandRunner) *LXC {
	return &LXC{runner: runner}
}

func (l *LXC) Name() string { return "lxc" }

func (l *LXC) CheckTools() error {
	if _, err := l.runner.LookPath("lxc-info"); err != nil {
		return cerrors.New("lxc-info was not found").WithKind(cerrors.KindToolsMissing)
	}
	return nil
}

func (l *LXC) Lookup(name string) (int, error) {
	ctx := context.Background()
	args := []string{"--name", name, "--pid", "--state", "--no-humanize"}
	cmdline := "lxc-info " + strings.Join(args, " ")

	stdout, stderr, err := l.runner.Run(ctx, "lxc-info", args...)
	if err != nil {
		return 0, cerrors.Wrapf(err, "running '%s' failed: %s", cmdline, strings.TrimSpace(stderr))
	}
	return parseLxcInfo(name, cmdline, stdout)
}

// parseLxcInfo reads lxc-info's two plain lines (state, then pid) produced
// by --no-humanize and folds them into the shared "<running>;<pid>" parser.
func parseLxcInfo(name, cmdline, stdout string) (int, error) {
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 {
		return 0, cerrors.Newf("expected two lines from '%s', got: %q", cmdline, stdout).WithKind(cerrors.KindContainerNotFound)
	}

	running := strings.TrimSpace(lines[0]) == "RUNNING"
	return parseRunningPid(name, cmdline, formatRunningPid(running, atoiOrZero(strings.TrimSpace(lines[1]))))
}
