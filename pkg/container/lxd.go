package container

import (
	"context"
	"strings"

	"github.com/jesseduffield/cntr/pkg/cerrors"
)

// LXD resolves a container name via `lxc info` (the LXD client binary
// confusingly shares its name with LXC's own CLI), following the same
// "<running>;<pid>" reduction as the rest of the package.
type LXD struct {
	runner CommandRunner
}

// NewLXD returns the LXD backend.
func NewLXD(runner CommandRunner) *LXD {
	return &LXD{runner: runner}
}

func (l *LXD) Name() string { return "lxd" }

func (l *LXD) CheckTools() error {
	if _, err := l.runner.LookPath("lxc"); err != nil {
		return cerrors.New("lxc (LXD client) was not found").WithKind(cerrors.KindToolsMissing)
	}
	return nil
}

func (l *LXD) Lookup(name string) (int, error) {
	ctx := context.Background()
	args := []string{"info", name}
	cmdline := "lxc " + strings.Join(args, " ")

	stdout, stderr, err := l.runner.Run(ctx, "lxc", args...)
	if err != nil {
		return 0, cerrors.Wrapf(err, "running '%s' failed: %s", cmdline, strings.TrimSpace(stderr))
	}
	return parseLxdInfo(name, cmdline, stdout)
}

// parseLxdInfo scans `lxc info`'s "Status:" and "PID:" lines, which is the
// closest LXD's client gets to the running;pid pair every other backend
// reports directly.
func parseLxdInfo(name, cmdline, stdout string) (int, error) {
	var running bool
	var pid int
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Status:"):
			running = strings.TrimSpace(strings.TrimPrefix(line, "Status:")) == "Running"
		case strings.HasPrefix(line, "PID:"):
			pid = atoiOrZero(strings.TrimSpace(strings.TrimPrefix(line, "PID:")))
		}
	}
	return parseRunningPid(name, cmdline, formatRunningPid(running, pid))
}
