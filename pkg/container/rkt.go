package container

import (
	"context"
	"strings"

	"github.com/jesseduffield/cntr/pkg/cerrors"
)

// Rkt resolves a container (pod) name via `rkt status`, the rkt runtime
// named in spec.md §4.1's backend list.
type Rkt struct {
	runner CommandRunner
}

// NewRkt returns the Rkt backend.
func NewRkt(runner CommandRunner) *Rkt {
	return &Rkt{runner: runner}
}

func (r *Rkt) Name() string { return "rkt" }

func (r *Rkt) CheckTools() error {
	if _, err := r.runner.LookPath("rkt"); err != nil {
		return cerrors.New("rkt was not found").WithKind(cerrors.KindToolsMissing)
	}
	return nil
}

func (r *Rkt) Lookup(name string) (int, error) {
	ctx := context.Background()
	args := []string{"status", name}
	cmdline := "rkt " + strings.Join(args, " ")

	stdout, stderr, err := r.runner.Run(ctx, "rkt", args...)
	if err != nil {
		return 0, cerrors.Wrapf(err, "running '%s' failed: %s", cmdline, strings.TrimSpace(stderr))
	}
	return parseRktStatus(name, cmdline, stdout)
}

// parseRktStatus reads `rkt status`'s "state=" and "pid=" lines.
func parseRktStatus(name, cmdline, stdout string) (int, error) {
	var running bool
	var pid int
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "state="):
			running = strings.TrimPrefix(line, "state=") == "running"
		case strings.HasPrefix(line, "pid="):
			pid = atoiOrZero(strings.TrimPrefix(line, "pid="))
		}
	}
	return parseRunningPid(name, cmdline, formatRunningPid(running, pid))
}
