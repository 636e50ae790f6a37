package container

import (
	"context"
	"strings"

	"github.com/jesseduffield/cntr/pkg/cerrors"
)

// Nspawn resolves a machine name via `machinectl show`, systemd-nspawn's
// inspection tool and the last named backend in spec.md §4.1's list.
type Nspawn struct {
	runner CommandRunner
}

// NewNspawn returns the Nspawn backend.
func NewNspawn(runner CommandRunner) *Nspawn {
	return &Nspawn{runner: runner}
}

func (n *Nspawn) Name() string { return "nspawn" }

func (n *Nspawn) CheckTools() error {
	if _, err := n.runner.LookPath("machinectl"); err != nil {
		return cerrors.New("machinectl was not found").WithKind(cerrors.KindToolsMissing)
	}
	return nil
}

func (n *Nspawn) Lookup(name string) (int, error) {
	ctx := context.Background()
	args := []string{"show", name, "--property=State", "--property=Leader"}
	cmdline := "machinectl " + strings.Join(args, " ")

	stdout, stderr, err := n.runner.Run(ctx, "machinectl", args...)
	if err != nil {
		return 0, cerrors.Wrapf(err, "running '%s' failed: %s", cmdline, strings.TrimSpace(stderr))
	}
	return parseMachinectlShow(name, cmdline, stdout)
}

// parseMachinectlShow reads `machinectl show`'s "State=" and "Leader="
// KEY=VALUE lines.
func parseMachinectlShow(name, cmdline, stdout string) (int, error) {
	var running bool
	var pid int
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "State="):
			running = strings.TrimPrefix(line, "State=") == "running"
		case strings.HasPrefix(line, "Leader="):
			pid = atoiOrZero(strings.TrimPrefix(line, "Leader="))
		}
	}
	return parseRunningPid(name, cmdline, formatRunningPid(running, pid))
}
