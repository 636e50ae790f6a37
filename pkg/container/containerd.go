package container

import (
	"context"
	"strings"

	"github.com/jesseduffield/cntr/pkg/cerrors"
)

// Containerd resolves a container name via ctr/crictl task info, reducing
// containerd's native task-pid reporting to the same "<running>;<pid>"
// contract every backend here follows (spec §4.1).
type Containerd struct {
	runner CommandRunner
}

// NewContainerd returns the Containerd backend.
func NewContainerd(runner CommandRunner) *Containerd {
	return &Containerd{runner: runner}
}

func (c *Containerd) Name() string { return "containerd" }

func (c *Containerd) CheckTools() error {
	if _, err := c.runner.LookPath("ctr"); err != nil {
		return cerrors.New("ctr was not found").WithKind(cerrors.KindToolsMissing)
	}
	return nil
}

func (c *Containerd) Lookup(name string) (int, error) {
	ctx := context.Background()
	args := []string{"-n", "k8s.io", "task", "ls"}
	cmdline := "ctr " + strings.Join(args, " ")

	stdout, stderr, err := c.runner.Run(ctx, "ctr", args...)
	if err != nil {
		return 0, cerrors.Wrapf(err, "running '%s' failed: %s", cmdline, strings.TrimSpace(stderr))
	}
	return parseCtrTaskList(name, cmdline, stdout)
}

// parseCtrTaskList scans `ctr task ls` output for a row starting with name,
// whose columns are TASK, PID, STATUS. It adapts the container-name output
// of ctr to the lookup(name) → pid contract the rest of the package shares.
func parseCtrTaskList(name, cmdline, stdout string) (int, error) {
	for _, line := range strings.Split(stdout, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 || fields[0] != name {
			continue
		}
		running := fields[2] == "RUNNING"
		return parseRunningPid(name, cmdline, formatRunningPid(running, atoiOrZero(fields[1])))
	}
	return 0, cerrors.Newf("container %q not found in '%s' output", name, cmdline).WithKind(cerrors.KindContainerNotFound)
}

func atoiOrZero(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
