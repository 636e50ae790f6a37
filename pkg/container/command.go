package container

import (
	"context"
	"strings"

	"github.com/jesseduffield/cntr/pkg/cerrors"
)

// Command is the generic backend from spec.md §4.1: it runs an arbitrary
// external program, passing the container name as its last argument, and
// expects the program's stdout to follow the same "<running>;<pid>\n"
// contract every other backend reduces to internally.
type Command struct {
	runner CommandRunner
	Path   string
	Args   []string
}

// NewCommand returns a Command backend that invokes path with args followed
// by the container name.
func NewCommand(runner CommandRunner, path string, args ...string) *Command {
	return &Command{runner: runner, Path: path, Args: args}
}

func (c *Command) Name() string { return "command" }

func (c *Command) CheckTools() error {
	if _, err := c.runner.LookPath(c.Path); err != nil {
		return cerrors.Newf("%s was not found", c.Path).WithKind(cerrors.KindToolsMissing)
	}
	return nil
}

func (c *Command) Lookup(name string) (int, error) {
	ctx := context.Background()
	args := append(append([]string{}, c.Args...), name)
	cmdline := c.Path + " " + strings.Join(args, " ")

	stdout, stderr, err := c.runner.Run(ctx, c.Path, args...)
	if err != nil {
		return 0, cerrors.Wrapf(err, "running '%s' failed: %s", cmdline, strings.TrimSpace(stderr))
	}
	return parseRunningPid(name, cmdline, stdout)
}
