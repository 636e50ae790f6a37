package container

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CommandRunner executes a backend's probe command and returns its stdout,
// stderr and exit error. It plays the role of commands.OSCommand
// (pkg/commands/os.go) in the teacher, trimmed to the one operation every
// backend here needs.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
	LookPath(name string) (string, error)
}

// ExecRunner is the real CommandRunner, shelling out via os/exec the way
// OSCommand.NewCmd does, with a logrus entry for timing just like
// OSCommand.RunCommandWithOutput logs how long each invocation took.
type ExecRunner struct {
	Log *logrus.Entry
}

// NewExecRunner returns a CommandRunner backed by os/exec.
func NewExecRunner(log *logrus.Entry) *ExecRunner {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &ExecRunner{Log: log}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	before := time.Now()
	err := cmd.Run()
	r.Log.Debugf("'%s %s': %s", name, strings.Join(args, " "), time.Since(before))

	return stdout.String(), stderr.String(), err
}

func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
