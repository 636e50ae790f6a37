package container

import "context"

// fakeRunner is the test double for CommandRunner, grounded on the teacher's
// use of small hand-rolled fakes in pkg/commands tests rather than a mocking
// framework.
type fakeRunner struct {
	stdout  map[string]string
	stderr  map[string]string
	err     map[string]error
	tools   map[string]bool
	lastCmd string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		stdout: map[string]string{},
		stderr: map[string]string{},
		err:    map[string]error{},
		tools:  map[string]bool{},
	}
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	f.lastCmd = name
	return f.stdout[name], f.stderr[name], f.err[name]
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.tools[name] {
		return "/usr/bin/" + name, nil
	}
	return "", errNotFound
}

var errNotFound = &pathError{}

type pathError struct{}

func (*pathError) Error() string { return "executable file not found in $PATH" }
