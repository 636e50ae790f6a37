// Package app wires together cntr's bootstrap sequence: config, logger, and
// the attach orchestrator, mirroring lazydocker's pkg/app/app.go minus the
// GUI (cntr has no TUI to launch; Run drives one attach and returns).
package app

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/jesseduffield/cntr/pkg/attach"
	"github.com/jesseduffield/cntr/pkg/cerrors"
	"github.com/jesseduffield/cntr/pkg/config"
	"github.com/jesseduffield/cntr/pkg/log"
	"github.com/sirupsen/logrus"
)

// App struct
type App struct {
	closers []io.Closer

	Config    *config.AppConfig
	Log       *logrus.Entry
	ErrorChan chan error
}

// NewApp bootstraps a new application: logger and config only, since the
// attach orchestrator is stateless and built fresh per invocation in Run.
func NewApp(cfg *config.AppConfig) (*App, error) {
	app := &App{
		closers:   []io.Closer{},
		Config:    cfg,
		ErrorChan: make(chan error),
	}
	app.Log = log.NewLogger(cfg)
	return app, nil
}

// Run drives a single attach invocation, blocking for the duration of the
// session the way Gui.RunWithSubprocesses blocked for the teacher's TUI
// lifetime.
func (app *App) Run(opts attach.Options) (attach.Result, error) {
	if err := waitForTerminalSpace(); err != nil {
		return attach.Result{}, err
	}
	return attach.Run(opts, app.Log)
}

// waitForTerminalSpace checks that stdin has window space available before
// attaching a shell to it, the same pre-flight check
// app.waitForTerminalSpace performs for the teacher's TUI, just against
// golang.org/x/sys/unix's ioctl instead of ssh/terminal (cntr has no other
// use for the latter now that the GUI is gone).
func waitForTerminalSpace() error {
	ws, err := unix.IoctlGetWinsize(int(os.Stdin.Fd()), unix.TIOCGWINSZ)
	if err == nil && ws.Col > 0 && ws.Row > 0 {
		return nil
	}

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)
	select {
	case <-winch:
		return nil
	case <-time.After(time.Second):
		return nil // non-interactive invocations (exec, piped stdin) have no window at all
	}
}

// Close closes any resources
func (app *App) Close() error {
	for _, closer := range app.closers {
		if err := closer.Close(); err != nil {
			return err
		}
	}
	return nil
}

type errorMapping struct {
	originalError string
	newError      string
}

// KnownError takes an error and tells us whether it's an error that we know
// about where we can print a nicely formatted version of it rather than the
// full error chain, the same role app.KnownError plays for the teacher's
// Docker-socket-permission message.
func (app *App) KnownError(err error) (string, bool) {
	errorMessage := err.Error()

	mappings := []errorMapping{
		{
			originalError: "permission denied",
			newError:      "Permission denied: attaching to a container usually requires root (namespace joins and mount(2) are privileged operations).",
		},
		{
			originalError: "no backend",
			newError:      "No supported container runtime was found. Install docker, podman, or another supported runtime, or pass --type explicitly.",
		},
	}

	for _, mapping := range mappings {
		if strings.Contains(errorMessage, mapping.originalError) {
			return mapping.newError, true
		}
	}

	if kind := cerrors.KindOf(err); kind == cerrors.KindAlreadyAttached {
		return fmt.Sprintf("%s: another cntr session is already attached to this container.", err.Error()), true
	}

	return "", false
}
