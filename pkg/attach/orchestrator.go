// Package attach implements the attach orchestrator (component C6) and the
// two post-fork roles it splits into: the parent (C7, FUSE server) and the
// child (C8, namespace-joining shell launcher). Grounded on
// original_source/src/attach/mod.rs's attach() function for the pre-fork
// sequence, and on go.podman.io/storage/pkg/unshare's Cmd.Start() for how
// to express "fork" safely from a multi-threaded Go runtime: instead of a
// raw fork(2) (unsafe once goroutines/threads exist), the parent re-execs
// itself as a child process via go.podman.io/storage/pkg/reexec, handing
// state across the boundary through environment variables and pre-opened
// file descriptors passed via exec.Cmd.ExtraFiles — the same mechanism
// buildah's internal/open package uses to cross a process boundary with an
// open fd.
package attach

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jesseduffield/cntr/pkg/cerrors"
	"github.com/jesseduffield/cntr/pkg/cntrfs"
	"github.com/jesseduffield/cntr/pkg/container"
	"github.com/jesseduffield/cntr/pkg/dotcntr"
	"github.com/jesseduffield/cntr/pkg/ipc"
	"github.com/jesseduffield/cntr/pkg/lockfile"
	"github.com/jesseduffield/cntr/pkg/procfs"
	"github.com/sirupsen/logrus"
)

const defaultMountRoot = "/var/lib/cntr"

// reexecEntrypoint is the name the child process is re-exec'd under; see
// child.go's init() registering it with reexec.Register.
const reexecEntrypoint = "cntr-child"

// Run executes the full pre-fork sequence of spec §4.6 and then splits into
// the parent (this goroutine) and child (a re-exec'd subprocess) roles.
func Run(opts Options, log *logrus.Entry) (Result, error) {
	mountRoot := opts.MountRoot
	if mountRoot == "" {
		mountRoot = defaultMountRoot
	}

	// Step 1: resolve pid via C1.
	pid, err := container.Resolve(opts.ContainerName, opts.PreferredType, opts.Backends)
	if err != nil {
		return Result{}, err
	}

	// Step 2: read id maps and process status via C2.
	uidMap, err := procfs.ReadIDMap(pid, procfs.KindUID)
	if err != nil {
		return Result{}, err
	}
	gidMap, err := procfs.ReadIDMap(pid, procfs.KindGID)
	if err != nil {
		return Result{}, err
	}
	status, err := procfs.ReadStatus(pid)
	if err != nil {
		return Result{}, cerrors.Wrap(err, "failed to get status of target process")
	}

	// Step 3: stat /proc/<pid> for the container's host-visible uid/gid,
	// translated up to in-namespace ids.
	procDir := fmt.Sprintf("/proc/%d", pid)
	fi, err := os.Stat(procDir)
	if err != nil {
		return Result{}, cerrors.Wrapf(err, "failed to stat %s", procDir).WithKind(cerrors.KindContainerDied)
	}
	sysStat, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return Result{}, cerrors.New("unsupported platform: no Stat_t from os.Stat")
	}
	containerUID, _ := uidMap.MapUp(int(sysStat.Uid))
	containerGID, _ := gidMap.MapUp(int(sysStat.Gid))

	// Step 4: effective-user override.
	var home string
	hasEffective := false
	effUID, effGID := containerUID, containerGID
	if opts.EffectiveUser != "" {
		passwd, err := LookupContainerUser(pid, opts.EffectiveUser)
		if err != nil {
			return Result{}, err
		}
		effUID, effGID = passwd.UID, passwd.GID
		home = passwd.Home
		hasEffective = true
	}

	// Step 5: marker payload (C3).
	tree, err := dotcntr.Build(dotcntr.Options{
		AttachPID:      os.Getpid(),
		Shell:          shellFor(opts, home),
		Home:           home,
		HelperBinaries: opts.HelperBinaries,
	})
	if err != nil {
		return Result{}, cerrors.Wrap(err, "failed to setup /.cntr")
	}

	// Step 6: overlay handle (C4).
	session, err := cntrfs.Open(cntrfs.MountOptions{
		Prefix:         "/",
		UIDMap:         uidMap,
		GIDMap:         gidMap,
		EffectiveUID:   effUID,
		EffectiveGID:   effGID,
		HasEffectiveID: hasEffective,
		DotCntr:        tree,
	})
	if err != nil {
		return Result{}, cerrors.Wrap(err, "cannot mount filesystem")
	}
	defer session.Close()

	// Step 7: ensure the host mount point exists.
	if err := os.MkdirAll(mountRoot, 0o755); err != nil {
		return Result{}, cerrors.Wrapf(err, "failed to create %s", mountRoot)
	}

	lock, err := lockfile.AcquireWithTimeout(mountRoot, time.Duration(opts.LockTimeoutSeconds)*time.Second)
	if err != nil {
		return Result{}, err
	}
	defer lock.Release()

	// Step 8: socket pair (C5).
	pair, err := ipc.NewPair()
	if err != nil {
		return Result{}, cerrors.Wrap(err, "failed to set up ipc")
	}

	// Invariant: the looked-up pid must still be alive right before the
	// fork-equivalent step (§4.6 invariants).
	if !processAlive(pid) {
		return Result{}, cerrors.Newf("container process %d died before attach", pid).WithKind(cerrors.KindContainerDied)
	}
	startUserNS, err := procfs.UserNamespace(pid)
	if err != nil {
		return Result{}, err
	}

	// Step 9: fork — expressed as a re-exec'd child process (see package doc).
	childSpec := childSpec{
		TargetPID:     pid,
		ContainerUID:  containerUID,
		ContainerGID:  containerGID,
		EffectiveUID:  effUID,
		EffectiveGID:  effGID,
		HasEffective:  hasEffective,
		Home:          home,
		MountRoot:     mountRoot,
		Command:       opts.Command,
		Arguments:     opts.Arguments,
		ExtraPathDirs: opts.ExtraPathDirs,
		CapInheritable: status.CapInheritable,
		CapBounding:    status.CapBounding,
		CapAmbient:     status.CapAmbient,
		Groups:         status.Groups,
		Umask:          status.Umask,
	}

	cmd, err := startChild(childSpec, pair, session)
	if err != nil {
		return Result{}, err
	}

	endUserNS, err := procfs.UserNamespace(pid)
	if err == nil && endUserNS != startUserNS {
		log.Warn("target process's user namespace changed during attach; proceeding best-effort")
	}

	return runParent(parentContext{
		log:       log,
		cmd:       cmd,
		session:   session,
		pair:      pair,
		mountRoot: mountRoot,
		grace:     graceDuration(opts.GraceTimeoutSeconds),
	})
}

func shellFor(opts Options, home string) string {
	if opts.Command != "" {
		return opts.Command
	}
	return "/bin/sh"
}

func processAlive(pid int) bool {
	err := syscall.Kill(pid, 0)
	return err == nil
}

func graceDuration(seconds int) time.Duration {
	if seconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(seconds) * time.Second
}

// parentContext bundles what runParent needs to drive the FUSE server loop
// and child lifecycle (C7).
type parentContext struct {
	log       *logrus.Entry
	cmd       childProcess
	session   *cntrfs.Session
	pair      *ipc.Pair
	mountRoot string
	grace     time.Duration
}

func runParent(ctx parentContext) (Result, error) {
	server := cntrfs.NewServer(ctx.session, ctx.log)
	stop := make(chan struct{})
	serveErr := make(chan error, 1)
	go func() { serveErr <- server.Serve(stop) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	childDone := make(chan error, 1)
	go func() { childDone <- ctx.cmd.Wait() }()

	var result Result
	select {
	case sig := <-sigCh:
		ctx.log.Infof("received %s, shutting down", sig)
		ctx.cmd.Signal(syscall.SIGTERM)
		select {
		case <-childDone:
		case <-time.After(ctx.grace):
			ctx.cmd.Signal(syscall.SIGKILL)
			<-childDone
		}
		result = Result{ExitCode: 130}
	case err := <-childDone:
		result = Result{ExitCode: exitCodeOf(err)}
	}

	close(stop)
	_ = cntrfs.Unmount(ctx.mountRoot)
	return result, nil
}

func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(interface{ ExitCode() int }); ok {
		return exitErr.ExitCode()
	}
	return 1
}

// childProcess is the subset of *exec.Cmd runParent needs, kept as an
// interface so tests can substitute a fake without spawning a real process.
type childProcess interface {
	Wait() error
	Signal(sig os.Signal) error
}
