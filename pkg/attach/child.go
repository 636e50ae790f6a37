package attach

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/jesseduffield/cntr/pkg/cerrors"
	"github.com/jesseduffield/cntr/pkg/cntrfs"
	"github.com/jesseduffield/cntr/pkg/ipc"
	"github.com/moby/sys/capability"
	"go.podman.io/storage/pkg/reexec"
	"golang.org/x/sys/unix"
)

func init() {
	reexec.Register(reexecEntrypoint, childMain)
}

// childSpec is everything the re-exec'd child process needs, captured
// read-only before the fork-equivalent boundary (§4.6: "state assembled
// before it is read-only in both halves") and handed across via an
// environment variable, since the child is a freshly exec'd binary with no
// access to the parent's Go heap.
type childSpec struct {
	TargetPID      int
	ContainerUID   int
	ContainerGID   int
	EffectiveUID   int
	EffectiveGID   int
	HasEffective   bool
	Home           string
	MountRoot      string
	Command        string
	Arguments      []string
	ExtraPathDirs  []string
	CapInheritable []string
	CapBounding    []string
	CapAmbient     []string
	Groups         []int
	Umask          int
	RootUID        int
	RootGID        int
}

const (
	envChildSpec = "CNTR_CHILD_SPEC"
	// fd indices inside the child, fixed by the ExtraFiles order startChild
	// sets up: stdio occupies 0-2, so ExtraFiles start at 3.
	childIPCFd  = 3
	childFuseFd = 4
)

// startChild spawns the child role as a re-exec'd subprocess: rather than
// an unsafe raw fork(2) in a multi-threaded Go runtime, it re-executes the
// current binary (go.podman.io/storage/pkg/reexec.Command, which targets
// /proc/self/exe) with the ipc socket's child end and the FUSE session fd
// inherited via exec.Cmd.ExtraFiles — the same fd-across-exec technique
// buildah's internal/open package uses for its own chroot subprocess.
//
// This resolves spec §9's SCM_RIGHTS-direction open question: because
// ExtraFiles already hands the session fd to the child for free, no
// SCM_RIGHTS transfer is needed for the fd itself: the ipc pair is used
// purely for its EOF-on-close readiness signal, exactly the fallback the
// open question names ("If inherited, the socketpair is used only as a
// readiness signal").
func startChild(spec childSpec, pair *ipc.Pair, session *cntrfs.Session) (childProcess, error) {
	spec.RootUID = session.RootUID()
	spec.RootGID = session.RootGID()

	data, err := json.Marshal(spec)
	if err != nil {
		return nil, cerrors.Wrap(err, "encoding child spec")
	}

	cmd := reexec.Command(reexecEntrypoint)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), envChildSpec+"="+string(data))
	cmd.ExtraFiles = []*os.File{pair.Child, os.NewFile(uintptr(session.FD), "fuse session")}

	if err := cmd.Start(); err != nil {
		return nil, cerrors.Wrap(err, "failed to fork").WithKind(cerrors.KindChildExec)
	}

	// The parent's half of the ipc pair handoff is done; this process does
	// not own the child end anymore.
	if err := pair.Child.Close(); err != nil {
		return nil, cerrors.Wrap(err, "closing child ipc socket in parent")
	}

	go func() {
		_ = ipc.WaitForEOF(pair.Parent)
	}()

	return &cmdProcess{cmd: cmd}, nil
}

// cmdProcess adapts *exec.Cmd to the childProcess interface runParent uses:
// exec.Cmd itself has no Signal method (only its Process does), and keeping
// the interface lets tests substitute a fake without spawning a process.
type cmdProcess struct {
	cmd *exec.Cmd
}

func (c *cmdProcess) Wait() error { return c.cmd.Wait() }

func (c *cmdProcess) Signal(sig os.Signal) error {
	if c.cmd.Process == nil {
		return nil
	}
	return c.cmd.Process.Signal(sig)
}

// childMain is the reexec entrypoint: it never returns to its caller
// (reexec.Init() in main) on any path, matching §4.8's "Failure handling
// inside the child cannot return to the caller".
func childMain() {
	spec, err := loadChildSpec()
	if err != nil {
		fail(err)
	}

	if err := joinNamespaces(spec.TargetPID); err != nil {
		fail(err)
	}

	if err := mountOverlay(spec); err != nil {
		fail(err)
	}

	// The parent's Server now owns the session fd; the child's copy must go
	// before exec (§8 invariant: no pre-fork fd survives exec except stdio).
	if err := unix.Close(childFuseFd); err != nil {
		fail(cerrors.Wrap(err, "closing fuse session fd"))
	}

	// Signal readiness by closing the child socket end (§4.8 step 3).
	if err := unix.Close(childIPCFd); err != nil {
		fail(cerrors.Wrap(err, "closing ipc socket"))
	}

	if err := changeRoot(spec.MountRoot); err != nil {
		fail(err)
	}

	if err := dropPrivileges(spec); err != nil {
		fail(err)
	}

	if err := execShell(spec); err != nil {
		fail(err)
	}
}

func loadChildSpec() (childSpec, error) {
	raw := os.Getenv(envChildSpec)
	if raw == "" {
		return childSpec{}, cerrors.New("missing " + envChildSpec)
	}
	var spec childSpec
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		return childSpec{}, cerrors.Wrap(err, "decoding child spec")
	}
	return spec, nil
}

// joinNamespaces implements §4.8 step 1's join order: user first (so later
// joins run with the right credentials), then cgroup/ipc/uts/pid/net, mnt
// last (the process must stay in the host mount namespace long enough to
// receive the overlay mount fd).
func joinNamespaces(pid int) error {
	order := []string{"user", "cgroup", "ipc", "uts", "pid", "net", "mnt"}
	for _, kind := range order {
		path := fmt.Sprintf("/proc/%d/ns/%s", pid, kind)
		f, err := os.Open(path)
		if err != nil {
			return cerrors.Wrapf(err, "opening %s", path).WithKind(cerrors.KindNamespaceEnter)
		}
		err = unix.Setns(int(f.Fd()), 0)
		f.Close()
		if err != nil {
			return cerrors.Wrapf(err, "joining %s namespace of pid %d", kind, pid).WithKind(cerrors.KindNamespaceEnter)
		}
	}
	return nil
}

// mountOverlay performs the mount(2) of §4.8 step 2, now running inside the
// target mount namespace, using the FUSE session fd inherited at a fixed
// fd number via ExtraFiles.
func mountOverlay(spec childSpec) error {
	return cntrfs.Mount(childFuseFd, spec.MountRoot, spec.RootUID, spec.RootGID, "")
}

// changeRoot makes mountRoot the effective root, preferring pivot_root and
// falling back to chroot per the Open Questions decision in SPEC_FULL.md,
// grounded on buildah/chroot/run_linux.go's createPlatformContainer.
func changeRoot(mountRoot string) error {
	oldRootFd, err := unix.Open("/", unix.O_DIRECTORY, 0)
	if err != nil {
		return cerrors.Wrap(err, "opening host root directory").WithKind(cerrors.KindMountFailed)
	}
	defer unix.Close(oldRootFd)

	newRootFd, err := unix.Open(mountRoot, unix.O_DIRECTORY, 0)
	if err != nil {
		return cerrors.Wrapf(err, "opening %s", mountRoot).WithKind(cerrors.KindMountFailed)
	}
	defer unix.Close(newRootFd)

	if err := unix.Fchdir(newRootFd); err != nil {
		return cerrors.Wrap(err, "changing to overlay root directory").WithKind(cerrors.KindMountFailed)
	}

	if err := unix.PivotRoot(".", "."); err != nil {
		// Fall back to chroot when the container's mnt namespace doesn't
		// permit pivot_root (e.g. rootfs is not a mount point).
		if chrootErr := unix.Chroot(mountRoot); chrootErr != nil {
			return cerrors.Wrapf(chrootErr, "pivot_root failed (%v) and chroot fallback also failed", err).WithKind(cerrors.KindMountFailed)
		}
		return unix.Chdir("/")
	}

	if err := unix.Fchdir(oldRootFd); err != nil {
		return cerrors.Wrap(err, "returning to host root directory").WithKind(cerrors.KindMountFailed)
	}
	if err := unix.Mount(".", ".", "", unix.MS_SLAVE|unix.MS_REC, ""); err != nil {
		return cerrors.Wrap(err, "marking old root private").WithKind(cerrors.KindMountFailed)
	}
	if err := unix.Unmount(".", unix.MNT_DETACH); err != nil {
		return cerrors.Wrap(err, "detaching old root").WithKind(cerrors.KindMountFailed)
	}
	if err := unix.Fchdir(newRootFd); err != nil {
		return cerrors.Wrap(err, "returning to overlay root").WithKind(cerrors.KindMountFailed)
	}
	return nil
}

// dropPrivileges replicates the target's captured security context (§4.8
// step 5): supplementary groups, gid, uid (in that order), then ambient/
// inheritable capabilities and umask, grounded on buildah/chroot/
// run_common.go's privilege-drop sequence (Setgroups before Setresgid,
// matching the same group-then-gid-then-uid order that sequence uses).
func dropPrivileges(spec childSpec) error {
	if err := syscall.Setgroups(spec.Groups); err != nil {
		return cerrors.Wrap(err, "setting supplementary groups").WithKind(cerrors.KindNamespaceEnter)
	}
	if err := unix.Setresgid(spec.ContainerGID, spec.ContainerGID, spec.ContainerGID); err != nil {
		return cerrors.Wrap(err, "setting gid").WithKind(cerrors.KindNamespaceEnter)
	}
	uid := spec.ContainerUID
	if spec.HasEffective {
		uid = spec.EffectiveUID
	}
	if err := unix.Setresuid(uid, uid, uid); err != nil {
		return cerrors.Wrap(err, "setting uid").WithKind(cerrors.KindNamespaceEnter)
	}

	if err := applyCapabilitySets(spec); err != nil {
		return err
	}

	unix.Umask(spec.Umask)

	home := spec.Home
	if home == "" {
		home = "/"
	}
	if err := unix.Chdir(home); err != nil {
		return cerrors.Wrapf(err, "changing directory to %s", home).WithKind(cerrors.KindNamespaceEnter)
	}
	return nil
}

// applyCapabilitySets restricts the child's ambient and inheritable sets to
// match the captured snapshot, using moby/sys/capability the way buildah's
// setCapabilities does (NewPid2(0) for "current process", then Set+Apply).
func applyCapabilitySets(spec childSpec) error {
	caps, err := capability.NewPid2(0)
	if err != nil {
		return cerrors.Wrap(err, "reading current process capabilities")
	}
	if err := caps.Load(); err != nil {
		return cerrors.Wrap(err, "loading current process capabilities")
	}

	known := capability.ListKnown()
	byName := make(map[string]capability.Cap, len(known))
	for _, c := range known {
		byName["CAP_"+strings.ToUpper(c.String())] = c
	}

	apply := func(capType capability.CapType, names []string) {
		caps.Clear(capType)
		for _, n := range names {
			if c, ok := byName[n]; ok {
				caps.Set(capType, c)
			}
		}
	}

	apply(capability.INHERITABLE, spec.CapInheritable)
	apply(capability.AMBIENT, spec.CapAmbient)
	apply(capability.BOUNDING, spec.CapBounding)

	if err := caps.Apply(capability.CAPS | capability.BOUNDS | capability.AMBS); err != nil {
		return cerrors.Wrap(err, "applying capability sets").WithKind(cerrors.KindNamespaceEnter)
	}
	return nil
}

// execShell execs the target command (default: a shell) with a minimal
// environment, per §4.8 step 6: PATH augmented with /.cntr/bin, HOME, TERM
// passed through, everything else cleared unless whitelisted.
func execShell(spec childSpec) error {
	command := spec.Command
	if command == "" {
		command = "/bin/sh"
	}
	args := append([]string{command}, spec.Arguments...)

	pathDirs := append(append([]string{}, spec.ExtraPathDirs...), "/.cntr/bin",
		"/usr/local/sbin", "/usr/local/bin", "/usr/sbin", "/usr/bin", "/sbin", "/bin")
	env := []string{
		"PATH=" + strings.Join(pathDirs, ":"),
		"HOME=" + spec.Home,
	}
	if term := os.Getenv("TERM"); term != "" {
		env = append(env, "TERM="+term)
	}

	path, err := exec.LookPath(command)
	if err != nil {
		path = command
	}
	if err := syscall.Exec(path, args, env); err != nil {
		return cerrors.Wrapf(err, "exec failed for %s", command).WithKind(cerrors.KindChildExec)
	}
	return nil
}

// fail prints the error chain to stderr and exits with the distinct
// non-zero code §4.8 reserves for child-side failures (the orchestrator's
// own pre-fork errors use the §6 CLI exit codes instead).
func fail(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(125)
}
