package attach

import (
	"github.com/jesseduffield/cntr/pkg/container"
)

// Options configures one attach invocation, the Go rendition of
// original_source's AttachOptions (src/attach/mod.rs).
type Options struct {
	ContainerName string
	Backends      []container.Backend
	PreferredType string

	// Command defaults to the user's shell (§6 "attach" CLI surface); empty
	// means "use the effective user's (or container init's) shell".
	Command   string
	Arguments []string

	EffectiveUser string // --effective-user, looked up in the container's /etc/passwd

	MountRoot      string // defaults to /var/lib/cntr
	HelperBinaries map[string]string

	// ExtraPathDirs are prepended to the child's PATH alongside /.cntr/bin,
	// for debuggers installed outside the usual locations.
	ExtraPathDirs []string

	// Interactive selects attach (pty, default shell) vs exec (no pty) per
	// spec §6's two subcommands.
	Interactive bool

	// GraceTimeoutSeconds bounds SIGTERM->SIGKILL escalation of the child
	// during cancellation (§5, "wait up to a bounded grace period").
	GraceTimeoutSeconds int

	// LockTimeoutSeconds bounds how long Run waits to acquire
	// /var/lib/cntr/.lock before giving up with AlreadyAttached. 0 means
	// try once, without blocking.
	LockTimeoutSeconds int
}

// Result is what a successful (or child-failed) attach reports back to the
// CLI layer: the child's exit code, per §6 ("Exit code equals the child's
// exit code").
type Result struct {
	ExitCode int
}
