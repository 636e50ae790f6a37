package container

import (
	"strconv"
	"strings"

	"github.com/jesseduffield/cntr/pkg/cerrors"
)

// parseRunningPid parses the canonical backend wire format from spec.md §4.1
// and §6: a single line "<running>;<pid>\n" where running is "true"/"false"
// and pid a positive integer. It is the Go rendition of
// original_source/src/container/docker.rs's parse_docker_output, generalized
// to every backend that shells out to a CLI and formats its --format string
// the same way.
func parseRunningPid(containerName, cmdline, stdout string) (int, error) {
	line := strings.TrimRight(stdout, "\n")
	fields := strings.SplitN(line, ";", 2)
	if len(fields) != 2 {
		return 0, cerrors.Newf("expected '<running>;<pid>' from '%s', got: %q", cmdline, stdout).WithKind(cerrors.KindContainerNotFound)
	}

	running, pidStr := fields[0], fields[1]
	if running != "true" {
		return 0, cerrors.Newf("container %q is not running", containerName).WithKind(cerrors.KindContainerNotRunning)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(pidStr))
	if err != nil || pid <= 0 {
		return 0, cerrors.Wrapf(err, "expected valid process id from '%s', got: %q", cmdline, pidStr).WithKind(cerrors.KindContainerNotFound)
	}

	return pid, nil
}

// formatRunningPid is the inverse of parseRunningPid, used by the generic
// Command backend's test double and by round-trip tests (spec.md §8).
func formatRunningPid(running bool, pid int) string {
	if !running {
		return "false;0\n"
	}
	return "true;" + strconv.Itoa(pid) + "\n"
}
