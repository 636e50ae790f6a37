package procfs

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jesseduffield/cntr/pkg/cerrors"
	"github.com/moby/sys/capability"
)

// Status is the immutable process status snapshot of spec §3, captured once
// from /proc/<pid>/status. Field selection and the line-scanning shape are
// grounded on the teacher's vendored psgo/internal/proc/status.go, narrowed
// to the fields the attach orchestrator actually consumes (uid/gid pairs,
// groups, capability sets, session id, umask) plus the namespace fd table
// spec §3 adds on top, read separately from /proc/<pid>/ns/*.
type Status struct {
	// Uids holds [real, effective, saved, filesystem], as /proc/<pid>/status's
	// "Uid:" line lists them.
	Uids [4]int
	Gids [4]int

	// Groups is the supplementary group list, copied verbatim per the Open
	// Questions decision in SPEC_FULL.md (no /etc/group re-resolution).
	Groups []int

	// Cap{Inheritable,Permitted,Effective,Bounding,Ambient} are the five
	// capability sets named in spec §3, each as the set of capability names
	// (e.g. "CAP_SYS_ADMIN") currently enabled.
	CapInheritable []string
	CapPermitted   []string
	CapEffective   []string
	CapBounding    []string
	CapAmbient     []string

	// SessionID is a best-effort field: Linux's /proc/<pid>/status does not
	// expose it directly, so it is read from /proc/<pid>/stat's 6th field.
	SessionID int

	// Umask is the process umask in the numeric form status reports it,
	// e.g. 0022.
	Umask int

	// Namespaces maps a namespace kind ("mnt", "uts", "ipc", "net", "pid",
	// "user", "cgroup") to the /proc/<pid>/ns/<kind> symlink target, e.g.
	// "pid:[4026532341]". Used to detect whether the target's namespace was
	// replaced between the pre-fork read and the fork (§4.6 invariant).
	Namespaces map[string]string
}

// namespaceKinds is every namespace kind the child joins, in the join order
// spec §4.8 step 1 specifies (user first, mnt last).
var namespaceKinds = []string{"user", "cgroup", "ipc", "uts", "pid", "net", "mnt"}

// ReadStatus parses /proc/<pid>/status and /proc/<pid>/ns/* into a Status
// snapshot. Unknown status keys are ignored, matching §4.2's "Unknown keys
// are preserved verbatim and ignored" (here: simply skipped, since nothing
// downstream needs the raw text).
func ReadStatus(pid int) (*Status, error) {
	path := fmt.Sprintf("/proc/%d/status", pid)
	f, err := os.Open(path)
	if err != nil {
		return nil, cerrors.Wrapf(err, "reading %s", path).WithKind(cerrors.KindStatusParse)
	}
	defer f.Close()

	s := &Status{Namespaces: map[string]string{}}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "Uid:":
			if err := parseIntQuad(fields[1:], &s.Uids); err != nil {
				return nil, cerrors.Wrapf(err, "parsing %s line %q", path, line).WithKind(cerrors.KindStatusParse)
			}
		case "Gid:":
			if err := parseIntQuad(fields[1:], &s.Gids); err != nil {
				return nil, cerrors.Wrapf(err, "parsing %s line %q", path, line).WithKind(cerrors.KindStatusParse)
			}
		case "Groups:":
			s.Groups = parseIntList(fields[1:])
		case "Umask:":
			if mask, err := strconv.ParseInt(fields[1], 8, 32); err == nil {
				s.Umask = int(mask)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, cerrors.Wrapf(err, "reading %s", path).WithKind(cerrors.KindStatusParse)
	}

	sessionID, err := readSessionID(pid)
	if err != nil {
		return nil, err
	}
	s.SessionID = sessionID

	caps, err := readCapabilities(pid)
	if err != nil {
		return nil, err
	}
	s.CapInheritable = caps[capability.INHERITABLE]
	s.CapPermitted = caps[capability.PERMITTED]
	s.CapEffective = caps[capability.EFFECTIVE]
	s.CapBounding = caps[capability.BOUNDING]
	s.CapAmbient = caps[capability.AMBIENT]

	for _, kind := range namespaceKinds {
		target, err := os.Readlink(fmt.Sprintf("/proc/%d/ns/%s", pid, kind))
		if err != nil {
			return nil, cerrors.Wrapf(err, "reading /proc/%d/ns/%s", pid, kind).WithKind(cerrors.KindStatusParse)
		}
		s.Namespaces[kind] = target
	}

	return s, nil
}

// UserNamespace re-reads /proc/<pid>/ns/user, for the §4.6 best-effort check
// that the target's user namespace was not replaced between the pre-fork
// read and fork.
func UserNamespace(pid int) (string, error) {
	target, err := os.Readlink(fmt.Sprintf("/proc/%d/ns/user", pid))
	if err != nil {
		return "", cerrors.Wrapf(err, "reading /proc/%d/ns/user", pid).WithKind(cerrors.KindStatusParse)
	}
	return target, nil
}

func parseIntQuad(fields []string, out *[4]int) error {
	if len(fields) != 4 {
		return fmt.Errorf("expected 4 fields, got %d", len(fields))
	}
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return err
		}
		out[i] = n
	}
	return nil
}

func parseIntList(fields []string) []int {
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		if n, err := strconv.Atoi(f); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// readSessionID reads field 6 (sid) of /proc/<pid>/stat. The comm field
// (surrounded by parens, field 2) may itself contain spaces, so fields are
// counted from the closing paren rather than split naively on whitespace.
func readSessionID(pid int) (int, error) {
	path := fmt.Sprintf("/proc/%d/stat", pid)
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, cerrors.Wrapf(err, "reading %s", path).WithKind(cerrors.KindStatusParse)
	}
	content := string(raw)
	closeParen := strings.LastIndexByte(content, ')')
	if closeParen < 0 {
		return 0, cerrors.Newf("malformed %s: no comm field", path).WithKind(cerrors.KindStatusParse)
	}
	rest := strings.Fields(content[closeParen+1:])
	// fields[0]=state, [1]=ppid, [2]=pgrp, [3]=session
	if len(rest) < 4 {
		return 0, cerrors.Newf("malformed %s: too few fields", path).WithKind(cerrors.KindStatusParse)
	}
	sid, err := strconv.Atoi(rest[3])
	if err != nil {
		return 0, cerrors.Wrapf(err, "parsing session id in %s", path).WithKind(cerrors.KindStatusParse)
	}
	return sid, nil
}

// readCapabilities loads pid's capability sets via moby/sys/capability,
// grounded on buildah/chroot/run_linux.go's setCapabilities (capability.
// NewPid2 + Load, iterating capability.ListKnown() to resolve each bit to
// its CAP_* name).
func readCapabilities(pid int) (map[capability.CapType][]string, error) {
	caps, err := capability.NewPid2(pid)
	if err != nil {
		return nil, cerrors.Wrapf(err, "reading capabilities of pid %d", pid).WithKind(cerrors.KindStatusParse)
	}
	if err := caps.Load(); err != nil {
		return nil, cerrors.Wrapf(err, "loading capabilities of pid %d", pid).WithKind(cerrors.KindStatusParse)
	}

	known := capability.ListKnown()
	result := map[capability.CapType][]string{
		capability.INHERITABLE: {},
		capability.PERMITTED:   {},
		capability.EFFECTIVE:   {},
		capability.BOUNDING:    {},
		capability.AMBIENT:     {},
	}
	for capType := range result {
		for _, c := range known {
			if caps.Get(capType, c) {
				result[capType] = append(result[capType], "CAP_"+strings.ToUpper(c.String()))
			}
		}
	}
	return result, nil
}
