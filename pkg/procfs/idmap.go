// Package procfs implements component C2: reading /proc/<pid>/{uid_map,
// gid_map,status} and exposing the id-translation and security-context
// accessors the attach orchestrator needs. It generalizes the teacher's
// vendored psgo/internal/proc package (status.go, ns.go), which already
// parses the exact same two files for the same reason (ps inside a user
// namespace needs mapped ids), to the bidirectional, typed API spec §4.2
// calls for.
package procfs

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"github.com/jesseduffield/cntr/pkg/cerrors"
	"go.podman.io/storage/pkg/idtools"
)

// OverflowID is the sentinel an id outside every mapped range resolves to,
// matching the kernel's own default for /proc/sys/kernel/overflowuid|gid.
const OverflowID = 65534

// Kind selects which of a process's two id maps to read.
type Kind string

const (
	KindUID Kind = "uid"
	KindGID Kind = "gid"
)

// IDMap is an ordered, non-overlapping list of (namespace, host, length)
// triples read from /proc/<pid>/{uid,gid}_map. Entries are sorted by
// namespace-start so MapUp/MapDown can do an early-exit linear scan — the
// map always has at most a handful of entries in practice (§4.2).
type IDMap struct {
	entries []idtools.IDMap
}

// ReadIDMap reads /proc/<pid>/<kind>_map and returns the parsed map, the
// rendition of original_source's IdMap::from_pid grounded on the teacher's
// ReadMappings (vendor/.../psgo/internal/proc/ns.go).
func ReadIDMap(pid int, kind Kind) (*IDMap, error) {
	path := fmt.Sprintf("/proc/%d/%s_map", pid, kind)
	f, err := os.Open(path)
	if err != nil {
		return nil, cerrors.Wrapf(err, "reading %s", path).WithKind(cerrors.KindIdMapParse)
	}
	defer f.Close()
	return parseIDMap(path, f)
}

func parseIDMap(path string, f *os.File) (*IDMap, error) {
	var entries []idtools.IDMap
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var nsID, hostID, size int
		if _, err := fmt.Sscanf(line, "%d %d %d", &nsID, &hostID, &size); err != nil {
			return nil, cerrors.Wrapf(err, "parsing %s line %q", path, line).WithKind(cerrors.KindIdMapParse)
		}
		entries = append(entries, idtools.IDMap{ContainerID: nsID, HostID: hostID, Size: size})
	}
	if err := scanner.Err(); err != nil {
		return nil, cerrors.Wrapf(err, "reading %s", path).WithKind(cerrors.KindIdMapParse)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].ContainerID < entries[j].ContainerID })
	return &IDMap{entries: entries}, nil
}

// MapUp projects a host id to its in-namespace equivalent. An id outside
// every range returns OverflowID and ok=false, per §4.2 ("they do not fail").
func (m *IDMap) MapUp(hostID int) (nsID int, ok bool) {
	for _, e := range m.entries {
		if hostID >= e.HostID && hostID < e.HostID+e.Size {
			return e.ContainerID + (hostID - e.HostID), true
		}
	}
	return OverflowID, false
}

// MapDown is the symmetric inverse of MapUp: in-namespace id to host id.
func (m *IDMap) MapDown(nsID int) (hostID int, ok bool) {
	for _, e := range m.entries {
		if nsID >= e.ContainerID && nsID < e.ContainerID+e.Size {
			return e.HostID + (nsID - e.ContainerID), true
		}
	}
	return OverflowID, false
}

// Entries exposes the raw triples, e.g. to hand to idtools.RawToHost /
// RawToContainer directly when a collaborator already speaks that type.
func (m *IDMap) Entries() []idtools.IDMap {
	return append([]idtools.IDMap(nil), m.entries...)
}
