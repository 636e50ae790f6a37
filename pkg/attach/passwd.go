package attach

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jesseduffield/cntr/pkg/cerrors"
)

// Passwd is a single /etc/passwd entry, the Go rendition of
// original_source's sys_ext::Passwd used to resolve --effective-user.
type Passwd struct {
	Name string
	UID  int
	GID  int
	Home string
	Shell string
}

// LookupContainerUser reads <pid>'s own /etc/passwd (via /proc/<pid>/root,
// the host's read-only window into the container's filesystem) and returns
// the entry matching name. This is the container's passwd, not the host's,
// per spec §4.6 step 4 ("parsed from the target's /etc/passwd — the
// container's passwd, not the host's").
func LookupContainerUser(pid int, name string) (*Passwd, error) {
	path := fmt.Sprintf("/proc/%d/root/etc/passwd", pid)
	f, err := os.Open(path)
	if err != nil {
		return nil, cerrors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 7 || fields[0] != name {
			continue
		}
		uid, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, cerrors.Wrapf(err, "parsing uid in %s line %q", path, line)
		}
		gid, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, cerrors.Wrapf(err, "parsing gid in %s line %q", path, line)
		}
		return &Passwd{Name: name, UID: uid, GID: gid, Home: fields[5], Shell: fields[6]}, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, cerrors.Wrapf(err, "reading %s", path)
	}
	return nil, cerrors.Newf("user %q not found in container's /etc/passwd", name)
}
