// Package dotcntr implements component C3: the marker directory builder.
// It assembles the small, read-only "/.cntr" tree (a setup script, the
// helper binaries, and the attach pid) entirely in memory, for the overlay
// filesystem (pkg/cntrfs) to expose inside the container. Grounded on
// original_source/src/attach/mod.rs's dotcntr::create call, and on the
// teacher's ApplyTemplate helper (pkg/utils/utils.go) for the templating
// style.
package dotcntr

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/jesseduffield/cntr/pkg/cerrors"
)

// maxSize bounds the in-memory tree, per spec §4.3 ("total size is bounded
// (< 1 MiB) because it lives in memory").
const maxSize = 1 << 20

// File is a single read-only file in the marker tree.
type File struct {
	Path string // relative to the tree root, e.g. "setup.sh" or "bin/busybox"
	Mode os.FileMode
	Data []byte
}

// Tree is the immutable marker payload of spec §3: setup.sh, bin/, and
// cntr.pid, mounted read-only inside the overlay at /.cntr.
type Tree struct {
	files []File
	size  int
}

// Files returns the tree's files in deterministic (insertion) order.
func (t *Tree) Files() []File {
	return append([]File(nil), t.files...)
}

// Lookup returns the file at path, if any.
func (t *Tree) Lookup(path string) (File, bool) {
	for _, f := range t.files {
		if f.Path == path {
			return f, true
		}
	}
	return File{}, false
}

// Size is the tree's total byte footprint.
func (t *Tree) Size() int { return t.size }

// Options configures the setup script template, mirroring the fields
// original_source's shell.rs/setup.sh.in templating draws from.
type Options struct {
	AttachPID int
	Shell     string
	Home      string
	ExtraPath []string
	// HelperBinaries maps the name the container sees (under bin/) to the
	// host path of the binary to embed verbatim.
	HelperBinaries map[string]string
}

const setupScriptTemplate = `#!/bin/sh
# generated by cntr attach, do not edit
export HOME="{{.Home}}"
export PATH="/.cntr/bin{{range .ExtraPath}}:{{.}}{{end}}:$PATH"
exec "{{.Shell}}" "$@"
`

// Build constructs the marker tree described by opts: setup.sh (templated),
// bin/<name> for each helper binary, and cntr.pid holding the attach
// process's pid. The tree is immutable once returned.
func Build(opts Options) (*Tree, error) {
	tpl, err := template.New("setup.sh").Parse(setupScriptTemplate)
	if err != nil {
		return nil, cerrors.Wrap(err, "parsing setup.sh template")
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, struct {
		Home      string
		Shell     string
		ExtraPath []string
	}{Home: opts.Home, Shell: opts.Shell, ExtraPath: opts.ExtraPath}); err != nil {
		return nil, cerrors.Wrap(err, "rendering setup.sh")
	}

	t := &Tree{}
	if err := t.add(File{Path: "setup.sh", Mode: 0o555, Data: buf.Bytes()}); err != nil {
		return nil, err
	}
	if err := t.add(File{Path: "cntr.pid", Mode: 0o444, Data: []byte(fmt.Sprintf("%d\n", opts.AttachPID))}); err != nil {
		return nil, err
	}

	for name, hostPath := range opts.HelperBinaries {
		data, err := os.ReadFile(hostPath)
		if err != nil {
			return nil, cerrors.Wrapf(err, "reading helper binary %s", hostPath)
		}
		if err := t.add(File{Path: filepath.Join("bin", name), Mode: 0o555, Data: data}); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (t *Tree) add(f File) error {
	t.size += len(f.Data)
	if t.size > maxSize {
		return cerrors.Newf("marker payload exceeds %d bytes", maxSize)
	}
	t.files = append(t.files, f)
	return nil
}

// RenderTimestamp exists so callers that want a deterministic mtime for the
// synthetic inodes the FUSE layer reports for this tree can share one
// reference instant instead of calling time.Now() per file.
func RenderTimestamp() time.Time {
	return time.Now()
}
