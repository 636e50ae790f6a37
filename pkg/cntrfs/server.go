package cntrfs

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/jesseduffield/cntr/pkg/cerrors"
	"github.com/jesseduffield/cntr/pkg/dotcntr"
	"github.com/sirupsen/logrus"
)

// Server is the FUSE server loop of component C7: it owns the parent's
// copy of the session fd after fork and serves passthrough requests,
// translating every inode's owner/group through the overlay's id maps
// before reply, per spec §4.7/§6 ("every inode operation rewrites
// owner/group fields via the id maps before reply"). Lookups under
// dotCntrName are served from the in-memory marker tree (C3) instead of
// the host filesystem.
type Server struct {
	session *Session
	log     *logrus.Entry

	// markerTime is the single instant reported as atime/mtime/ctime for
	// every synthetic inode in the marker tree, rather than restamping
	// time.Now() per lookup: the marker tree is immutable for the life of
	// the session, so one shared instant is more honest than a fresh one
	// on each reply.
	markerTime time.Time

	mu       sync.Mutex
	nodes    map[uint64]nodeRef
	nextNode uint64
}

// nodeKind distinguishes a real host-backed inode from one synthesized from
// the marker tree.
type nodeKind int

const (
	nodeHost nodeKind = iota
	nodeVirtualDir
	nodeVirtualFile
)

// nodeRef is what the server remembers per nodeid: either a host path, or a
// position inside the marker tree.
type nodeRef struct {
	kind        nodeKind
	hostPath    string
	virtualDir  string // tree-relative directory prefix ("" = tree root)
	virtualFile string // tree-relative file path, set when kind == nodeVirtualFile
}

// NewServer wraps an already-open, already-init'd session for serving.
func NewServer(session *Session, log *logrus.Entry) *Server {
	return &Server{
		session:    session,
		log:        log,
		markerTime: dotcntr.RenderTimestamp(),
		nodes:      map[uint64]nodeRef{1: {kind: nodeHost, hostPath: session.Opts.Prefix}},
		nextNode:   2,
	}
}

// Serve reads and dispatches requests until the session fd hits EOF (kernel
// unmount by an external agent) or stop is closed. It returns nil on a
// clean shutdown and a cerrors.KindMountFailed error on an unexpected read
// failure.
func (s *Server) Serve(stop <-chan struct{}) error {
	f := os.NewFile(uintptr(s.session.FD), "fuse session")
	buf := make([]byte, 128*1024)

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		n, err := f.Read(buf)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			if errno, ok := err.(*os.PathError); ok && errno.Err == syscall.ENODEV {
				return nil // unmounted externally
			}
			return cerrors.Wrap(err, "reading fuse session").WithKind(cerrors.KindMountFailed)
		}

		reply, err := s.dispatch(buf[:n])
		if err != nil {
			s.log.WithError(err).Warn("fuse request failed")
			continue
		}
		if len(reply) == 0 {
			continue
		}
		if _, err := f.Write(reply); err != nil {
			s.log.WithError(err).Warn("writing fuse reply failed")
		}
	}
}

func (s *Server) dispatch(req []byte) ([]byte, error) {
	var hdr inHeader
	r := bytes.NewReader(req)
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, cerrors.Wrap(err, "decoding fuse request header")
	}
	body := req[binary.Size(hdr):]

	switch hdr.Opcode {
	case opInit:
		return s.replyInit(hdr, body)
	case opLookup:
		return s.replyLookup(hdr, body)
	case opGetattr:
		return s.replyGetattr(hdr)
	case opOpen, opOpendir:
		return s.replyOpen(hdr)
	case opRead:
		return s.replyRead(hdr, body)
	case opReaddir:
		return s.replyReaddir(hdr, body)
	case opRelease, opReleasedir:
		return s.replyEmptyOK(hdr)
	default:
		return s.replyErrno(hdr, syscall.ENOSYS)
	}
}

func (s *Server) replyInit(hdr inHeader, body []byte) ([]byte, error) {
	var in initIn
	if err := binary.Read(bytes.NewReader(body), binary.LittleEndian, &in); err != nil {
		return nil, cerrors.Wrap(err, "decoding fuse init request")
	}
	out := initOut{
		Major:        fuseKernelVersion,
		Minor:        fuseKernelMinorVersion,
		MaxReadahead: in.MaxReadahead,
		MaxWrite:     1 << 20,
		TimeGran:     1,
	}
	return encodeReply(hdr.Unique, out)
}

func (s *Server) replyLookup(hdr inHeader, body []byte) ([]byte, error) {
	name := string(bytes.TrimRight(body, "\x00"))

	s.mu.Lock()
	parent, ok := s.nodes[hdr.NodeID]
	s.mu.Unlock()
	if !ok {
		return s.replyErrno(hdr, syscall.ENOENT)
	}

	switch parent.kind {
	case nodeHost:
		if name == dotCntrName && parent.hostPath == s.session.Opts.Prefix && s.session.Opts.DotCntr != nil {
			return s.replyVirtualDir(hdr, "")
		}
		childPath := filepath.Join(parent.hostPath, name)
		fi, err := os.Lstat(childPath)
		if err != nil {
			return s.replyErrno(hdr, syscall.ENOENT)
		}
		nodeID := s.newNode(nodeRef{kind: nodeHost, hostPath: childPath})
		return encodeReply(hdr.Unique, entryOut{NodeID: nodeID, Generation: 1, Attr: s.translateAttr(nodeID, fi)})
	case nodeVirtualDir:
		return s.lookupVirtual(hdr, parent.virtualDir, name)
	default:
		return s.replyErrno(hdr, syscall.ENOTDIR)
	}
}

// lookupVirtual resolves name within the marker tree's directory prefix,
// distinguishing a leaf file from an intermediate directory (e.g. "bin").
func (s *Server) lookupVirtual(hdr inHeader, dir, name string) ([]byte, error) {
	tree := s.session.Opts.DotCntr
	candidate := path.Join(dir, name)

	if f, ok := tree.Lookup(candidate); ok {
		nodeID := s.newNode(nodeRef{kind: nodeVirtualFile, virtualFile: candidate})
		return encodeReply(hdr.Unique, entryOut{
			NodeID:     nodeID,
			Generation: 1,
			Attr:       s.buildAttr(nodeID, 0, 0, f.Mode, uint64(len(f.Data)), s.markerTime),
		})
	}

	prefix := candidate + "/"
	for _, f := range tree.Files() {
		if strings.HasPrefix(f.Path, prefix) {
			return s.replyVirtualDir(hdr, candidate)
		}
	}
	return s.replyErrno(hdr, syscall.ENOENT)
}

func (s *Server) replyVirtualDir(hdr inHeader, dir string) ([]byte, error) {
	nodeID := s.newNode(nodeRef{kind: nodeVirtualDir, virtualDir: dir})
	return encodeReply(hdr.Unique, entryOut{
		NodeID:     nodeID,
		Generation: 1,
		Attr:       s.buildAttr(nodeID, 0, 0, os.ModeDir|0o555, 0, s.markerTime),
	})
}

func (s *Server) newNode(ref nodeRef) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	nodeID := s.nextNode
	s.nextNode++
	s.nodes[nodeID] = ref
	return nodeID
}

func (s *Server) replyGetattr(hdr inHeader) ([]byte, error) {
	s.mu.Lock()
	node, ok := s.nodes[hdr.NodeID]
	s.mu.Unlock()
	if !ok {
		return s.replyErrno(hdr, syscall.ENOENT)
	}

	switch node.kind {
	case nodeHost:
		fi, err := os.Lstat(node.hostPath)
		if err != nil {
			return s.replyErrno(hdr, syscall.ENOENT)
		}
		return encodeReply(hdr.Unique, attrOut{Attr: s.translateAttr(hdr.NodeID, fi)})
	case nodeVirtualFile:
		f, ok := s.session.Opts.DotCntr.Lookup(node.virtualFile)
		if !ok {
			return s.replyErrno(hdr, syscall.ENOENT)
		}
		return encodeReply(hdr.Unique, attrOut{Attr: s.buildAttr(hdr.NodeID, 0, 0, f.Mode, uint64(len(f.Data)), s.markerTime)})
	default: // nodeVirtualDir
		return encodeReply(hdr.Unique, attrOut{Attr: s.buildAttr(hdr.NodeID, 0, 0, os.ModeDir|0o555, 0, s.markerTime)})
	}
}

func (s *Server) replyOpen(hdr inHeader) ([]byte, error) {
	out := openOut{FH: hdr.NodeID}
	return encodeReply(hdr.Unique, out)
}

func (s *Server) replyEmptyOK(hdr inHeader) ([]byte, error) {
	return encodeReply(hdr.Unique, struct{}{})
}

// replyRead serves file contents for both host-backed and virtual (marker
// tree) inodes, per spec §4.4/§6's passthrough read path.
func (s *Server) replyRead(hdr inHeader, body []byte) ([]byte, error) {
	var in readIn
	if err := binary.Read(bytes.NewReader(body), binary.LittleEndian, &in); err != nil {
		return nil, cerrors.Wrap(err, "decoding fuse read request")
	}

	s.mu.Lock()
	node, ok := s.nodes[hdr.NodeID]
	s.mu.Unlock()
	if !ok {
		return s.replyErrno(hdr, syscall.ENOENT)
	}

	switch node.kind {
	case nodeHost:
		f, err := os.Open(node.hostPath)
		if err != nil {
			return s.replyErrno(hdr, syscall.EIO)
		}
		defer f.Close()
		buf := make([]byte, in.Size)
		n, err := f.ReadAt(buf, int64(in.Offset))
		if err != nil && err != io.EOF {
			return s.replyErrno(hdr, syscall.EIO)
		}
		return encodeRawReply(hdr.Unique, buf[:n])
	case nodeVirtualFile:
		f, ok := s.session.Opts.DotCntr.Lookup(node.virtualFile)
		if !ok {
			return s.replyErrno(hdr, syscall.ENOENT)
		}
		return encodeRawReply(hdr.Unique, sliceAt(f.Data, in.Offset, in.Size))
	default:
		return s.replyErrno(hdr, syscall.EISDIR)
	}
}

func sliceAt(data []byte, offset uint64, size uint32) []byte {
	if offset >= uint64(len(data)) {
		return nil
	}
	end := offset + uint64(size)
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}
	return data[offset:end]
}

// replyReaddir lists a directory's entries, from the host filesystem or
// (under /.cntr) from the in-memory marker tree, paginating via the offset
// the kernel echoes back from the last dirent it consumed.
func (s *Server) replyReaddir(hdr inHeader, body []byte) ([]byte, error) {
	var in readIn
	if err := binary.Read(bytes.NewReader(body), binary.LittleEndian, &in); err != nil {
		return nil, cerrors.Wrap(err, "decoding fuse readdir request")
	}

	s.mu.Lock()
	node, ok := s.nodes[hdr.NodeID]
	s.mu.Unlock()
	if !ok {
		return s.replyErrno(hdr, syscall.ENOENT)
	}

	entries, err := s.direntsFor(node)
	if err != nil {
		return s.replyErrno(hdr, syscall.ENOTDIR)
	}

	var buf bytes.Buffer
	for i, e := range entries {
		off := uint64(i + 1)
		if off <= in.Offset {
			continue
		}
		entryBuf := direntBytes(e.ino, off, e.name, e.dtype)
		if uint32(buf.Len()+len(entryBuf)) > in.Size {
			break
		}
		buf.Write(entryBuf)
	}
	return encodeRawReply(hdr.Unique, buf.Bytes())
}

type direntEntry struct {
	ino   uint64
	name  string
	dtype uint32
}

func (s *Server) direntsFor(node nodeRef) ([]direntEntry, error) {
	switch node.kind {
	case nodeHost:
		infos, err := os.ReadDir(node.hostPath)
		if err != nil {
			return nil, err
		}
		entries := []direntEntry{{name: ".", dtype: dtDir}, {name: "..", dtype: dtDir}}
		for _, de := range infos {
			dtype := dtReg
			if de.IsDir() {
				dtype = dtDir
			}
			entries = append(entries, direntEntry{name: de.Name(), dtype: dtype})
		}
		return entries, nil
	case nodeVirtualDir:
		return s.virtualDirents(node.virtualDir), nil
	default:
		return nil, cerrors.New("not a directory")
	}
}

// virtualDirents lists the immediate children of a marker-tree directory
// prefix by scanning every file's path (the tree is small and flat enough
// that this beats maintaining a parallel directory index).
func (s *Server) virtualDirents(dir string) []direntEntry {
	entries := []direntEntry{{name: ".", dtype: dtDir}, {name: "..", dtype: dtDir}}
	prefix := dir
	if prefix != "" {
		prefix += "/"
	}
	seen := map[string]bool{}
	for _, f := range s.session.Opts.DotCntr.Files() {
		if !strings.HasPrefix(f.Path, prefix) {
			continue
		}
		rest := strings.TrimPrefix(f.Path, prefix)
		name, isDir := rest, false
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			name, isDir = rest[:i], true
		}
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		dtype := dtReg
		if isDir {
			dtype = dtDir
		}
		entries = append(entries, direntEntry{name: name, dtype: dtype})
	}
	return entries
}

// direntBytes encodes one fuse_dirent: a fixed header, the name, and
// zero-padding up to the next 8-byte boundary.
func direntBytes(ino, off uint64, name string, dtype uint32) []byte {
	var buf bytes.Buffer
	hdr := direntHeader{Ino: ino, Off: off, Namelen: uint32(len(name)), Type: dtype}
	binary.Write(&buf, binary.LittleEndian, hdr)
	buf.WriteString(name)
	if pad := (8 - len(name)%8) % 8; pad > 0 {
		buf.Write(make([]byte, pad))
	}
	return buf.Bytes()
}

func (s *Server) replyErrno(hdr inHeader, errno syscall.Errno) ([]byte, error) {
	out := outHeader{Error: -int32(errno), Unique: hdr.Unique}
	out.Len = uint32(binary.Size(out))
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// translateAttr converts a host os.FileInfo into the fuse_attr the kernel
// hands the container, rewriting owner/group through the overlay's id maps
// (or substituting the effective uid/gid override) per spec §4.4/§6.
func (s *Server) translateAttr(nodeID uint64, fi os.FileInfo) attr {
	sysStat, _ := fi.Sys().(*syscall.Stat_t)
	hostUID, hostGID := uint32(0), uint32(0)
	if sysStat != nil {
		hostUID, hostGID = sysStat.Uid, sysStat.Gid
	}
	return s.buildAttr(nodeID, hostUID, hostGID, fi.Mode(), uint64(fi.Size()), fi.ModTime())
}

// buildAttr applies the uid/gid translation shared by real and synthetic
// (marker tree) inodes. mtime is also reported as atime/ctime: the overlay
// never lets the container write back to either a host file or the marker
// tree, so there's no independent access/change time to track.
func (s *Server) buildAttr(nodeID uint64, hostUID, hostGID uint32, mode os.FileMode, size uint64, mtime time.Time) attr {
	uid, gid := hostUID, hostGID
	opts := s.session.Opts
	if opts.HasEffectiveID {
		uid, gid = uint32(opts.EffectiveUID), uint32(opts.EffectiveGID)
	} else {
		if opts.UIDMap != nil {
			if ns, ok := opts.UIDMap.MapUp(int(hostUID)); ok {
				uid = uint32(ns)
			}
		}
		if opts.GIDMap != nil {
			if ns, ok := opts.GIDMap.MapUp(int(hostGID)); ok {
				gid = uint32(ns)
			}
		}
	}

	sec := uint64(mtime.Unix())
	nsec := uint32(mtime.Nanosecond())

	return attr{
		Ino:       nodeID,
		Size:      size,
		Mode:      uint32(mode),
		UID:       uid,
		GID:       gid,
		Atime:     sec,
		Mtime:     sec,
		Ctime:     sec,
		AtimeNsec: nsec,
		MtimeNsec: nsec,
		CtimeNsec: nsec,
	}
}

// encodeRawReply wraps already-serialized bytes (read/readdir payloads,
// which are variable-length) in an outHeader, unlike encodeReply which
// binary.Writes a fixed-size struct body.
func encodeRawReply(unique uint64, data []byte) ([]byte, error) {
	out := outHeader{
		Len:    uint32(binary.Size(outHeader{}) + len(data)),
		Unique: unique,
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, out); err != nil {
		return nil, err
	}
	buf.Write(data)
	return buf.Bytes(), nil
}

func encodeReply(unique uint64, body interface{}) ([]byte, error) {
	var bodyBuf bytes.Buffer
	if err := binary.Write(&bodyBuf, binary.LittleEndian, body); err != nil {
		return nil, cerrors.Wrap(err, "encoding fuse reply body")
	}

	out := outHeader{
		Len:    uint32(binary.Size(outHeader{}) + bodyBuf.Len()),
		Unique: unique,
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, out); err != nil {
		return nil, err
	}
	buf.Write(bodyBuf.Bytes())
	return buf.Bytes(), nil
}
