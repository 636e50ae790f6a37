package cntrfs

// Wire structs mirroring the subset of the kernel FUSE ABI
// (include/uapi/linux/fuse.h, Documentation/filesystems/fuse.rst) this
// server needs: session init and passthrough attribute/lookup/read/readdir
// opcodes. Field order and sizes follow the kernel header exactly since
// encoding/binary lays them out positionally.

type opcode uint32

const (
	opLookup   opcode = 1
	opGetattr  opcode = 3
	opSetattr  opcode = 4
	opOpen     opcode = 14
	opRead     opcode = 15
	opRelease  opcode = 18
	opInit     opcode = 26
	opOpendir  opcode = 27
	opReaddir  opcode = 28
	opReleasedir opcode = 29
)

const fuseKernelVersion = 7
const fuseKernelMinorVersion = 31

// inHeader is fuse_in_header: prefixes every request the kernel sends.
type inHeader struct {
	Len     uint32
	Opcode  opcode
	Unique  uint64
	NodeID  uint64
	UID     uint32
	GID     uint32
	PID     uint32
	Padding uint32
}

// outHeader is fuse_out_header: prefixes every reply sent back.
type outHeader struct {
	Len    uint32
	Error  int32
	Unique uint64
}

// initIn is fuse_init_in.
type initIn struct {
	Major        uint32
	Minor        uint32
	MaxReadahead uint32
	Flags        uint32
}

// initOut is fuse_init_out (the fields this server actually sets; the
// kernel tolerates a shorter reply than its own struct during negotiation
// as long as Len in outHeader matches what was actually written).
type initOut struct {
	Major               uint32
	Minor               uint32
	MaxReadahead        uint32
	Flags               uint32
	MaxBackground       uint16
	CongestionThreshold uint16
	MaxWrite            uint32
	TimeGran            uint32
	MaxPages            uint16
	Padding             uint16
}

// attr is fuse_attr: the per-inode attribute block returned by GETATTR and
// embedded in entryOut for LOOKUP.
type attr struct {
	Ino       uint64
	Size      uint64
	Blocks    uint64
	Atime     uint64
	Mtime     uint64
	Ctime     uint64
	AtimeNsec uint32
	MtimeNsec uint32
	CtimeNsec uint32
	Mode      uint32
	Nlink     uint32
	UID       uint32
	GID       uint32
	Rdev      uint32
	Blksize   uint32
	Padding   uint32
}

// attrOut is fuse_attr_out: GETATTR's reply body.
type attrOut struct {
	AttrValid     uint64
	AttrValidNsec uint32
	Dummy         uint32
	Attr          attr
}

// entryOut is fuse_entry_out: LOOKUP's reply body.
type entryOut struct {
	NodeID         uint64
	Generation     uint64
	EntryValid     uint64
	AttrValid      uint64
	EntryValidNsec uint32
	AttrValidNsec  uint32
	Attr           attr
}

// openOut is fuse_open_out: OPEN/OPENDIR's reply body.
type openOut struct {
	FH        uint64
	OpenFlags uint32
	Padding   uint32
}

// readIn is fuse_read_in: READ/READDIR's request body.
type readIn struct {
	FH        uint64
	Offset    uint64
	Size      uint32
	ReadFlags uint32
	LockOwner uint64
	Flags     uint32
	Padding   uint32
}

// dirent type values, matching <dirent.h>'s d_type (fuse_dirent.type).
const (
	dtUnknown uint32 = 0
	dtDir     uint32 = 4
	dtReg     uint32 = 8
)

// direntHeader is fuse_dirent minus its variable-length, 8-byte-aligned name
// field, which READDIR's reply builds by hand (proto.go's other structs are
// all fixed-size).
type direntHeader struct {
	Ino     uint64
	Off     uint64
	Namelen uint32
	Type    uint32
}
