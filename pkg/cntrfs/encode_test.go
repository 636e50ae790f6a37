package cntrfs

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// encodeInitRequest builds a wire-accurate INIT request (inHeader + initIn)
// for dispatch tests, the same shape the kernel sends at session start.
func encodeInitRequest(t *testing.T, unique uint64) []byte {
	t.Helper()
	in := initIn{Major: fuseKernelVersion, Minor: fuseKernelMinorVersion, MaxReadahead: 1 << 16}

	var body bytes.Buffer
	require.NoError(t, binary.Write(&body, binary.LittleEndian, in))

	hdr := inHeader{
		Opcode: opInit,
		Unique: unique,
	}
	hdr.Len = uint32(binary.Size(hdr) + body.Len())

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, hdr))
	buf.Write(body.Bytes())
	return buf.Bytes()
}
