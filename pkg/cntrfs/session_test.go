package cntrfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMountData(t *testing.T) {
	data := mountData(7, 1000, 1000)
	assert.Equal(t, "fd=7,rootmode=40000,user_id=1000,group_id=1000", data)
}

func TestOpenRequiresDevFuse(t *testing.T) {
	_, err := Open(MountOptions{Prefix: "/"})
	if err != nil {
		assert.Error(t, err) // expected unless run as root with /dev/fuse present
	}
}
