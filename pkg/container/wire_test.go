package container

import (
	"testing"

	"github.com/jesseduffield/cntr/pkg/cerrors"
	"github.com/stretchr/testify/assert"
)

func TestParseRunningPidRoundTrip(t *testing.T) {
	for pid := 1; pid < (1 << 22); pid <<= 1 {
		wire := formatRunningPid(true, pid)
		got, err := parseRunningPid("c", "cmd", wire)
		assert.NoError(t, err)
		assert.Equal(t, pid, got)
	}
}

func TestParseRunningPidNotRunning(t *testing.T) {
	_, err := parseRunningPid("c", "cmd", formatRunningPid(false, 0))
	assert.Error(t, err)
	assert.Equal(t, cerrors.KindContainerNotRunning, cerrors.KindOf(err))
}

func TestParseRunningPidMalformed(t *testing.T) {
	for _, stdout := range []string{"", "true\n", "true;abc\n", "maybe;4\n"} {
		_, err := parseRunningPid("c", "cmd", stdout)
		assert.Error(t, err, "stdout=%q", stdout)
	}
}
