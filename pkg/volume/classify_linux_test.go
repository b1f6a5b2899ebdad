package volume

import (
	"io"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestNoMediumIsUnreadable(t *testing.T) {
	c := &Classifier{Open: func(path string) (io.ReadCloser, error) {
		return nil, &fs.PathError{Op: "open", Path: path, Err: unix.ENOMEDIUM}
	}}
	r := c.Classify("/dev/sr0")
	require.Equal(t, Unreadable, r.Outcome)
	require.Equal(t, ReasonNoMedium, r.Reason)
	require.False(t, r.Encrypted())
}
