//go:build unix

package volume

import (
	"errors"
	"io"
	"io/fs"

	"golang.org/x/sys/unix"
)

// OpenDevice opens path read-only without taking an exclusive hold. The descriptor is
// non-blocking so that FIFOs and character devices without pending data return instead of
// stalling the scan.
func OpenDevice(path string) (io.ReadCloser, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}
	return &rawDevice{fd: fd, path: path}, nil
}

// rawDevice reads straight from the descriptor, bypassing the runtime poller which would park
// on a non-blocking FIFO instead of reporting EAGAIN.
type rawDevice struct {
	fd   int
	path string
}

func (d *rawDevice) Read(p []byte) (int, error) {
	n, err := unix.Read(d.fd, p)
	if err != nil {
		return 0, &fs.PathError{Op: "read", Path: d.path, Err: err}
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (d *rawDevice) Close() error {
	if err := unix.Close(d.fd); err != nil {
		return &fs.PathError{Op: "close", Path: d.path, Err: err}
	}
	return nil
}

func isBusy(err error) bool {
	return errors.Is(err, unix.EBUSY)
}

func isWouldBlock(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}
