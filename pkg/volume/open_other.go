//go:build !unix

package volume

import (
	"io"
	"os"
)

// OpenDevice opens path read-only.
func OpenDevice(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func isBusy(err error) bool {
	return false
}

func isWouldBlock(err error) bool {
	return false
}

func isNoMedium(err error) bool {
	return false
}
