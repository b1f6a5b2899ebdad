package volume

import (
	"errors"

	"golang.org/x/sys/unix"
)

func isNoMedium(err error) bool {
	return errors.Is(err, unix.ENOMEDIUM)
}
