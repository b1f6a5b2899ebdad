package testing

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bgrewell/bitlocker-find/pkg/consts"
)

// Placement writes Bytes at Offset inside a synthetic header.
type Placement struct {
	Offset int
	Bytes  []byte
}

// BuildHeader returns a header window with sig at the signature offset and every placement applied.
// A sig of "" leaves the signature field zeroed. Placements that run past the window are clipped.
func BuildHeader(sig string, placements ...Placement) []byte {
	buf := make([]byte, consts.BITLOCKER_HEADER_WINDOW_SIZE)

	// Boot jump, as found on real volumes.
	copy(buf, []byte{0xeb, 0x58, 0x90})
	copy(buf[consts.BITLOCKER_SIGNATURE_OFFSET:consts.BITLOCKER_SIGNATURE_OFFSET+consts.BITLOCKER_SIGNATURE_SIZE], sig)

	for _, p := range placements {
		if p.Offset < 0 || p.Offset >= len(buf) {
			continue
		}
		copy(buf[p.Offset:], p.Bytes)
	}
	return buf
}

// WriteImage stores data as a file named name under dir and returns its path.
func WriteImage(dir, name string, data []byte) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// WriteProcPartitions stores a /proc/partitions style table listing names under dir.
func WriteProcPartitions(dir string, names ...string) (string, error) {
	content := "major minor  #blocks  name\n\n"
	for i, name := range names {
		content += fmt.Sprintf("%4d %7d %10d %s\n", 8, i, 1024*(i+1), name)
	}
	return WriteImage(dir, "partitions", []byte(content))
}
