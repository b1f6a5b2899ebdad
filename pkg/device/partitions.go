package device

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/bgrewell/bitlocker-find/pkg/consts"
)

// ProcPartitions lists every block device named in a Linux /proc/partitions table.
//
// The table starts with a column header and a blank line:
//
//	major minor  #blocks  name
//
//	   8        0  500107608 sda
//	   8        1     524288 sda1
type ProcPartitions struct {
	Path   string
	DevDir string
}

func (p ProcPartitions) Candidates() ([]string, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p.Path, err)
	}
	return ParsePartitions(string(data), p.DevDir)
}

// ParsePartitions turns the content of a partitions table into device paths under devDir, in
// table order.
func ParsePartitions(content, devDir string) ([]string, error) {
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	if content == "" || len(lines) <= consts.PROC_PARTITIONS_HEADER_LINES {
		return nil, ErrMalformedPartitions
	}

	var devices []string
	for i, line := range lines[consts.PROC_PARTITIONS_HEADER_LINES:] {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < consts.PROC_PARTITIONS_FIELDS {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedPartitions, i+consts.PROC_PARTITIONS_HEADER_LINES+1, line)
		}
		devices = append(devices, path.Join(devDir, fields[consts.PROC_PARTITIONS_FIELDS-1]))
	}
	return devices, nil
}
