// Package device lists candidate block devices for the running host.
package device

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPartitions is returned when the kernel partition table cannot be parsed.
	ErrMalformedPartitions = errors.New("wrong partitions file format")
	// ErrUnsupportedPlatform is returned by the source of a host without automatic enumeration.
	ErrUnsupportedPlatform = errors.New("OS not supported")
)

// Source produces candidate device paths. An empty result is valid.
type Source interface {
	Candidates() ([]string, error)
}

// Static is a Source over a fixed list of paths, returned verbatim.
type Static []string

func (s Static) Candidates() ([]string, error) {
	return append([]string(nil), s...), nil
}

// Unsupported is the Source of hosts without a known enumeration strategy.
type Unsupported struct {
	Name string
}

func (u Unsupported) Candidates() ([]string, error) {
	if u.Name != "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, u.Name)
	}
	return nil, ErrUnsupportedPlatform
}
