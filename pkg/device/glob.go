package device

import (
	"fmt"
	"path/filepath"
)

// Glob lists the entries of a device directory matching Pattern.
type Glob struct {
	Pattern string
}

func (g Glob) Candidates() ([]string, error) {
	matches, err := filepath.Glob(g.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid device pattern %q: %w", g.Pattern, err)
	}
	return matches, nil
}
