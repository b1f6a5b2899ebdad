//go:build unix && !linux

package volume

// Only Linux reports a missing medium with its own errno; elsewhere it surfaces as a generic
// open failure.
func isNoMedium(err error) bool {
	return false
}
