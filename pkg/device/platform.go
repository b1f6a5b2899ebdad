package device

import (
	"runtime"
	"strings"

	"github.com/bgrewell/bitlocker-find/pkg/consts"
)

// Platform selects how candidates are enumerated.
type Platform int

const (
	PlatformUnsupported Platform = iota
	PlatformLinux
	PlatformFreeBSD
	PlatformDarwin
)

func (p Platform) String() string {
	switch p {
	case PlatformLinux:
		return "linux"
	case PlatformFreeBSD:
		return "freebsd"
	case PlatformDarwin:
		return "darwin"
	default:
		return "unsupported"
	}
}

// ParsePlatform maps an operating system name, as printed by `uname -s` or runtime.GOOS, to a
// Platform. Unknown names map to PlatformUnsupported.
func ParsePlatform(name string) Platform {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linux":
		return PlatformLinux
	case "freebsd":
		return PlatformFreeBSD
	case "darwin":
		return PlatformDarwin
	default:
		return PlatformUnsupported
	}
}

// CurrentPlatform returns the Platform of the running host.
func CurrentPlatform() Platform {
	return ParsePlatform(runtime.GOOS)
}

// ForPlatform returns the Source used to enumerate devices on p.
func ForPlatform(p Platform) Source {
	switch p {
	case PlatformLinux:
		return ProcPartitions{Path: consts.PROC_PARTITIONS_PATH, DevDir: consts.DEV_DIR}
	case PlatformFreeBSD:
		return Glob{Pattern: consts.FREEBSD_DEVICE_GLOB}
	case PlatformDarwin:
		return Glob{Pattern: consts.DARWIN_DEVICE_GLOB}
	default:
		return Unsupported{Name: runtime.GOOS}
	}
}
