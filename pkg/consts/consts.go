package consts

const (
	// Number of bytes read from the start of a candidate device.
	BITLOCKER_HEADER_WINDOW_SIZE = 512

	// Offset of the volume signature inside the header window. The first three bytes hold the boot jump.
	BITLOCKER_SIGNATURE_OFFSET = 3

	// Length of the volume signature field.
	BITLOCKER_SIGNATURE_SIZE = 8

	// Volume signature of a fixed BitLocker volume.
	BITLOCKER_SIGNATURE = "-FVE-FS-"

	// Volume signature of a BitLocker To Go (portable) volume. The OEM field keeps the FAT value so
	// older readers can mount the discovery volume.
	BITLOCKER_TO_GO_SIGNATURE = "MSWIN4.1"

	// Length of a binary GUID.
	GUID_SIZE = 16

	// Linux kernel partition table.
	PROC_PARTITIONS_PATH = "/proc/partitions"

	// Number of leading lines in /proc/partitions that carry no partition (column header, blank line).
	PROC_PARTITIONS_HEADER_LINES = 2

	// Minimum number of whitespace separated fields in a /proc/partitions entry (major minor #blocks name).
	PROC_PARTITIONS_FIELDS = 4

	// Device directory used to build paths from partition names.
	DEV_DIR = "/dev"

	// Device globs for hosts without a partitions table.
	FREEBSD_DEVICE_GLOB = "/dev/diskid/*"
	DARWIN_DEVICE_GLOB  = "/dev/disk*"

	// Exit status used when the partitions source cannot be parsed.
	EXIT_MALFORMED_SOURCE = 255

	// Exit status used when the command line cannot be parsed. It must never read as a small volume count.
	EXIT_USAGE_ERROR = 255
)
