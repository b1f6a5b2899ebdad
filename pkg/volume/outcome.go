package volume

import (
	"fmt"

	"github.com/bgrewell/bitlocker-find/pkg/signature"
)

// Outcome is the result of testing one candidate.
type Outcome int

const (
	// NotMatched means the header was read but does not belong to a BitLocker volume, or fewer
	// bytes than a header were available.
	NotMatched Outcome = iota
	// Matched means both the signature and an identifier GUID were found.
	Matched
	// Unreadable means the candidate could not be opened, so its status is unknown.
	Unreadable
)

func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case NotMatched:
		return "not-matched"
	case Unreadable:
		return "unreadable"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Reason records why a candidate ended with its Outcome.
type Reason int

const (
	ReasonNone Reason = iota

	// Open failures, all reported as Unreadable.
	ReasonNoMedium   // removable drive without media
	ReasonBusy       // device is mounted or held exclusively
	ReasonPermission // caller may not read the device
	ReasonNotExist
	ReasonOpenFailed

	// Read failures, all reported as NotMatched.
	ReasonShortRead
	ReasonWouldBlock
	ReasonIO

	// Header checks.
	ReasonNoSignature
	ReasonNoIdentifier
)

var reasonNames = map[Reason]string{
	ReasonNone:         "none",
	ReasonNoMedium:     "no-medium",
	ReasonBusy:         "busy",
	ReasonPermission:   "permission-denied",
	ReasonNotExist:     "not-exist",
	ReasonOpenFailed:   "open-failed",
	ReasonShortRead:    "short-read",
	ReasonWouldBlock:   "would-block",
	ReasonIO:           "io-error",
	ReasonNoSignature:  "no-signature",
	ReasonNoIdentifier: "no-identifier",
}

func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// OpenFailure reports whether the reason comes from opening the device.
func (r Reason) OpenFailure() bool {
	return r >= ReasonNoMedium && r <= ReasonOpenFailed
}

// ReadFailure reports whether the reason comes from reading the header window.
func (r Reason) ReadFailure() bool {
	return r >= ReasonShortRead && r <= ReasonIO
}

// Report describes the classification of a single candidate.
type Report struct {
	Path    string
	Outcome Outcome
	Reason  Reason
	// Variant and Marker are set when the corresponding stage matched.
	Variant signature.Variant
	Marker  signature.Marker
	// Err holds the underlying open or read error, if any. It is informational only.
	Err error
}

// Encrypted reports whether the candidate was identified as a BitLocker volume.
func (r Report) Encrypted() bool {
	return r.Outcome == Matched
}
