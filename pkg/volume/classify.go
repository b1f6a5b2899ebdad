// Package volume decides whether a device starts with a BitLocker volume header.
package volume

import (
	"errors"
	"io"
	"io/fs"

	"github.com/bgrewell/bitlocker-find/pkg/consts"
	"github.com/bgrewell/bitlocker-find/pkg/signature"
)

// OpenFunc opens a candidate for reading.
type OpenFunc func(path string) (io.ReadCloser, error)

// Classifier tests candidates one at a time. It keeps no state between calls.
type Classifier struct {
	// Open defaults to OpenDevice when nil.
	Open OpenFunc
}

// NewClassifier returns a Classifier that reads devices directly.
func NewClassifier() *Classifier {
	return &Classifier{Open: OpenDevice}
}

// Classify opens path, reads the header window and matches it. Open and read errors never escape;
// they are folded into the returned Report.
func (c *Classifier) Classify(path string) Report {
	open := c.Open
	if open == nil {
		open = OpenDevice
	}

	f, err := open(path)
	if err != nil {
		return Report{Path: path, Outcome: Unreadable, Reason: openReason(err), Err: err}
	}
	defer f.Close()

	buf := make([]byte, consts.BITLOCKER_HEADER_WINDOW_SIZE)
	if _, err := io.ReadFull(f, buf); err != nil {
		return Report{Path: path, Outcome: NotMatched, Reason: readReason(err), Err: err}
	}

	r := ClassifyHeader(buf)
	r.Path = path
	return r
}

// Classify tests path with a default Classifier.
func Classify(path string) Report {
	return NewClassifier().Classify(path)
}

// ClassifyHeader matches a header window. Windows shorter than a full header never match.
// Bytes beyond the window size are ignored.
func ClassifyHeader(buf []byte) Report {
	if len(buf) < consts.BITLOCKER_HEADER_WINDOW_SIZE {
		return Report{Outcome: NotMatched, Reason: ReasonShortRead}
	}
	window := buf[:consts.BITLOCKER_HEADER_WINDOW_SIZE]

	field := window[consts.BITLOCKER_SIGNATURE_OFFSET : consts.BITLOCKER_SIGNATURE_OFFSET+consts.BITLOCKER_SIGNATURE_SIZE]
	variant, ok := signature.MatchSignature(field)
	if !ok {
		return Report{Outcome: NotMatched, Reason: ReasonNoSignature}
	}

	marker, ok := signature.FindMarker(window)
	if !ok {
		return Report{Outcome: NotMatched, Reason: ReasonNoIdentifier, Variant: variant}
	}

	return Report{Outcome: Matched, Variant: variant, Marker: marker}
}

func openReason(err error) Reason {
	switch {
	case isNoMedium(err):
		return ReasonNoMedium
	case isBusy(err):
		return ReasonBusy
	case errors.Is(err, fs.ErrPermission):
		return ReasonPermission
	case errors.Is(err, fs.ErrNotExist):
		return ReasonNotExist
	default:
		return ReasonOpenFailed
	}
}

func readReason(err error) Reason {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return ReasonShortRead
	case isWouldBlock(err):
		return ReasonWouldBlock
	default:
		return ReasonIO
	}
}
