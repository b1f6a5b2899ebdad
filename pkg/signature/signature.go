// Package signature holds the byte markers that identify a BitLocker volume header.
//
// A header is recognised in two stages. The 8-byte OEM field at a fixed offset must carry one of the
// known volume signatures, and one of the metadata GUIDs must appear somewhere in the header window.
// The GUID position depends on the on-disk format revision, so it is searched for rather than read.
package signature

import (
	"bytes"

	"github.com/bgrewell/bitlocker-find/pkg/consts"
	"github.com/google/uuid"
)

// Variant identifies which flavour of BitLocker volume a signature belongs to.
type Variant int

const (
	VariantNone Variant = iota
	VariantBitLocker
	VariantBitLockerToGo
)

func (v Variant) String() string {
	switch v {
	case VariantBitLocker:
		return "bitlocker"
	case VariantBitLockerToGo:
		return "bitlocker_to_go"
	default:
		return "none"
	}
}

// Signature returns the raw signature bytes for the variant, or nil for VariantNone.
func (v Variant) Signature() []byte {
	for _, e := range variants {
		if e.variant == v {
			return []byte(e.value)
		}
	}
	return nil
}

var variants = [...]struct {
	variant Variant
	value   string
}{
	{VariantBitLocker, consts.BITLOCKER_SIGNATURE},
	{VariantBitLockerToGo, consts.BITLOCKER_TO_GO_SIGNATURE},
}

// Variants returns every known variant in table order.
func Variants() []Variant {
	out := make([]Variant, 0, len(variants))
	for _, e := range variants {
		out = append(out, e.variant)
	}
	return out
}

// MatchSignature compares an 8-byte signature field against the variant table.
func MatchSignature(field []byte) (Variant, bool) {
	if len(field) != consts.BITLOCKER_SIGNATURE_SIZE {
		return VariantNone, false
	}
	for _, e := range variants {
		if string(field) == e.value {
			return e.variant, true
		}
	}
	return VariantNone, false
}

// Marker identifies one of the metadata GUIDs that corroborate a signature match.
type Marker int

const (
	MarkerNone Marker = iota
	// GUID found in volumes carrying the classic information structure offsets.
	MarkerInformationOffset
	// GUID found in volumes carrying the encrypt-on-write information offsets.
	MarkerEOWInformationOffset
)

func (m Marker) String() string {
	switch m {
	case MarkerInformationOffset:
		return "information_offset"
	case MarkerEOWInformationOffset:
		return "eow_information_offset"
	default:
		return "none"
	}
}

var markers = [...]struct {
	marker Marker
	guid   uuid.UUID
}{
	{MarkerInformationOffset, uuid.UUID{
		0x3b, 0xd6, 0x67, 0x49, 0x29, 0x2e, 0xd8, 0x4a,
		0x83, 0x99, 0xf6, 0xa3, 0x39, 0xe3, 0xd0, 0x01,
	}},
	{MarkerEOWInformationOffset, uuid.UUID{
		0x3b, 0x4d, 0xa8, 0x92, 0x80, 0xdd, 0x0e, 0x4d,
		0x9e, 0x4e, 0xb1, 0xe3, 0x28, 0x4e, 0xae, 0xd8,
	}},
}

// Markers returns every known marker in table order.
func Markers() []Marker {
	out := make([]Marker, 0, len(markers))
	for _, e := range markers {
		out = append(out, e.marker)
	}
	return out
}

// GUID returns the marker's bytes in on-disk order. The zero UUID is returned for MarkerNone.
func (m Marker) GUID() uuid.UUID {
	for _, e := range markers {
		if e.marker == m {
			return e.guid
		}
	}
	return uuid.Nil
}

// Bytes returns a copy of the marker's on-disk bytes, or nil for MarkerNone.
func (m Marker) Bytes() []byte {
	if m.GUID() == uuid.Nil {
		return nil
	}
	g := m.GUID()
	return g[:]
}

// GUIDString renders the marker the way Windows tooling prints it.
func (m Marker) GUIDString() string {
	return FormatGUID(m.GUID())
}

// FindMarker reports the first marker whose bytes occur anywhere in window.
func FindMarker(window []byte) (Marker, bool) {
	for _, e := range markers {
		if bytes.Contains(window, e.guid[:]) {
			return e.marker, true
		}
	}
	return MarkerNone, false
}

// FormatGUID formats a GUID stored in on-disk (mixed-endian) order. The first three groups are
// little-endian on disk, the last two are stored as-is.
func FormatGUID(raw uuid.UUID) string {
	var swapped uuid.UUID
	swapped[0], swapped[1], swapped[2], swapped[3] = raw[3], raw[2], raw[1], raw[0]
	swapped[4], swapped[5] = raw[5], raw[4]
	swapped[6], swapped[7] = raw[7], raw[6]
	copy(swapped[8:], raw[8:])
	return swapped.String()
}
