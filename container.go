package lensshading

import (
	"bytes"
	"errors"
)

var (
	// ErrMissingHeader reports that no BRCM magic tag was found at any
	// candidate payload offset.
	ErrMissingHeader = errors.New("raw payload missing BRCM header")

	// ErrUnsupportedFormat reports a header whose format codes are not
	// Bayer packed raw10.
	ErrUnsupportedFormat = errors.New("raw file is not Bayer raw10")
)

var jpegSOI = []byte{0xFF, 0xD8}

// Location describes where the raw payload was found within an input
// buffer.
type Location struct {
	// Offset of the BRCM magic tag from the start of the buffer.
	Offset int

	// Embedded is true when the payload trails a JPEG image at one of the
	// known fixed offsets.
	Embedded bool

	// Fallback is true when the buffer had a JPEG prefix but no payload at
	// the known offsets, and the whole buffer was treated as bare raw
	// instead. Callers should surface this: it usually means a capture
	// from an unsupported sensor mode.
	Fallback bool
}

// LocateRaw finds the BRCM raw payload in a capture buffer. JPEG+RAW
// captures embed the payload at a fixed distance from the end of the
// file, one distance per known full-resolution sensor mode; anything else
// is treated as bare raw starting at offset 0. The magic tag must be
// present at the resolved offset.
func LocateRaw(data []byte) (Location, error) {
	loc := Location{}
	if bytes.HasPrefix(data, jpegSOI) {
		for _, size := range embeddedRawSizes {
			off := len(data) - size
			if off < 0 {
				continue
			}
			if hasMagic(data[off:]) {
				loc.Offset = off
				loc.Embedded = true
				return loc, nil
			}
		}
		loc.Fallback = true
	}
	if !hasMagic(data) {
		return loc, ErrMissingHeader
	}
	return loc, nil
}

func hasMagic(b []byte) bool {
	return len(b) >= len(rawMagic) && string(b[:len(rawMagic)]) == rawMagic
}
