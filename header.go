package lensshading

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// ParseHeader reads the fixed-layout header record from a payload
// positioned at the BRCM magic tag. It does not validate the pixel
// format; callers that want to print diagnostics from a malformed capture
// can inspect the result before calling Validate.
func ParseHeader(payload []byte) (*RawHeader, error) {
	if len(payload) < headerOffset+rawHeaderSize {
		return nil, fmt.Errorf("raw payload too short for header: %d bytes", len(payload))
	}
	rec := payload[headerOffset : headerOffset+rawHeaderSize]

	name := rec[:32]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}

	h := &RawHeader{
		Name:         string(name),
		Width:        int(binary.LittleEndian.Uint16(rec[32:])),
		Height:       int(binary.LittleEndian.Uint16(rec[34:])),
		PaddingRight: int(binary.LittleEndian.Uint16(rec[36:])),
		PaddingDown:  int(binary.LittleEndian.Uint16(rec[38:])),
		// rec[40:64] is reserved
		Transform:   binary.LittleEndian.Uint16(rec[64:]),
		Format:      binary.LittleEndian.Uint16(rec[66:]),
		BayerOrder:  BayerOrder(rec[68]),
		BayerFormat: rec[69],
	}
	return h, nil
}

// Validate checks that the header describes a capture this package can
// decode.
func (h *RawHeader) Validate() error {
	if h.Format != formatBayer || h.BayerFormat != bayerFormatRaw10 {
		return fmt.Errorf("%w: format %d, bayer format %d", ErrUnsupportedFormat, h.Format, h.BayerFormat)
	}
	if h.BayerOrder > OrderGRBG {
		return fmt.Errorf("invalid bayer order %d", h.BayerOrder)
	}
	if h.Width <= 0 || h.Height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", h.Width, h.Height)
	}
	if h.Width%4 != 0 || h.Height%2 != 0 {
		return fmt.Errorf("unsupported dimensions %dx%d: width must be a multiple of 4 and height even", h.Width, h.Height)
	}
	return nil
}

// Stride returns the byte length of one packed scanline. Pixels are
// stored at 5 bytes per 4, including the right padding, rounded up to a
// 32-byte boundary. This reproduces the firmware's own alignment rule.
func (h *RawHeader) Stride() int {
	return (((((h.Width + h.PaddingRight) * 5) + 3) >> 2) + 31) &^ 31
}

// GridSize returns the gain grid dimensions for this capture.
func (h *RawHeader) GridSize() (int, int) {
	return gridDim(h.Width / 2), gridDim(h.Height / 2)
}

// gridDim is ceiling division of a per-channel extent by the grid cell
// pitch.
func gridDim(n int) int {
	d := n / gridCellPitch
	if n%gridCellPitch != 0 {
		d++
	}
	return d
}
