package lensshading

import "encoding/binary"

// buildRaw assembles a bare synthetic BRCM capture with per-pixel values
// supplied by pixel.
func buildRaw(width, height, pad int, order BayerOrder, pixel func(x, y int) uint16) []byte {
	hdr := &RawHeader{Width: width, PaddingRight: pad}
	stride := hdr.Stride()

	buf := make([]byte, pixelDataOffset+stride*height)
	copy(buf, rawMagic)

	rec := buf[headerOffset:]
	copy(rec, "synthetic")
	binary.LittleEndian.PutUint16(rec[32:], uint16(width))
	binary.LittleEndian.PutUint16(rec[34:], uint16(height))
	binary.LittleEndian.PutUint16(rec[36:], uint16(pad))
	binary.LittleEndian.PutUint16(rec[38:], 0)
	binary.LittleEndian.PutUint16(rec[64:], 3) // transform
	binary.LittleEndian.PutUint16(rec[66:], formatBayer)
	rec[68] = byte(order)
	rec[69] = bayerFormatRaw10

	for y := 0; y < height; y++ {
		line := buf[pixelDataOffset+y*stride:]
		for x := 0; x < width; x += 4 {
			g := line[(x/4)*5:]
			var lsbs byte
			for i := 0; i < 4; i++ {
				v := pixel(x+i, y)
				g[i] = byte(v >> 2)
				lsbs |= byte(v&3) << (6 - 2*i)
			}
			g[4] = lsbs
		}
	}
	return buf
}

func uniformPixel(v uint16) func(x, y int) uint16 {
	return func(int, int) uint16 { return v }
}
