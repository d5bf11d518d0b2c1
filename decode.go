package lensshading

import "fmt"

// unpackGroup expands one 5-byte packing group into four 10-bit samples.
// The first four bytes carry each sample's top eight bits; the fifth
// packs the four 2-bit remainders, MSB first.
func unpackGroup(g [5]byte) [4]uint16 {
	lsbs := g[4]
	var s [4]uint16
	for i := 0; i < 4; i++ {
		s[i] = uint16(g[i])<<2 | uint16(lsbs>>6)
		lsbs <<= 2
	}
	return s
}

// blackLevelCorrect rescales a raw sample so that the black level maps to
// zero while full scale is preserved: (raw-black)*max/(max-black) with
// integer truncation. Samples at or below the black level clamp to zero;
// dark noise can dip under the black level and wrapping it would corrupt
// the shading gains for that region.
func blackLevelCorrect(raw, blackLevel, maxValue uint16) uint16 {
	if raw <= blackLevel {
		return 0
	}
	return uint16(uint32(raw-blackLevel) * uint32(maxValue) / uint32(maxValue-blackLevel))
}

// DecodeChannels unpacks the pixel payload into four black-level
// corrected sub-channel planes. payload must be positioned at the BRCM
// magic tag; hdr must have passed Validate. Even rows feed planes 0/1,
// odd rows planes 2/3; within a row the two planes alternate by pixel
// parity.
func DecodeChannels(payload []byte, hdr *RawHeader, blackLevel uint16) (*ChannelSet, error) {
	if err := hdr.Validate(); err != nil {
		return nil, err
	}
	if blackLevel >= maxSample {
		return nil, fmt.Errorf("black level %d out of range", blackLevel)
	}

	stride := hdr.Stride()
	need := pixelDataOffset + stride*hdr.Height
	if len(payload) < need {
		return nil, fmt.Errorf("raw payload truncated: have %d bytes, need %d", len(payload), need)
	}

	cs := &ChannelSet{
		Width:  hdr.Width / 2,
		Height: hdr.Height / 2,
	}
	for i := range cs.Planes {
		cs.Planes[i] = make([]uint16, cs.Width*cs.Height)
	}

	for y := 0; y < hdr.Height; y++ {
		line := payload[pixelDataOffset+y*stride:]
		chanA, chanB := 0, 1
		if y&1 == 1 {
			chanA, chanB = 2, 3
		}
		dstA := cs.Planes[chanA][(y>>1)*cs.Width:]
		dstB := cs.Planes[chanB][(y>>1)*cs.Width:]

		for x := 0; x < hdr.Width; x += 4 {
			src := line[(x>>2)*5:]
			s := unpackGroup([5]byte(src[:5]))
			d := x >> 1
			dstA[d] = blackLevelCorrect(s[0], blackLevel, maxSample)
			dstB[d] = blackLevelCorrect(s[1], blackLevel, maxSample)
			dstA[d+1] = blackLevelCorrect(s[2], blackLevel, maxSample)
			dstB[d+1] = blackLevelCorrect(s[3], blackLevel, maxSample)
		}
	}
	return cs, nil
}
