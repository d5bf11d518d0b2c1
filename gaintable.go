package lensshading

// middlePatchRadius sets the centre reference patch: a 9x9 square around
// the optical centre of the channel plane.
const middlePatchRadius = 4

// BuildGainGrid samples each channel plane on a coarse grid and produces
// the shading table in logical R, Gr, Gb, B order. Gains are the ratio of
// the centre reference brightness to the locally averaged brightness,
// encoded as 8-bit fixed point where 32 is 1.0x, clipped to [32, 255].
func BuildGainGrid(cs *ChannelSet, order BayerOrder, refTransform uint16) *GainGrid {
	g := &GainGrid{
		Width:        gridDim(cs.Width),
		Height:       gridDim(cs.Height),
		RefTransform: refTransform,
	}

	for logical := 0; logical < 4; logical++ {
		phys := channelOrdering[order][logical]
		plane := cs.Planes[phys]
		middle := middleValue(plane, cs.Width, cs.Height)

		table := ChannelTable{
			Logical:   logical,
			Physical:  phys,
			MiddleVal: middle,
		}

		half := gridCellPitch / 2
		for y := half; y < cs.Height+gridCellPitch; y += gridCellPitch {
			row := y
			if row >= cs.Height {
				row = cs.Height - 1
			}
			line := plane[row*cs.Width : (row+1)*cs.Width]

			gr := GainRow{Y: y}
			for x := half; x < cs.Width; x += gridCellPitch {
				// Average 3 pixels horizontally for noise rejection.
				right := x + 1
				if right >= cs.Width {
					right = cs.Width - 1
				}
				sum := int(line[x-1]) + int(line[x]) + int(line[right])
				gr.Gains = append(gr.Gains, clipGain(middle*3, sum))
			}
			// Trailing cell from the rightmost two pixels, covering the
			// partial cell the regular stride skips.
			sum := int(line[cs.Width-2]) + int(line[cs.Width-1])
			gr.Edge = clipGain(middle*2, sum)
			table.Rows = append(table.Rows, gr)
		}
		g.Channels[logical] = table
	}
	return g
}

// middleValue is the mean of the 9x9 patch around the plane centre,
// left-shifted by 5 to keep integer precision against the 3-sample cell
// averages.
func middleValue(plane []uint16, width, height int) int {
	x0, x1 := clampRange(width/2-middlePatchRadius, width/2+middlePatchRadius, width)
	y0, y1 := clampRange(height/2-middlePatchRadius, height/2+middlePatchRadius, height)

	sum, count := 0, 0
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			sum += int(plane[y*width+x])
			count++
		}
	}
	return (sum / count) << 5
}

func clampRange(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	return lo, hi
}

// clipGain divides the scaled reference by the local sum and clips the
// result to the representable gain range. A zero sum (fully black patch)
// clips to the ceiling rather than dividing by zero.
func clipGain(numerator, sum int) uint8 {
	if sum == 0 {
		return gainCeiling
	}
	gain := numerator / sum
	if gain > gainCeiling {
		return gainCeiling
	}
	if gain < gainUnity {
		return gainUnity
	}
	return uint8(gain)
}
