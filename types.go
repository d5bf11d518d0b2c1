package lensshading

// BayerOrder identifies which rotation of the {R, Gr, Gb, B} pattern the
// sensor uses. It only affects the channel order of the emitted gain
// table, never the decode itself.
type BayerOrder uint8

const (
	OrderRGGB BayerOrder = iota
	OrderGBRG
	OrderBGGR
	OrderGRBG
)

func (o BayerOrder) String() string {
	switch o {
	case OrderRGGB:
		return "RGGB"
	case OrderGBRG:
		return "GBRG"
	case OrderBGGR:
		return "BGGR"
	case OrderGRBG:
		return "GRBG"
	}
	return "unknown"
}

// channelOrdering maps each logical output slot (R, Gr, Gb, B) to the
// physical plane index that feeds it, per Bayer order.
var channelOrdering = [4][4]int{
	OrderRGGB: {0, 1, 2, 3},
	OrderGBRG: {2, 3, 0, 1},
	OrderBGGR: {3, 2, 1, 0},
	OrderGRBG: {1, 0, 3, 2},
}

// channelNames are the logical channel labels in emission order.
var channelNames = [4]string{"R", "Gr", "Gb", "B"}

// RawHeader is the fixed-layout metadata record stored at a constant
// offset past the BRCM magic tag.
type RawHeader struct {
	Name         string // sensor mode name, NUL-trimmed
	Width        int    // nominal width in pixels
	Height       int    // nominal height in pixels
	PaddingRight int    // extra pixels per scanline
	PaddingDown  int    // extra scanlines
	Transform    uint16 // rotation/flip applied by the capture pipeline
	Format       uint16 // image format code, must be Bayer
	BayerOrder   BayerOrder
	BayerFormat  uint8 // bit packing code, must be packed raw10
}

// ChannelSet holds the four de-interleaved Bayer sub-channel planes after
// black level correction. Planes are row-major uint16 and all share the
// same per-channel dimensions.
type ChannelSet struct {
	Width  int // per-channel width, half the sensor width
	Height int // per-channel height, half the sensor height
	Planes [4][]uint16
}

// GainRow is one horizontal line of the gain grid for a single channel:
// the regular cells sampled along the row plus the trailing edge cell
// taken from the rightmost two pixels.
type GainRow struct {
	Y     int // sampling row in channel coordinates; may point past the plane, clamped when sampled
	Gains []uint8
	Edge  uint8
}

// ChannelTable is the gain grid of one logical output channel.
type ChannelTable struct {
	Logical   int // 0=R, 1=Gr, 2=Gb, 3=B
	Physical  int // plane index that fed this slot
	MiddleVal int // centre reference brightness, mean of a 9x9 patch <<5
	Rows      []GainRow
}

// GainGrid is the complete shading table: four channel tables in logical
// R, Gr, Gb, B order plus the metadata the firmware consumer needs.
type GainGrid struct {
	Width        int // ceil(channelWidth/32)
	Height       int // ceil(channelHeight/32)
	RefTransform uint16
	Channels     [4]ChannelTable
}

// Result bundles everything produced from a single capture.
type Result struct {
	Location Location
	Header   *RawHeader
	Channels *ChannelSet
	Grid     *GainGrid
}

// Options controls the analysis pipeline.
type Options struct {
	// BlackLevel overrides the sensor black level. When zero,
	// DefaultBlackLevel is used.
	BlackLevel int
}
