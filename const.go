package lensshading

// Format constants for the BRCM raw container written by the VideoCore
// camera pipeline. New sensors or firmware versions may need additions
// here rather than new parsing logic.
const (
	rawMagic = "BRCM"

	// Byte offsets from the start of the magic tag.
	headerOffset    = 0xB0
	pixelDataOffset = 32768

	rawHeaderSize = 70
)

// Raw payload sizes for JPEG+RAW captures at full sensor resolution. The
// payload sits at this distance from the end of the file. Captures from
// other modes must be stripped down to the bare raw before processing.
var embeddedRawSizes = []int{
	6404096,  // OV5647, 2592x1944
	10270208, // IMX219, 3280x2464
}

// Image format codes from the VideoCore image types.
const (
	formatBayer      = 33
	bayerFormatRaw10 = 3
)

const (
	// DefaultBlackLevel is the sensor black level assumed when the caller
	// does not supply one.
	DefaultBlackLevel = 16

	// maxSample is the full-scale value of a 10-bit sample.
	maxSample = (1 << 10) - 1
)

const (
	// gridCellPitch is the gain grid cell size in per-channel pixels. The
	// firmware grid cell covers 64 sensor pixels; the component tables are
	// subsampled by the Bayer pattern.
	gridCellPitch = 32

	// gainUnity is the 8-bit fixed-point encoding of a 1.0x gain, the
	// floor below which no further brightening is applied.
	gainUnity = 32

	// gainCeiling is the largest representable 8-bit gain multiplier.
	gainCeiling = 255
)
