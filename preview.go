package lensshading

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/nfnt/resize"
	"golang.org/x/image/tiff"
)

// ChannelImage returns a channel plane as a 16-bit grayscale image for
// inspection. The 10-bit samples are shifted up so the full 16-bit range
// is used, which keeps the output viewable in ordinary image tools.
func (cs *ChannelSet) ChannelImage(channel int) (*image.Gray16, error) {
	if channel < 0 || channel > 3 {
		return nil, fmt.Errorf("invalid channel %d", channel)
	}
	img := image.NewGray16(image.Rect(0, 0, cs.Width, cs.Height))
	plane := cs.Planes[channel]
	for i, v := range plane {
		v <<= 6
		img.Pix[i*2] = uint8(v >> 8)
		img.Pix[i*2+1] = uint8(v)
	}
	return img, nil
}

// WriteTIFF writes one channel plane as an uncompressed 16-bit grayscale
// TIFF.
func (cs *ChannelSet) WriteTIFF(w io.Writer, channel int) error {
	img, err := cs.ChannelImage(channel)
	if err != nil {
		return err
	}
	return tiff.Encode(w, img, nil)
}

// WritePreviewPNG writes a downscaled 8-bit PNG preview of one channel
// plane, fitting within maxDim on the longer axis.
func (cs *ChannelSet) WritePreviewPNG(w io.Writer, channel, maxDim int) error {
	img, err := cs.ChannelImage(channel)
	if err != nil {
		return err
	}
	if maxDim <= 0 {
		maxDim = 512
	}
	thumb := resize.Thumbnail(uint(maxDim), uint(maxDim), img, resize.Bilinear)
	return png.Encode(w, thumb)
}
