package lensshading

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DumpFilenames are the per-plane raw dump names, indexed by physical
// channel.
var DumpFilenames = [4]string{"ch1.bin", "ch2.bin", "ch3.bin", "ch4.bin"}

// WriteTableHeader writes the gain grid as the C source fragment the
// camera firmware consumes: a flat uint8_t array grouped by logical
// channel, one grid row per line, followed by the reference transform and
// grid dimensions.
func (g *GainGrid) WriteTableHeader(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "uint8_t ls_grid[] = {\n")
	for _, ch := range g.Channels {
		fmt.Fprintf(bw, "//%s - Ch %d\n", channelNames[ch.Logical], ch.Physical)
		for _, row := range ch.Rows {
			for _, gain := range row.Gains {
				fmt.Fprintf(bw, "%d, ", gain)
			}
			fmt.Fprintf(bw, "%d,\n", row.Edge)
		}
	}
	fmt.Fprintf(bw, "};\n")
	fmt.Fprintf(bw, "uint32_t ref_transform = %d;\n", g.RefTransform)
	fmt.Fprintf(bw, "uint32_t grid_width = %d;\n", g.Width)
	fmt.Fprintf(bw, "uint32_t grid_height = %d;\n", g.Height)
	return bw.Flush()
}

// WriteTableText writes one "x y gain channel" line per sample, in
// channel coordinates, for external plotting. The edge sample of each row
// reports the column where the regular walk stopped.
func (g *GainGrid) WriteTableText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	half := gridCellPitch / 2
	for _, ch := range g.Channels {
		for _, row := range ch.Rows {
			for i, gain := range row.Gains {
				fmt.Fprintf(bw, "%d %d %d %d\n", half+i*gridCellPitch, row.Y, gain, ch.Logical)
			}
			fmt.Fprintf(bw, "%d %d %d %d\n", half+len(row.Gains)*gridCellPitch, row.Y, row.Edge, ch.Logical)
		}
	}
	return bw.Flush()
}

// WriteDump writes one channel plane as tightly packed little-endian
// 16-bit samples, row-major.
func (cs *ChannelSet) WriteDump(w io.Writer, channel int) error {
	if channel < 0 || channel > 3 {
		return fmt.Errorf("invalid channel %d", channel)
	}
	buf := make([]byte, len(cs.Planes[channel])*2)
	for i, v := range cs.Planes[channel] {
		binary.LittleEndian.PutUint16(buf[i*2:], v)
	}
	_, err := w.Write(buf)
	return err
}

// WriteDumps writes all four channel dumps into dir. Each plane is
// attempted independently so one unwritable file does not block the
// others; the combined error is returned.
func (cs *ChannelSet) WriteDumps(dir string) error {
	var errs []error
	for i := range cs.Planes {
		if err := cs.writeDumpFile(filepath.Join(dir, DumpFilenames[i]), i); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (cs *ChannelSet) writeDumpFile(path string, channel int) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := cs.WriteDump(f, channel); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Analyse runs the full pipeline on an in-memory capture: locate the raw
// payload, parse and validate the header, decode the channel planes, and
// build the gain grid.
func Analyse(data []byte, opts *Options) (*Result, error) {
	blackLevel := DefaultBlackLevel
	if opts != nil && opts.BlackLevel > 0 {
		blackLevel = opts.BlackLevel
	}

	loc, err := LocateRaw(data)
	if err != nil {
		return nil, err
	}
	payload := data[loc.Offset:]

	hdr, err := ParseHeader(payload)
	if err != nil {
		return nil, err
	}
	cs, err := DecodeChannels(payload, hdr, uint16(blackLevel))
	if err != nil {
		return nil, err
	}
	return &Result{
		Location: loc,
		Header:   hdr,
		Channels: cs,
		Grid:     BuildGainGrid(cs, hdr.BayerOrder, hdr.Transform),
	}, nil
}

// AnalyseFile is Analyse on the contents of path.
func AnalyseFile(path string, opts *Options) (*Result, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	return Analyse(data, opts)
}
