package lensshading

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func sampleGrid() *GainGrid {
	g := &GainGrid{Width: 2, Height: 1, RefTransform: 3}
	for i := 0; i < 4; i++ {
		g.Channels[i] = ChannelTable{
			Logical:  i,
			Physical: i,
			Rows: []GainRow{
				{Y: 16, Gains: []uint8{uint8(40 + i)}, Edge: uint8(50 + i)},
			},
		}
	}
	return g
}

func TestWriteTableHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleGrid().WriteTableHeader(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := `uint8_t ls_grid[] = {
//R - Ch 0
40, 50,
//Gr - Ch 1
41, 51,
//Gb - Ch 2
42, 52,
//B - Ch 3
43, 53,
};
uint32_t ref_transform = 3;
uint32_t grid_width = 2;
uint32_t grid_height = 1;
`
	if buf.String() != want {
		t.Fatalf("table header mismatch\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteTableText(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleGrid().WriteTableText(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := `16 16 40 0
48 16 50 0
16 16 41 1
48 16 51 1
16 16 42 2
48 16 52 2
16 16 43 3
48 16 53 3
`
	if buf.String() != want {
		t.Fatalf("table text mismatch\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteDumps(t *testing.T) {
	cs := &ChannelSet{Width: 2, Height: 2}
	for i := range cs.Planes {
		cs.Planes[i] = []uint16{uint16(i*1000 + 1), uint16(i*1000 + 2), uint16(i*1000 + 3), uint16(i*1000 + 4)}
	}

	dir := t.TempDir()
	if err := cs.WriteDumps(dir); err != nil {
		t.Fatalf("write dumps: %v", err)
	}
	for i, name := range DumpFilenames {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if len(data) != 8 {
			t.Fatalf("%s has %d bytes, want 8", name, len(data))
		}
		for j := 0; j < 4; j++ {
			got := binary.LittleEndian.Uint16(data[j*2:])
			if got != cs.Planes[i][j] {
				t.Errorf("%s sample %d = %d, want %d", name, j, got, cs.Planes[i][j])
			}
		}
	}
}

func TestAnalyseEndToEnd(t *testing.T) {
	data := buildRaw(64, 64, 0, OrderRGGB, uniformPixel(512))

	res, err := Analyse(data, nil)
	if err != nil {
		t.Fatalf("analyse: %v", err)
	}
	if res.Location.Offset != 0 || res.Location.Embedded {
		t.Errorf("unexpected location %+v", res.Location)
	}
	if res.Header.Width != 64 || res.Header.Height != 64 {
		t.Errorf("header dimensions %dx%d", res.Header.Width, res.Header.Height)
	}
	for i, plane := range res.Channels.Planes {
		for j, v := range plane {
			if v != 503 {
				t.Fatalf("plane %d sample %d = %d, want 503", i, j, v)
			}
		}
	}
	if res.Grid.RefTransform != 3 {
		t.Errorf("ref transform = %d, want 3", res.Grid.RefTransform)
	}
	for _, ch := range res.Grid.Channels {
		for _, row := range ch.Rows {
			for _, g := range row.Gains {
				if g != gainUnity {
					t.Fatalf("channel %d gain %d, want unity", ch.Logical, g)
				}
			}
			if row.Edge != gainUnity {
				t.Fatalf("channel %d edge gain %d, want unity", ch.Logical, row.Edge)
			}
		}
	}
}

func TestAnalyseCustomBlackLevel(t *testing.T) {
	data := buildRaw(64, 64, 0, OrderRGGB, uniformPixel(512))

	res, err := Analyse(data, &Options{BlackLevel: 64})
	if err != nil {
		t.Fatalf("analyse: %v", err)
	}
	want := blackLevelCorrect(512, 64, maxSample)
	if got := res.Channels.Planes[0][0]; got != want {
		t.Fatalf("sample = %d, want %d", got, want)
	}
}

func TestAnalyseMissingHeader(t *testing.T) {
	if _, err := Analyse(make([]byte, 4096), nil); !errors.Is(err, ErrMissingHeader) {
		t.Fatalf("err = %v, want ErrMissingHeader", err)
	}
}

func TestAnalyseUnsupportedFormat(t *testing.T) {
	data := buildRaw(64, 64, 0, OrderRGGB, uniformPixel(512))
	data[headerOffset+66] = 5 // not Bayer

	if _, err := Analyse(data, nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}
