package lensshading

import (
	"bytes"
	"image/png"
	"testing"

	"golang.org/x/image/tiff"
)

func TestChannelImage(t *testing.T) {
	cs := uniformChannelSet(8, 8, [4]uint16{0, 256, 512, 1023})

	img, err := cs.ChannelImage(2)
	if err != nil {
		t.Fatalf("channel image: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.Gray16At(0, 0).Y; got != 512<<6 {
		t.Fatalf("sample = %d, want %d", got, 512<<6)
	}

	if _, err := cs.ChannelImage(4); err == nil {
		t.Fatal("expected error for invalid channel")
	}
}

func TestWriteTIFF(t *testing.T) {
	cs := uniformChannelSet(8, 8, [4]uint16{100, 100, 100, 100})

	var buf bytes.Buffer
	if err := cs.WriteTIFF(&buf, 0); err != nil {
		t.Fatalf("write tiff: %v", err)
	}
	img, err := tiff.Decode(&buf)
	if err != nil {
		t.Fatalf("decode tiff: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
}

func TestWritePreviewPNG(t *testing.T) {
	cs := uniformChannelSet(64, 32, [4]uint16{100, 100, 100, 100})

	var buf bytes.Buffer
	if err := cs.WritePreviewPNG(&buf, 0, 16); err != nil {
		t.Fatalf("write preview: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() > 16 || img.Bounds().Dy() > 16 {
		t.Fatalf("preview not downscaled: %v", img.Bounds())
	}
}
