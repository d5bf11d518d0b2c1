package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bool64/dev/version"
	"github.com/raspicam/lensshading"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "analyse":
		if err := runAnalyse(os.Args[2:]); err != nil {
			fail(err)
		}
	case "inspect":
		if err := runInspect(os.Args[2:]); err != nil {
			fail(err)
		}
	case "version":
		fmt.Println(version.Info().Version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: lstool <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  analyse -in capture.jpg [-black 16] [-out-dir .] [-preview] [-tiff]")
	fmt.Fprintln(os.Stderr, "  inspect -in capture.jpg")
	fmt.Fprintln(os.Stderr, "  version")
}

func runAnalyse(args []string) error {
	fs := flag.NewFlagSet("analyse", flag.ContinueOnError)
	inPath := fs.String("in", "", "input JPEG+RAW or bare raw capture")
	black := fs.Int("black", lensshading.DefaultBlackLevel, "sensor black level")
	outDir := fs.String("out-dir", ".", "output directory")
	preview := fs.Bool("preview", false, "write chN.png channel previews")
	tiffOut := fs.Bool("tiff", false, "write chN.tiff 16-bit channel images")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required arguments")
	}

	data, err := os.ReadFile(filepath.Clean(*inPath))
	if err != nil {
		return err
	}
	fmt.Printf("File size is %d\n", len(data))

	loc, err := lensshading.LocateRaw(data)
	if loc.Fallback {
		fmt.Println("Warning: JPEG container has no raw payload at the known offsets, treating whole file as bare raw")
	}
	if err != nil {
		return err
	}
	payload := data[loc.Offset:]

	hdr, err := lensshading.ParseHeader(payload)
	if err != nil {
		return err
	}
	fmt.Printf("Header decoding: mode %s, width %d, height %d, padding %d %d\n",
		hdr.Name, hdr.Width, hdr.Height, hdr.PaddingRight, hdr.PaddingDown)
	fmt.Printf("transform %d, image format %d, bayer order %d (%s), bayer format %d\n",
		hdr.Transform, hdr.Format, hdr.BayerOrder, hdr.BayerOrder, hdr.BayerFormat)
	if err := hdr.Validate(); err != nil {
		return err
	}
	gw, gh := hdr.GridSize()
	fmt.Printf("Stride: %d\n", hdr.Stride())
	fmt.Printf("Grid size: %d x %d\n", gw, gh)

	cs, err := lensshading.DecodeChannels(payload, hdr, uint16(*black))
	if err != nil {
		return err
	}
	grid := lensshading.BuildGainGrid(cs, hdr.BayerOrder, hdr.Transform)
	for _, ch := range grid.Channels {
		fmt.Printf("Middle value for channel %d is %d\n", ch.Physical, ch.MiddleVal)
	}

	if err := cs.WriteDumps(*outDir); err != nil {
		// Keep going: the gain table is still worth writing.
		fmt.Fprintln(os.Stderr, "warning:", err)
	}
	if err := writeGrid(grid, *outDir); err != nil {
		return err
	}
	if *preview || *tiffOut {
		if err := writeImages(cs, *outDir, *preview, *tiffOut); err != nil {
			return err
		}
	}
	return nil
}

func writeGrid(grid *lensshading.GainGrid, dir string) error {
	header, err := os.Create(filepath.Join(dir, "ls_table.h"))
	if err != nil {
		return err
	}
	defer header.Close()
	if err := grid.WriteTableHeader(header); err != nil {
		return err
	}

	table, err := os.Create(filepath.Join(dir, "ls_table.txt"))
	if err != nil {
		return err
	}
	defer table.Close()
	return grid.WriteTableText(table)
}

func writeImages(cs *lensshading.ChannelSet, dir string, preview, tiffOut bool) error {
	for i := 0; i < 4; i++ {
		if preview {
			name := filepath.Join(dir, fmt.Sprintf("ch%d.png", i+1))
			if err := writeWith(name, func(f *os.File) error {
				return cs.WritePreviewPNG(f, i, 512)
			}); err != nil {
				return err
			}
		}
		if tiffOut {
			name := filepath.Join(dir, fmt.Sprintf("ch%d.tiff", i+1))
			if err := writeWith(name, func(f *os.File) error {
				return cs.WriteTIFF(f, i)
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeWith(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	inPath := fs.String("in", "", "input JPEG+RAW or bare raw capture")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required arguments")
	}

	data, err := os.ReadFile(filepath.Clean(*inPath))
	if err != nil {
		return err
	}
	loc, err := lensshading.LocateRaw(data)
	if loc.Fallback {
		fmt.Println("Warning: JPEG container has no raw payload at the known offsets")
	}
	if err != nil {
		return err
	}
	if loc.Embedded {
		fmt.Printf("Raw payload embedded at offset %d\n", loc.Offset)
	} else {
		fmt.Println("Bare raw payload")
	}

	hdr, err := lensshading.ParseHeader(data[loc.Offset:])
	if err != nil {
		return err
	}
	fmt.Printf("Mode:         %s\n", hdr.Name)
	fmt.Printf("Dimensions:   %dx%d (+%d +%d padding)\n", hdr.Width, hdr.Height, hdr.PaddingRight, hdr.PaddingDown)
	fmt.Printf("Transform:    %d\n", hdr.Transform)
	fmt.Printf("Format:       %d, bayer format %d\n", hdr.Format, hdr.BayerFormat)
	fmt.Printf("Bayer order:  %s\n", hdr.BayerOrder)
	if err := hdr.Validate(); err != nil {
		return err
	}
	gw, gh := hdr.GridSize()
	fmt.Printf("Stride:       %d\n", hdr.Stride())
	fmt.Printf("Grid size:    %d x %d\n", gw, gh)
	return nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
