// Package raster is the "raster source/sink" collaborator the core codec
// treats as external (spec §1): it loads and saves tightly-packed RGB8
// pixel buffers from PNG files via image/png, the idiomatic choice for PNG
// I/O in Go (none of the reference pack ships its own PNG codec).
package raster

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// ErrOverwriteRefused is returned by PNGFile.SaveRGB8 when the destination
// already exists and overwrite was not requested.
var ErrOverwriteRefused = errors.New("raster: destination exists, overwrite not requested")

// ErrUnsupportedExtension is returned by path-based helpers that cannot
// route on a file's suffix.
var ErrUnsupportedExtension = errors.New("raster: unsupported file extension")

// PNGFile is a path to a PNG file. It implements squash.Source and
// squash.Sink structurally: anything that only needs LoadRGB8/SaveRGB8 can
// take a PNGFile without this package importing squash.
type PNGFile struct {
	Path string
}

// LoadRGB8 decodes the PNG at p.Path and returns its pixels as a tightly
// packed, row-major RGB8 buffer (3 bytes per pixel, alpha discarded).
func (p PNGFile) LoadRGB8() ([]byte, int, int, error) {
	return LoadPNG(p.Path)
}

// SaveRGB8 encodes pixels (row-major RGB8, 3 bytes per pixel) as a PNG at
// p.Path. If the file already exists and overwrite is false,
// ErrOverwriteRefused is returned and nothing is written.
func (p PNGFile) SaveRGB8(pixels []byte, width, height int, overwrite bool) error {
	return SavePNG(p.Path, pixels, width, height, overwrite)
}

// LoadPNG decodes the PNG at path into a tightly packed RGB8 pixel buffer.
func LoadPNG(path string) ([]byte, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, 0, 0, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 3*width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			idx := 3 * (y*width + x)
			pixels[idx] = c.R
			pixels[idx+1] = c.G
			pixels[idx+2] = c.B
		}
	}
	return pixels, width, height, nil
}

// SavePNG encodes a tightly packed RGB8 pixel buffer as a PNG at path.
func SavePNG(path string, pixels []byte, width, height int, overwrite bool) error {
	if len(pixels) != 3*width*height {
		return errors.New("raster: pixel buffer length does not match width*height*3")
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := 3 * (y*width + x)
			img.Set(x, y, color.RGBA{R: pixels[idx], G: pixels[idx+1], B: pixels[idx+2], A: 255})
		}
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flag |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return ErrOverwriteRefused
		}
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}

// DispatchExtension reports whether path's suffix names a format this
// package can load/save (currently only .png). It exists so cmd/squash can
// reject unknown raster extensions before touching the filesystem,
// mirroring the codec's own UnsupportedExtension error kind.
func DispatchExtension(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return nil
	default:
		return ErrUnsupportedExtension
	}
}
