package squash

import (
	"os"
	"path/filepath"

	"github.com/efondere/squash/internal/bio"
)

// Source is the raster collaborator the encoder needs: a way to obtain a
// tightly-packed RGB8 pixel buffer and the dimensions it was sampled at.
// This package never imports an image decoder; raster.PNGFile implements
// Source by wrapping image/png (spec §6.5's "raster source" is external to
// the core codec).
type Source interface {
	LoadRGB8() (pixels []byte, width, height int, err error)
}

// Sink is the raster collaborator the decoder writes through.
type Sink interface {
	SaveRGB8(pixels []byte, width, height int, overwrite bool) error
}

// EncodeFile loads pixels from src, runs Encode, and writes the resulting
// .sqh file to path. The file is assembled in memory and written with a
// temp-file-then-rename so a failure never leaves a truncated .sqh file at
// path (spec §7).
func EncodeFile(src Source, path string, cfg EncodeConfig) (EncodeStats, error) {
	pixels, width, height, err := src.LoadRGB8()
	if err != nil {
		return EncodeStats{}, err
	}
	if pixels == nil {
		return EncodeStats{}, ErrNoData
	}

	buf := bio.NewBufferWriter(0)
	stats, err := Encode(pixels, width, height, buf, cfg)
	if err != nil {
		return stats, err
	}

	return stats, writeFileAtomically(path, buf.Bytes())
}

// DecodeFile reads a .sqh file from path and saves the reconstructed
// pixels through dst.
func DecodeFile(path string, dst Sink, overwrite bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	pixels, width, height, err := Decode(f)
	if err != nil {
		return err
	}
	return dst.SaveRGB8(pixels, width, height, overwrite)
}

func writeFileAtomically(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".squash-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

