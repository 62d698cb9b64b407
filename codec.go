package squash

import (
	"io"

	"github.com/efondere/squash/block"
	"github.com/efondere/squash/internal/bio"
	"github.com/efondere/squash/matrix"
	"github.com/efondere/squash/pack"
	"github.com/efondere/squash/transform"
)

// Encode runs the forward codec over a tightly-packed RGB8 pixel buffer
// (3 bytes per pixel, row-major, no padding) and writes a complete .sqh
// file to w. Blocks that run past the image edge are sampled with the
// mid-gray value 128 for the out-of-bounds pixels (spec §4.8).
func Encode(pixels []byte, width, height int, w io.Writer, cfg EncodeConfig) (EncodeStats, error) {
	var stats EncodeStats

	sw := bio.NewStreamWriter(w)
	header := Header{SizeX: uint32(width), SizeY: uint32(height), ChannelTag: ChannelRGB}
	if err := writeHeader(sw, header, cfg); err != nil {
		return stats, wrapStreamErr(err)
	}

	xBlocks := (width + matrix.Size - 1) / matrix.Size
	yBlocks := (height + matrix.Size - 1) / matrix.Size

	var scoreSum float64
	var blockCount int

	for by := 0; by < yBlocks; by++ {
		for bx := 0; bx < xBlocks; bx++ {
			for c := 0; c < 3; c++ {
				src := sampleBlock(pixels, width, height, bx, by, c)
				chosen := chooseTransform(src, cfg.QDCT, cfg.QHaar, cfg.Quality)

				if err := writeCompressedBlock(sw, chosen.packed); err != nil {
					return stats, wrapStreamErr(err)
				}

				scoreSum += chosen.score
				blockCount++
				if chosen.isDCT {
					stats.DCTBlocks++
				} else {
					stats.HaarBlocks++
				}
			}
		}
	}

	if blockCount > 0 {
		stats.MeanScore = scoreSum / float64(blockCount)
	}
	return stats, nil
}

// Decode reads a complete .sqh file from r and returns the reconstructed
// tightly-packed RGB8 pixel buffer along with its dimensions.
func Decode(r io.Reader) ([]byte, int, int, error) {
	sr := bio.NewStreamReader(r)

	header, qDCT, qHaar, err := readHeader(sr)
	if err != nil {
		return nil, 0, 0, wrapStreamErr(err)
	}
	if header.ChannelTag != ChannelRGB {
		return nil, 0, 0, ErrUnsupportedChannels
	}

	width, height := int(header.SizeX), int(header.SizeY)
	pixels := make([]byte, 3*width*height)

	tDCT := arrayToFloatBlock(qDCT)
	tHaar := arrayToFloatBlock(qHaar)

	xBlocks := (width + matrix.Size - 1) / matrix.Size
	yBlocks := (height + matrix.Size - 1) / matrix.Size

	for by := 0; by < yBlocks; by++ {
		for bx := 0; bx < xBlocks; bx++ {
			for c := 0; c < 3; c++ {
				cb, err := readCompressedBlock(sr)
				if err != nil {
					return nil, 0, 0, wrapStreamErr(err)
				}
				coeffs := pack.Unpack(cb)
				recon := inverseBlock(coeffs, cb.InfoByte, tDCT, tHaar)
				scatterBlock(pixels, width, height, bx, by, c, recon)
			}
		}
	}

	return pixels, width, height, nil
}

// inverseBlock runs the inverse block codec using whichever transform the
// info byte's IsDCT bit names.
func inverseBlock(coeffs matrix.Block[int8], infoByte byte, tDCT, tHaar matrix.Block[float32]) matrix.Block[uint8] {
	if infoByte&pack.IsDCT != 0 {
		return block.Inverse(coeffs, transform.DCT, tDCT)
	}
	return block.Inverse(coeffs, transform.Haar, tHaar)
}

// sampleBlock extracts the 8×8 block at block-coordinates (bx,by) for
// channel c, substituting 128 for any pixel past the image edge.
func sampleBlock(pixels []byte, width, height, bx, by, c int) matrix.Block[uint8] {
	return matrix.FromFunc(func(row, col int) uint8 {
		x := bx*matrix.Size + col
		y := by*matrix.Size + row
		if x >= width || y >= height {
			return 128
		}
		return pixels[3*(y*width+x)+c]
	})
}

// scatterBlock writes a reconstructed 8×8 block back into the pixel
// buffer, discarding any portion that falls past the image edge.
func scatterBlock(pixels []byte, width, height, bx, by, c int, recon matrix.Block[uint8]) {
	for row := 0; row < matrix.Size; row++ {
		y := by*matrix.Size + row
		if y >= height {
			continue
		}
		for col := 0; col < matrix.Size; col++ {
			x := bx*matrix.Size + col
			if x >= width {
				continue
			}
			pixels[3*(y*width+x)+c] = recon.At(row, col)
		}
	}
}
